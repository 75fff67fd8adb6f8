package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"linkswap/internal/core/domain"
)

const userColumns = `id, email, role, credits, status, created_at, updated_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Role, &u.Credits, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const assetColumns = `id, owner_id, domain, industry, status, metrics, created_at, updated_at`

func scanAsset(row pgx.Row) (domain.Asset, error) {
	var (
		a       domain.Asset
		metrics []byte
	)
	if err := row.Scan(&a.ID, &a.OwnerID, &a.Domain, &a.Industry, &a.Status, &metrics, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return a, err
	}
	if len(metrics) > 0 {
		a.Metrics = new(domain.AssetMetrics)
		if err := json.Unmarshal(metrics, a.Metrics); err != nil {
			return a, fmt.Errorf("asset %s metrics: %w", a.ID, err)
		}
	}
	return a, nil
}

const transactionColumns = `id, from_user_id, to_user_id, amount, type, reference_type, reference_id, description, created_at`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.ID, &t.FromUserID, &t.ToUserID, &t.Amount, &t.Type, &t.ReferenceType, &t.ReferenceID, &t.Description, &t.CreatedAt)
	return t, err
}

// UpsertUser inserts or updates a user mirrored from the identity provider.
// The balance column is never written here.
func (s *Store) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := s.pool.Exec(ctx, `
        INSERT INTO users (id, email, role, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
        ON CONFLICT (id) DO UPDATE
        SET email = EXCLUDED.email, role = EXCLUDED.role, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`,
		u.ID, u.Email, u.Role, u.Status, s.now())
	return mapError(err)
}

// UpsertAsset inserts or updates a publisher asset.
func (s *Store) UpsertAsset(ctx context.Context, a domain.Asset) error {
	var metrics []byte
	if a.Metrics != nil {
		var err error
		if metrics, err = json.Marshal(a.Metrics); err != nil {
			return err
		}
	}
	_, err := s.pool.Exec(ctx, `
        INSERT INTO assets (id, owner_id, domain, industry, status, metrics, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
        ON CONFLICT (id) DO UPDATE
        SET owner_id = EXCLUDED.owner_id, domain = EXCLUDED.domain, industry = EXCLUDED.industry,
            status = EXCLUDED.status, metrics = EXCLUDED.metrics, updated_at = EXCLUDED.updated_at`,
		a.ID, a.OwnerID, a.Domain, a.Industry, a.Status, metrics, s.now())
	return mapError(err)
}

// GetAsset returns an asset by id.
func (s *Store) GetAsset(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	a, err := scanAsset(s.pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "asset", id)
	}
	return &a, nil
}

// GetUser returns a user by id.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

// ApplyTransfer settles t and records its transaction atomically.
func (s *Store) ApplyTransfer(ctx context.Context, t domain.Transfer) (*domain.Transaction, error) {
	var rec domain.Transaction
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		rec, err = s.applyTransfer(ctx, tx, t)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// applyTransfer locks both parties, moves the balance and appends the ledger
// row. t is taken by value so a clamped amount does not leak into a replay.
func (s *Store) applyTransfer(ctx context.Context, tx pgx.Tx, t domain.Transfer) (domain.Transaction, error) {
	if err := t.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	var ids []string
	for _, id := range []*uuid.UUID{t.From, t.To} {
		if id != nil {
			ids = append(ids, id.String())
		}
	}
	rows, err := tx.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return domain.Transaction{}, err
	}
	locked, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	party := func(id *uuid.UUID) (*domain.User, error) {
		if id == nil {
			return nil, nil
		}
		for i := range locked {
			if locked[i].ID == *id {
				return &locked[i], nil
			}
		}
		return nil, fmt.Errorf("user %s: %w", *id, domain.ErrNotFound)
	}
	from, err := party(t.From)
	if err != nil {
		return domain.Transaction{}, err
	}
	to, err := party(t.To)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err = t.Settle(from, to); err != nil {
		return domain.Transaction{}, err
	}

	now := s.now()
	for _, u := range []*domain.User{from, to} {
		if u == nil {
			continue
		}
		if _, err = tx.Exec(ctx, `UPDATE users SET credits = $2, updated_at = $3 WHERE id = $1`, u.ID, u.Credits, now); err != nil {
			return domain.Transaction{}, err
		}
	}
	rec := t.Record(now)
	_, err = tx.Exec(ctx, `INSERT INTO transactions (`+transactionColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.FromUserID, rec.ToUserID, rec.Amount, rec.Type, rec.ReferenceType, rec.ReferenceID, rec.Description, rec.CreatedAt)
	if err != nil {
		return domain.Transaction{}, err
	}
	return rec, nil
}

// ListTransactions returns the newest transactions touching the user.
func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT `+transactionColumns+`
        FROM transactions
        WHERE from_user_id = $1 OR to_user_id = $1
        ORDER BY seq DESC
        LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
}

// LedgerTotals sums the user's ledger since genesis in one snapshot.
func (s *Store) LedgerTotals(ctx context.Context, userID uuid.UUID) (domain.Reconciliation, error) {
	var balance, received, given int64
	err := s.pool.QueryRow(ctx, `
        SELECT u.credits,
               COALESCE((SELECT sum(amount) FROM transactions WHERE to_user_id = u.id), 0)::bigint,
               COALESCE((SELECT sum(amount) FROM transactions WHERE from_user_id = u.id), 0)::bigint
        FROM users u
        WHERE u.id = $1`, userID).Scan(&balance, &received, &given)
	if err != nil {
		return domain.Reconciliation{}, notFound(err, "user", userID)
	}
	return domain.NewReconciliation(userID, balance, received, given), nil
}
