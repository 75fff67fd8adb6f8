package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
	"linkswap/internal/observability/metrics"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// LedgerUseCase exposes balances, history and admin credit adjustments.
type LedgerUseCase struct {
	repo   port.LedgerRepository
	logger *slog.Logger
}

var _ port.LedgerUseCase = (*LedgerUseCase)(nil)

// NewLedgerUseCase creates a usecase over the given repository.
func NewLedgerUseCase(repo port.LedgerRepository, logger *slog.Logger) *LedgerUseCase {
	return &LedgerUseCase{repo: repo, logger: logger}
}

// Balance returns the user's credits.
func (u *LedgerUseCase) Balance(ctx context.Context, caller domain.Caller, userID uuid.UUID) (int64, error) {
	if err := selfOrAdmin(ctx, u.repo, caller, userID); err != nil {
		return 0, err
	}
	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Credits, nil
}

// History returns the newest transactions touching the user. A limit
// outside (0, 500] falls back to 50.
func (u *LedgerUseCase) History(ctx context.Context, caller domain.Caller, userID uuid.UUID, limit int) ([]domain.HistoryEntry, error) {
	if err := selfOrAdmin(ctx, u.repo, caller, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	txs, err := u.repo.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HistoryEntry, len(txs))
	for i, tx := range txs {
		out[i] = domain.HistoryEntry{Transaction: tx, Direction: tx.DirectionFor(userID)}
	}
	return out, nil
}

// AdminAdd credits the user from the system side. The target's account
// status is not changed and does not block the credit.
func (u *LedgerUseCase) AdminAdd(ctx context.Context, caller domain.Caller, userID uuid.UUID, amount int64, reason string) (*domain.Transaction, error) {
	return u.adjust(ctx, caller, domain.Transfer{
		To:     &userID,
		Amount: amount,
		Type:   domain.TxAdminAdd,
	}, reason)
}

// AdminRemove debits the user to the system side. The amount is clamped to
// the current balance; an empty balance is ErrInsufficientFunds.
func (u *LedgerUseCase) AdminRemove(ctx context.Context, caller domain.Caller, userID uuid.UUID, amount int64, reason string) (*domain.Transaction, error) {
	return u.adjust(ctx, caller, domain.Transfer{
		From:           &userID,
		Amount:         amount,
		Type:           domain.TxAdminRemove,
		ClampToBalance: true,
	}, reason)
}

func (u *LedgerUseCase) adjust(ctx context.Context, caller domain.Caller, t domain.Transfer, reason string) (*domain.Transaction, error) {
	if err := authorizeAdmin(ctx, u.repo, caller); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	adminID := caller.UserID
	t.ReferenceType = domain.RefAdmin
	t.ReferenceID = &adminID
	t.Description = reason
	if err := t.Validate(); err != nil {
		return nil, err
	}
	tx, err := u.repo.ApplyTransfer(ctx, t)
	if err != nil {
		return nil, err
	}
	metrics.RecordTransaction(tx)
	u.logger.Info("admin credit adjustment",
		slog.String("admin_id", adminID.String()),
		slog.String("type", string(tx.Type)),
		slog.Int64("amount", tx.Amount),
		slog.String("reason", reason))
	return tx, nil
}

// Reconcile compares the stored balance with the sum of the user's ledger.
func (u *LedgerUseCase) Reconcile(ctx context.Context, caller domain.Caller, userID uuid.UUID) (*domain.Reconciliation, error) {
	if err := selfOrAdmin(ctx, u.repo, caller, userID); err != nil {
		return nil, err
	}
	rec, err := u.repo.LedgerTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !rec.Consistent {
		u.logger.Error("ledger out of balance",
			slog.String("user_id", userID.String()),
			slog.Int64("balance", rec.Balance),
			slog.Int64("derived", rec.Derived))
	}
	return &rec, nil
}

func selfOrAdmin(ctx context.Context, users userReader, caller domain.Caller, userID uuid.UUID) error {
	if err := authorize(ctx, users, caller); err != nil {
		return err
	}
	if caller.UserID != userID && !caller.IsAdmin() {
		return fmt.Errorf("%w: cannot access another user's ledger", domain.ErrForbidden)
	}
	return nil
}
