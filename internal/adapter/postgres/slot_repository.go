package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
)

const slotColumns = `id, campaign_id, target_url, target_keyword, link_type, placement_format,
    publisher_id, publisher_asset_id, proof_url, verified, details, status,
    reserved_at, submitted_at, approved_at, created_at, updated_at`

func scanSlot(row pgx.Row) (domain.Slot, error) {
	var s domain.Slot
	err := row.Scan(&s.ID, &s.CampaignID, &s.TargetURL, &s.TargetKeyword, &s.LinkType, &s.PlacementFormat,
		&s.PublisherID, &s.PublisherAssetID, &s.ProofURL, &s.Verified, &s.Details, &s.Status,
		&s.ReservedAt, &s.SubmittedAt, &s.ApprovedAt, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func listSlots(ctx context.Context, q querier, campaignID uuid.UUID, forUpdate bool) ([]domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE campaign_id = $1 ORDER BY seq`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Slot, error) {
		return scanSlot(row)
	})
}

// lockSlot locks the slot's campaign and then the slot. Slots never move
// between campaigns, so the unlocked campaign_id lookup is stable.
func lockSlot(ctx context.Context, tx pgx.Tx, slotID uuid.UUID) (domain.Campaign, domain.Slot, error) {
	var campaignID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT campaign_id FROM slots WHERE id = $1`, slotID).Scan(&campaignID); err != nil {
		return domain.Campaign{}, domain.Slot{}, notFound(err, "slot", slotID)
	}
	c, err := getCampaign(ctx, tx, campaignID, true)
	if err != nil {
		return domain.Campaign{}, domain.Slot{}, err
	}
	sl, err := scanSlot(tx.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1 FOR UPDATE`, slotID))
	if err != nil {
		return domain.Campaign{}, domain.Slot{}, notFound(err, "slot", slotID)
	}
	return c, sl, nil
}

func updateSlot(ctx context.Context, tx pgx.Tx, s domain.Slot) error {
	_, err := tx.Exec(ctx, `
        UPDATE slots
        SET publisher_id = $2, publisher_asset_id = $3, proof_url = $4, verified = $5, details = $6, status = $7,
            reserved_at = $8, submitted_at = $9, approved_at = $10, updated_at = $11
        WHERE id = $1`,
		s.ID, s.PublisherID, s.PublisherAssetID, s.ProofURL, s.Verified, s.Details, s.Status,
		s.ReservedAt, s.SubmittedAt, s.ApprovedAt, s.UpdatedAt)
	return err
}

// GetSlot returns a slot by id.
func (s *Store) GetSlot(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	sl, err := scanSlot(s.pool.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "slot", id)
	}
	return &sl, nil
}

// TransitionSlot applies ch under row locks. A slot whose status no longer
// matches ch.From fails with domain.ErrStateConflict and nothing is written.
// A payout, when the slot reaches approved, is recorded in the same
// transaction.
func (s *Store) TransitionSlot(ctx context.Context, ch domain.SlotChange) (*port.TransitionOutcome, error) {
	var out port.TransitionOutcome
	if ch.At.IsZero() {
		ch.At = s.now()
	}
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		c, sl, err := lockSlot(ctx, tx, ch.SlotID)
		if err != nil {
			return err
		}
		if ch.Event == domain.EventClaim && ch.AssetID != nil {
			a, err := scanAsset(tx.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR SHARE`, *ch.AssetID))
			if err != nil {
				return notFound(err, "asset", *ch.AssetID)
			}
			if err = ch.CheckAsset(a); err != nil {
				return err
			}
		}
		out = port.TransitionOutcome{From: sl.Status}
		payout, err := ch.Apply(&sl, &c)
		if err != nil {
			return err
		}
		if payout != nil {
			rec, err := s.applyTransfer(ctx, tx, *payout)
			if err != nil {
				return err
			}
			out.Transaction = &rec
		}
		if err = updateSlot(ctx, tx, sl); err != nil {
			return err
		}
		if err = updateCampaign(ctx, tx, c); err != nil {
			return err
		}
		out.Slot, out.Campaign = sl, c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
