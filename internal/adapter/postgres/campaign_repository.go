package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
)

const campaignColumns = `id, owner_id, name, target_url, target_keyword, link_type, placement_format, industry,
    quantity, filled_slots, credit_reward, status, created_at, updated_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.TargetURL, &c.TargetKeyword, &c.LinkType, &c.PlacementFormat, &c.Industry,
		&c.Quantity, &c.FilledSlots, &c.CreditReward, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// getCampaign reads one campaign, locking it when forUpdate is set.
func getCampaign(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	c, err := scanCampaign(q.QueryRow(ctx, query, id))
	if err != nil {
		return c, notFound(err, "campaign", id)
	}
	return c, nil
}

func updateCampaign(ctx context.Context, tx pgx.Tx, c domain.Campaign) error {
	_, err := tx.Exec(ctx, `
        UPDATE campaigns SET quantity = $2, filled_slots = $3, status = $4, updated_at = $5
        WHERE id = $1`, c.ID, c.Quantity, c.FilledSlots, c.Status, c.UpdatedAt)
	return err
}

// CreateCampaign debits the funding transfer and inserts the campaign with
// its slots in one transaction.
func (s *Store) CreateCampaign(ctx context.Context, c domain.Campaign, slots []domain.Slot, funding domain.Transfer) (*domain.Transaction, error) {
	var rec domain.Transaction
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if rec, err = s.applyTransfer(ctx, tx, funding); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			c.ID, c.OwnerID, c.Name, c.TargetURL, c.TargetKeyword, c.LinkType, c.PlacementFormat, c.Industry,
			c.Quantity, c.FilledSlots, c.CreditReward, c.Status, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for _, sl := range slots {
			batch.Queue(`INSERT INTO slots (id, campaign_id, target_url, target_keyword, link_type, placement_format, status, created_at, updated_at)
                VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
				sl.ID, sl.CampaignID, sl.TargetURL, sl.TargetKeyword, sl.LinkType, sl.PlacementFormat, sl.Status, sl.CreatedAt, sl.UpdatedAt)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetCampaign returns a campaign by id.
func (s *Store) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := getCampaign(ctx, s.pool, id, false)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaignSlots returns the campaign's slots in creation order.
func (s *Store) ListCampaignSlots(ctx context.Context, campaignID uuid.UUID) ([]domain.Slot, error) {
	if _, err := getCampaign(ctx, s.pool, campaignID, false); err != nil {
		return nil, err
	}
	return listSlots(ctx, s.pool, campaignID, false)
}

// SetCampaignPaused pauses or resumes the campaign.
func (s *Store) SetCampaignPaused(ctx context.Context, id uuid.UUID, paused bool) (*domain.Campaign, error) {
	var c domain.Campaign
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if c, err = getCampaign(ctx, tx, id, true); err != nil {
			return err
		}
		if err = c.SetPaused(paused, s.now()); err != nil {
			return err
		}
		return updateCampaign(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CancelCampaign cancels the campaign, deletes its open slots and refunds
// them, provided no slot has been claimed.
func (s *Store) CancelCampaign(ctx context.Context, id uuid.UUID) (*port.CancelOutcome, error) {
	var out port.CancelOutcome
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		out = port.CancelOutcome{}
		c, err := getCampaign(ctx, tx, id, true)
		if err != nil {
			return err
		}
		slots, err := listSlots(ctx, tx, id, true)
		if err != nil {
			return err
		}
		ids, refund, err := domain.PlanCancellation(&c, slots, s.now())
		if err != nil {
			return err
		}
		if refund != nil {
			rec, err := s.applyTransfer(ctx, tx, *refund)
			if err != nil {
				return err
			}
			out.Refund = &rec
		}
		if err = deleteSlots(ctx, tx, ids); err != nil {
			return err
		}
		if err = updateCampaign(ctx, tx, c); err != nil {
			return err
		}
		out.Campaign, out.RemovedSlots = c, ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveSlot deletes one open slot, shrinks its campaign and refunds the
// slot's reward.
func (s *Store) RemoveSlot(ctx context.Context, slotID uuid.UUID) (*port.CancelOutcome, error) {
	var out port.CancelOutcome
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		c, sl, err := lockSlot(ctx, tx, slotID)
		if err != nil {
			return err
		}
		refund, err := domain.PlanSlotRemoval(&c, sl, s.now())
		if err != nil {
			return err
		}
		rec, err := s.applyTransfer(ctx, tx, *refund)
		if err != nil {
			return err
		}
		if err = deleteSlots(ctx, tx, []uuid.UUID{slotID}); err != nil {
			return err
		}
		if err = updateCampaign(ctx, tx, c); err != nil {
			return err
		}
		out = port.CancelOutcome{Campaign: c, RemovedSlots: []uuid.UUID{slotID}, Refund: &rec}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func deleteSlots(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	tag, err := tx.Exec(ctx, `DELETE FROM slots WHERE id = ANY($1::uuid[])`, strs)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("%w: expected to delete %d slots, deleted %d", domain.ErrStateConflict, len(ids), tag.RowsAffected())
	}
	return nil
}
