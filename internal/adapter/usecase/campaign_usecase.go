package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
	"linkswap/internal/observability/metrics"
)

// CampaignUseCase funds campaigns and tracks their fulfillment.
type CampaignUseCase struct {
	store  port.Store
	logger *slog.Logger
	now    func() time.Time
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// NewCampaignUseCase creates a usecase over the given store.
func NewCampaignUseCase(store port.Store, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create escrows quantity x reward from the caller and creates the slots.
func (u *CampaignUseCase) Create(ctx context.Context, caller domain.Caller, in domain.NewCampaign) (*port.CreatedCampaign, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	camp, slots := in.Build(caller.UserID, u.now())
	tx, err := u.store.CreateCampaign(ctx, camp, slots, domain.FundingTransfer(camp))
	if err != nil {
		return nil, err
	}
	metrics.RecordTransaction(tx)
	metrics.RecordCampaignEvent("created")
	u.logger.Info("campaign created",
		slog.String("campaign_id", camp.ID.String()),
		slog.String("owner_id", caller.UserID.String()),
		slog.Int("quantity", camp.Quantity),
		slog.Int64("budget", camp.Budget()))
	return &port.CreatedCampaign{Campaign: camp, Slots: slots, Funding: *tx}, nil
}

// Get returns a campaign.
func (u *CampaignUseCase) Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Campaign, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	return u.store.GetCampaign(ctx, id)
}

// Slots lists the campaign's slots.
func (u *CampaignUseCase) Slots(ctx context.Context, caller domain.Caller, id uuid.UUID) ([]domain.Slot, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	return u.store.ListCampaignSlots(ctx, id)
}

// Fulfillment reports fill progress and per-status slot counts.
func (u *CampaignUseCase) Fulfillment(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Fulfillment, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	camp, err := u.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, err := u.store.ListCampaignSlots(ctx, id)
	if err != nil {
		return nil, err
	}
	f := domain.NewFulfillment(*camp, slots)
	return &f, nil
}

// Pause stops new claims.
func (u *CampaignUseCase) Pause(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Campaign, error) {
	return u.setPaused(ctx, caller, id, true)
}

// Resume reopens a paused campaign.
func (u *CampaignUseCase) Resume(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Campaign, error) {
	return u.setPaused(ctx, caller, id, false)
}

func (u *CampaignUseCase) setPaused(ctx context.Context, caller domain.Caller, id uuid.UUID, paused bool) (*domain.Campaign, error) {
	if _, err := u.owned(ctx, caller, id); err != nil {
		return nil, err
	}
	camp, err := u.store.SetCampaignPaused(ctx, id, paused)
	if err != nil {
		return nil, err
	}
	event := "resumed"
	if paused {
		event = "paused"
	}
	metrics.RecordCampaignEvent(event)
	u.logger.Info("campaign "+event, slog.String("campaign_id", id.String()))
	return camp, nil
}

// Cancel cancels a campaign whose slots are all open. Any claimed, submitted,
// approved or rejected slot blocks cancellation.
func (u *CampaignUseCase) Cancel(ctx context.Context, caller domain.Caller, id uuid.UUID) (*port.CancelOutcome, error) {
	if _, err := u.owned(ctx, caller, id); err != nil {
		return nil, err
	}
	out, err := u.store.CancelCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.RecordTransaction(out.Refund)
	metrics.RecordCampaignEvent("cancelled")
	refunded := int64(0)
	if out.Refund != nil {
		refunded = out.Refund.Amount
	}
	u.logger.Info("campaign cancelled",
		slog.String("campaign_id", id.String()),
		slog.Int("removed_slots", len(out.RemovedSlots)),
		slog.Int64("refunded", refunded))
	return out, nil
}

// CancelSlot removes one open slot from the caller's campaign and refunds
// its reward.
func (u *CampaignUseCase) CancelSlot(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*port.CancelOutcome, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	slot, err := u.store.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if _, err = u.ownedBy(ctx, caller, slot.CampaignID); err != nil {
		return nil, err
	}
	out, err := u.store.RemoveSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	metrics.RecordTransaction(out.Refund)
	metrics.RecordCampaignEvent("slot_removed")
	u.logger.Info("open slot removed",
		slog.String("slot_id", slotID.String()),
		slog.String("campaign_id", out.Campaign.ID.String()),
		slog.String("campaign_status", string(out.Campaign.Status)))
	return out, nil
}

// owned authorizes the caller and checks that they own the campaign.
func (u *CampaignUseCase) owned(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Campaign, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	return u.ownedBy(ctx, caller, id)
}

func (u *CampaignUseCase) ownedBy(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Campaign, error) {
	camp, err := u.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if camp.OwnerID != caller.UserID {
		return nil, fmt.Errorf("%w: campaign is owned by another user", domain.ErrForbidden)
	}
	return camp, nil
}
