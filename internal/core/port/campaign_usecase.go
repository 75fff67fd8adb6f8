package port

import (
	"context"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
)

// CampaignUseCase is the inbound port for campaign funding and fulfillment.
type CampaignUseCase interface {
	// Create funds a campaign: quantity x reward is debited from the caller
	// and one open slot is created per unit of quantity.
	Create(ctx context.Context, caller domain.Caller, in domain.NewCampaign) (*CreatedCampaign, error)
	// Get returns a campaign.
	Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Campaign, error)
	// Slots lists the campaign's slots.
	Slots(ctx context.Context, caller domain.Caller, id uuid.UUID) ([]domain.Slot, error)
	// Fulfillment reports fill progress and per-status slot counts.
	Fulfillment(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Fulfillment, error)
	// Pause stops new claims on an active campaign.
	Pause(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Campaign, error)
	// Resume reopens a paused campaign for claims.
	Resume(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Campaign, error)
	// Cancel cancels a campaign whose slots are all open and refunds them.
	Cancel(ctx context.Context, caller domain.Caller, id uuid.UUID) (*CancelOutcome, error)
	// CancelSlot removes one open slot and refunds its reward.
	CancelSlot(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*CancelOutcome, error)
}

// CreatedCampaign is the funded campaign with its slots and funding entry.
type CreatedCampaign struct {
	Campaign domain.Campaign
	Slots    []domain.Slot
	Funding  domain.Transaction
}
