package port

import (
	"context"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
)

// LedgerRepository owns user balances and the append-only transaction log.
// Implementations must apply a balance change and its transaction record in
// the same atomic unit and serialize concurrent changes per user.
type LedgerRepository interface {
	// GetUser returns the user or domain.ErrNotFound.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// ApplyTransfer settles t and records exactly one transaction.
	ApplyTransfer(ctx context.Context, t domain.Transfer) (*domain.Transaction, error)
	// ListTransactions returns the newest transactions where the user is on
	// either side.
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error)
	// LedgerTotals sums everything the user received and gave since genesis
	// together with the stored balance, read in one snapshot.
	LedgerTotals(ctx context.Context, userID uuid.UUID) (domain.Reconciliation, error)
}

// DirectoryRepository stores the users and assets maintained by external
// collaborators (identity sync, asset review). The core only reads them.
type DirectoryRepository interface {
	UpsertUser(ctx context.Context, u domain.User) error
	UpsertAsset(ctx context.Context, a domain.Asset) error
	// GetAsset returns the asset or domain.ErrNotFound.
	GetAsset(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
}

// CampaignRepository persists campaigns together with their slots.
type CampaignRepository interface {
	// CreateCampaign debits funding and stores the campaign and its slots
	// atomically. Nothing is stored when the owner cannot pay.
	CreateCampaign(ctx context.Context, c domain.Campaign, slots []domain.Slot, funding domain.Transfer) (*domain.Transaction, error)
	// GetCampaign returns the campaign or domain.ErrNotFound.
	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	// ListCampaignSlots returns the campaign's slots in creation order.
	ListCampaignSlots(ctx context.Context, campaignID uuid.UUID) ([]domain.Slot, error)
	// SetCampaignPaused pauses or resumes a campaign under a row lock.
	SetCampaignPaused(ctx context.Context, id uuid.UUID, paused bool) (*domain.Campaign, error)
	// CancelCampaign runs domain.PlanCancellation under a campaign lock,
	// deletes the open slots and records the refund.
	CancelCampaign(ctx context.Context, id uuid.UUID) (*CancelOutcome, error)
	// RemoveSlot runs domain.PlanSlotRemoval under a campaign lock, deletes
	// the slot and records the refund.
	RemoveSlot(ctx context.Context, slotID uuid.UUID) (*CancelOutcome, error)
}

// SlotRepository persists slot transitions.
type SlotRepository interface {
	// GetSlot returns the slot or domain.ErrNotFound.
	GetSlot(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	// TransitionSlot applies ch to the locked slot and campaign, and records
	// the payout when the slot reaches approved, all in one transaction. A
	// slot no longer in ch.From yields domain.ErrStateConflict.
	TransitionSlot(ctx context.Context, ch domain.SlotChange) (*TransitionOutcome, error)
}

// Store is the full persistence port implemented by the adapters.
type Store interface {
	LedgerRepository
	DirectoryRepository
	CampaignRepository
	SlotRepository
}

// TransitionOutcome is the committed result of a slot transition.
type TransitionOutcome struct {
	From        domain.SlotStatus
	Slot        domain.Slot
	Campaign    domain.Campaign
	Transaction *domain.Transaction // payout, if any
}

// CancelOutcome is the committed result of a campaign or slot cancellation.
type CancelOutcome struct {
	Campaign     domain.Campaign
	RemovedSlots []uuid.UUID
	Refund       *domain.Transaction
}
