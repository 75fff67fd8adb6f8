package port

import (
	"context"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
)

// SlotUseCase is the inbound port for the slot lifecycle.
type SlotUseCase interface {
	// GetSlot returns one slot.
	GetSlot(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*domain.Slot, error)
	// Claim reserves an open slot for the caller's approved asset. Two
	// concurrent claims on one slot never both succeed.
	Claim(ctx context.Context, caller domain.Caller, slotID, assetID uuid.UUID) (*domain.Slot, error)
	// SubmitProof verifies the proof page of a reserved slot. The slot ends
	// up approved and paid, or submitted awaiting a retry or admin review.
	SubmitProof(ctx context.Context, caller domain.Caller, slotID uuid.UUID, proofURL string) (*ProofOutcome, error)
	// RetryProof re-verifies a submitted slot with a new proof page.
	RetryProof(ctx context.Context, caller domain.Caller, slotID uuid.UUID, proofURL string) (*ProofOutcome, error)
	// Release gives a reserved, submitted or rejected slot back to the pool.
	// No credits move.
	Release(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*domain.Slot, error)
	// Approve manually approves a submitted slot and pays the publisher.
	Approve(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*TransitionOutcome, error)
	// Reject manually rejects a submitted slot.
	Reject(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*domain.Slot, error)
	// Preview runs the link verifier without touching any state.
	Preview(ctx context.Context, caller domain.Caller, proofURL string, req domain.Requirement) (*domain.VerificationResult, error)
}

// ProofOutcome couples the committed slot state with the verifier verdict.
type ProofOutcome struct {
	Slot         domain.Slot
	Campaign     domain.Campaign
	Verification domain.VerificationResult
	Payout       *domain.Transaction
}
