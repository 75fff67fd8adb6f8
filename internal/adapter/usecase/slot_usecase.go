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

// SlotUseCase drives the slot lifecycle: claim, proof submission and retry,
// release, and admin review. Guards are checked against a fresh read, then
// the repository re-checks the expected status inside its transaction so a
// concurrent change turns into domain.ErrStateConflict instead of a lost
// update. The link verifier runs between the two with no lock held.
type SlotUseCase struct {
	store    port.Store
	verifier port.LinkVerifier
	logger   *slog.Logger
	now      func() time.Time
}

var _ port.SlotUseCase = (*SlotUseCase)(nil)

// NewSlotUseCase creates a usecase over the given store and verifier.
func NewSlotUseCase(store port.Store, verifier port.LinkVerifier, logger *slog.Logger) *SlotUseCase {
	return &SlotUseCase{
		store:    store,
		verifier: verifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetSlot returns one slot.
func (u *SlotUseCase) GetSlot(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*domain.Slot, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	return u.store.GetSlot(ctx, slotID)
}

// Claim reserves an open slot for the caller's asset. The campaign fill
// counter is not touched; it only moves when a slot is approved.
func (u *SlotUseCase) Claim(ctx context.Context, caller domain.Caller, slotID, assetID uuid.UUID) (*domain.Slot, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	slot, camp, err := u.load(ctx, slotID)
	if err != nil {
		return nil, err
	}
	asset, err := u.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err = camp.CheckClaim(caller, *asset); err != nil {
		return nil, err
	}
	if slot.Status != domain.SlotOpen {
		return nil, fmt.Errorf("%w: slot is %s", domain.ErrStateConflict, slot.Status)
	}

	out, err := u.store.TransitionSlot(ctx, domain.SlotChange{
		SlotID:      slotID,
		Event:       domain.EventClaim,
		From:        domain.SlotOpen,
		PublisherID: &caller.UserID,
		AssetID:     &assetID,
		At:          u.now(),
	})
	if err != nil {
		return nil, err
	}
	u.committed(out, caller)
	return &out.Slot, nil
}

// SubmitProof verifies the first proof for a reserved slot.
func (u *SlotUseCase) SubmitProof(ctx context.Context, caller domain.Caller, slotID uuid.UUID, proofURL string) (*port.ProofOutcome, error) {
	return u.prove(ctx, caller, slotID, proofURL, domain.SlotReserved, domain.EventProofPassed, domain.EventProofFailed)
}

// RetryProof verifies a replacement proof for a submitted slot that has not
// been verified yet.
func (u *SlotUseCase) RetryProof(ctx context.Context, caller domain.Caller, slotID uuid.UUID, proofURL string) (*port.ProofOutcome, error) {
	return u.prove(ctx, caller, slotID, proofURL, domain.SlotSubmitted, domain.EventRetryPassed, domain.EventRetryFailed)
}

func (u *SlotUseCase) prove(ctx context.Context, caller domain.Caller, slotID uuid.UUID, proofURL string, from domain.SlotStatus, passed, failed domain.SlotEvent) (*port.ProofOutcome, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	if err := domain.ValidateHTTPURL("proof url", proofURL); err != nil {
		return nil, err
	}
	slot, camp, err := u.load(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if !slot.ClaimedBy(caller.UserID) {
		return nil, fmt.Errorf("%w: slot is not claimed by caller", domain.ErrForbidden)
	}
	if slot.Status != from {
		return nil, fmt.Errorf("%w: slot is %s, expected %s", domain.ErrStateConflict, slot.Status, from)
	}
	if slot.Verified != nil && *slot.Verified {
		return nil, fmt.Errorf("%w: slot is already verified", domain.ErrStateConflict)
	}

	result := u.verifier.Verify(ctx, proofURL, slot.Requirement(*camp))

	ev := failed
	if result.Verified {
		ev = passed
	}
	out, err := u.store.TransitionSlot(ctx, domain.SlotChange{
		SlotID:   slotID,
		Event:    ev,
		From:     from,
		Holder:   &caller.UserID,
		ProofURL: proofURL,
		Result:   &result,
		At:       u.now(),
	})
	if err != nil {
		return nil, err
	}
	u.committed(out, caller)
	return &port.ProofOutcome{
		Slot:         out.Slot,
		Campaign:     out.Campaign,
		Verification: result,
		Payout:       out.Transaction,
	}, nil
}

// Release returns a slot held by the caller to the open pool. The claim was
// never billed, so no credits move.
func (u *SlotUseCase) Release(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*domain.Slot, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	slot, err := u.store.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if !slot.ClaimedBy(caller.UserID) {
		return nil, fmt.Errorf("%w: slot is not claimed by caller", domain.ErrForbidden)
	}
	out, err := u.store.TransitionSlot(ctx, domain.SlotChange{
		SlotID: slotID,
		Event:  domain.EventRelease,
		From:   slot.Status,
		Holder: &caller.UserID,
		At:     u.now(),
	})
	if err != nil {
		return nil, err
	}
	u.committed(out, caller)
	return &out.Slot, nil
}

// Approve is the admin override for a submitted slot. It pays the publisher
// and advances the campaign exactly like a verified proof.
func (u *SlotUseCase) Approve(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*port.TransitionOutcome, error) {
	return u.review(ctx, caller, slotID, domain.EventApprove)
}

// Reject is the admin rejection of a submitted slot.
func (u *SlotUseCase) Reject(ctx context.Context, caller domain.Caller, slotID uuid.UUID) (*domain.Slot, error) {
	out, err := u.review(ctx, caller, slotID, domain.EventReject)
	if err != nil {
		return nil, err
	}
	return &out.Slot, nil
}

func (u *SlotUseCase) review(ctx context.Context, caller domain.Caller, slotID uuid.UUID, ev domain.SlotEvent) (*port.TransitionOutcome, error) {
	if err := authorizeAdmin(ctx, u.store, caller); err != nil {
		return nil, err
	}
	out, err := u.store.TransitionSlot(ctx, domain.SlotChange{
		SlotID: slotID,
		Event:  ev,
		From:   domain.SlotSubmitted,
		At:     u.now(),
	})
	if err != nil {
		return nil, err
	}
	u.committed(out, caller)
	return out, nil
}

// Preview runs the verifier for an arbitrary requirement without touching
// any slot.
func (u *SlotUseCase) Preview(ctx context.Context, caller domain.Caller, proofURL string, req domain.Requirement) (*domain.VerificationResult, error) {
	if err := authorize(ctx, u.store, caller); err != nil {
		return nil, err
	}
	if err := domain.ValidateHTTPURL("proof url", proofURL); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	res := u.verifier.Verify(ctx, proofURL, req)
	return &res, nil
}

func (u *SlotUseCase) load(ctx context.Context, slotID uuid.UUID) (*domain.Slot, *domain.Campaign, error) {
	slot, err := u.store.GetSlot(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}
	camp, err := u.store.GetCampaign(ctx, slot.CampaignID)
	if err != nil {
		return nil, nil, err
	}
	return slot, camp, nil
}

func (u *SlotUseCase) committed(out *port.TransitionOutcome, caller domain.Caller) {
	metrics.RecordSlotTransition(out.From, out.Slot.Status)
	metrics.RecordTransaction(out.Transaction)
	attrs := []any{
		slog.String("slot_id", out.Slot.ID.String()),
		slog.String("campaign_id", out.Campaign.ID.String()),
		slog.String("caller_id", caller.UserID.String()),
		slog.String("from", string(out.From)),
		slog.String("to", string(out.Slot.Status)),
	}
	if out.Transaction != nil {
		attrs = append(attrs, slog.Int64("payout", out.Transaction.Amount))
		if out.Campaign.Status == domain.CampaignCompleted {
			metrics.RecordCampaignEvent("completed")
			u.logger.Info("campaign completed",
				slog.String("campaign_id", out.Campaign.ID.String()),
				slog.Int("filled_slots", out.Campaign.FilledSlots))
		}
	}
	u.logger.Info("slot transition", attrs...)
}
