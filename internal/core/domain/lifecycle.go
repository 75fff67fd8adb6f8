package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SlotChange is a guarded transition of one slot. Repositories load the slot
// and its campaign under a lock, call Apply, persist both and record the
// returned payout in the same transaction.
type SlotChange struct {
	SlotID uuid.UUID
	Event  SlotEvent
	// From is the status the slot must still have. It is the compare half of
	// the compare-and-set.
	From SlotStatus
	// Holder, when set, must still be the slot's publisher.
	Holder *uuid.UUID

	// Claim fields, used by EventClaim only.
	PublisherID *uuid.UUID
	AssetID     *uuid.UUID

	// Proof fields, used by the proof and retry events.
	ProofURL string
	Result   *VerificationResult

	At time.Time
}

// CheckAsset re-checks a claim against the asset as read under the
// repository's lock, so an asset disabled or transferred after the caller's
// read cannot take a slot. Events other than EventClaim pass.
func (ch SlotChange) CheckAsset(a Asset) error {
	if ch.Event != EventClaim {
		return nil
	}
	if ch.PublisherID == nil || ch.AssetID == nil || a.ID != *ch.AssetID {
		return fmt.Errorf("%w: claim asset mismatch", ErrValidation)
	}
	return a.ClaimableBy(*ch.PublisherID)
}

// Apply mutates s, and c when the slot gets paid, and returns the payout
// transfer to record, if any.
func (ch SlotChange) Apply(s *Slot, c *Campaign) (*Transfer, error) {
	if s.ID != ch.SlotID || s.CampaignID != c.ID {
		return nil, fmt.Errorf("%w: slot %s does not belong to campaign %s", ErrValidation, s.ID, c.ID)
	}
	if s.Status != ch.From {
		return nil, fmt.Errorf("%w: slot is %s, expected %s", ErrStateConflict, s.Status, ch.From)
	}
	if ch.Holder != nil && !s.ClaimedBy(*ch.Holder) {
		return nil, fmt.Errorf("%w: slot is held by another publisher", ErrStateConflict)
	}
	if ch.Event == EventClaim {
		if ch.PublisherID == nil || ch.AssetID == nil {
			return nil, fmt.Errorf("%w: claim requires publisher and asset", ErrValidation)
		}
		if c.Status != CampaignActive {
			return nil, fmt.Errorf("%w: campaign is %s", ErrStateConflict, c.Status)
		}
	}

	to, err := s.Apply(ch.Event, ch.At)
	if err != nil {
		return nil, err
	}
	switch ch.Event {
	case EventClaim:
		s.PublisherID = ch.PublisherID
		s.PublisherAssetID = ch.AssetID
	case EventProofPassed, EventProofFailed, EventRetryPassed, EventRetryFailed:
		if ch.Result != nil {
			verified := ch.Result.Verified
			s.ProofURL = ch.ProofURL
			s.Verified = &verified
			s.Details = ch.Result.Details
		}
	case EventApprove:
		verified := true
		s.Verified = &verified
	}

	if !to.Pays() {
		return nil, nil
	}
	if err = c.RecordApproval(ch.At); err != nil {
		return nil, err
	}
	slotID := s.ID
	return &Transfer{
		To:            s.PublisherID,
		Amount:        c.CreditReward,
		Type:          TxEarn,
		ReferenceType: RefSlot,
		ReferenceID:   &slotID,
		Description:   fmt.Sprintf("slot approved for campaign %q", c.Name),
	}, nil
}

// FundingTransfer is the escrow debit taken when a campaign is created.
func FundingTransfer(c Campaign) Transfer {
	owner, id := c.OwnerID, c.ID
	return Transfer{
		From:          &owner,
		Amount:        c.Budget(),
		Type:          TxSpend,
		ReferenceType: RefCampaign,
		ReferenceID:   &id,
		Description:   fmt.Sprintf("funded campaign %q (%d x %d)", c.Name, c.Quantity, c.CreditReward),
	}
}

// PlanCancellation cancels c when every remaining slot is open and returns
// the slots to delete plus the aggregate refund. The refund is nil when there
// is nothing to return.
func PlanCancellation(c *Campaign, slots []Slot, at time.Time) ([]uuid.UUID, *Transfer, error) {
	ids := make([]uuid.UUID, 0, len(slots))
	for _, s := range slots {
		if s.Status != SlotOpen {
			return nil, nil, fmt.Errorf("%w: slot %s is %s; wait for claimed slots to resolve", ErrStateConflict, s.ID, s.Status)
		}
		ids = append(ids, s.ID)
	}
	if err := c.Cancel(at); err != nil {
		return nil, nil, err
	}
	if len(ids) == 0 {
		return ids, nil, nil
	}
	owner, id := c.OwnerID, c.ID
	return ids, &Transfer{
		To:            &owner,
		Amount:        int64(len(ids)) * c.CreditReward,
		Type:          TxRefund,
		ReferenceType: RefCampaign,
		ReferenceID:   &id,
		Description:   fmt.Sprintf("cancelled campaign %q, %d open slots refunded", c.Name, len(ids)),
	}, nil
}

// PlanSlotRemoval shrinks c by one open slot and returns the refund.
func PlanSlotRemoval(c *Campaign, s Slot, at time.Time) (*Transfer, error) {
	if s.CampaignID != c.ID {
		return nil, fmt.Errorf("%w: slot %s does not belong to campaign %s", ErrValidation, s.ID, c.ID)
	}
	if s.Status != SlotOpen {
		return nil, fmt.Errorf("%w: only open slots can be removed, slot is %s", ErrStateConflict, s.Status)
	}
	if err := c.RemoveOpenSlot(at); err != nil {
		return nil, err
	}
	owner, id := c.OwnerID, s.ID
	return &Transfer{
		To:            &owner,
		Amount:        c.CreditReward,
		Type:          TxRefund,
		ReferenceType: RefSlot,
		ReferenceID:   &id,
		Description:   fmt.Sprintf("removed open slot from campaign %q", c.Name),
	}, nil
}
