package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SlotStatus is the state of one unit of campaign inventory.
type SlotStatus string

const (
	SlotOpen      SlotStatus = "open"
	SlotReserved  SlotStatus = "reserved"
	SlotSubmitted SlotStatus = "submitted"
	SlotApproved  SlotStatus = "approved"
	SlotRejected  SlotStatus = "rejected"
)

// ParseSlotStatus converts a stored value into a SlotStatus.
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch st := SlotStatus(s); st {
	case SlotOpen, SlotReserved, SlotSubmitted, SlotApproved, SlotRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown slot status %q", ErrValidation, s)
}

// SlotEvent is an input to the slot state machine.
type SlotEvent int

const (
	// EventClaim reserves an open slot for a publisher.
	EventClaim SlotEvent = iota
	// EventProofPassed is a first proof submission that verified.
	EventProofPassed
	// EventProofFailed is a first proof submission that did not verify.
	EventProofFailed
	// EventRetryPassed is a resubmitted proof that verified.
	EventRetryPassed
	// EventRetryFailed is a resubmitted proof that did not verify.
	EventRetryFailed
	// EventRelease is the publisher giving the slot back.
	EventRelease
	// EventApprove is a manual admin approval.
	EventApprove
	// EventReject is a manual admin rejection.
	EventReject
)

func (e SlotEvent) String() string {
	switch e {
	case EventClaim:
		return "claim"
	case EventProofPassed:
		return "proof_passed"
	case EventProofFailed:
		return "proof_failed"
	case EventRetryPassed:
		return "retry_passed"
	case EventRetryFailed:
		return "retry_failed"
	case EventRelease:
		return "release"
	case EventApprove:
		return "approve"
	case EventReject:
		return "reject"
	}
	return fmt.Sprintf("SlotEvent(%d)", int(e))
}

// slotTransitions is the complete transition table. Anything absent is a
// state conflict. Approved has no outgoing edges.
var slotTransitions = map[SlotStatus]map[SlotEvent]SlotStatus{
	SlotOpen: {
		EventClaim: SlotReserved,
	},
	SlotReserved: {
		EventProofPassed: SlotApproved,
		EventProofFailed: SlotSubmitted,
		EventRelease:     SlotOpen,
	},
	SlotSubmitted: {
		EventRetryPassed: SlotApproved,
		EventRetryFailed: SlotSubmitted,
		EventRelease:     SlotOpen,
		EventApprove:     SlotApproved,
		EventReject:      SlotRejected,
	},
	SlotRejected: {
		EventRelease: SlotOpen,
	},
	SlotApproved: {},
}

// Next returns the status reached by applying ev, or ErrStateConflict.
func (s SlotStatus) Next(ev SlotEvent) (SlotStatus, error) {
	edges, ok := slotTransitions[s]
	if !ok {
		return "", fmt.Errorf("%w: unknown slot status %q", ErrStateConflict, s)
	}
	to, ok := edges[ev]
	if !ok {
		return "", fmt.Errorf("%w: cannot %s a slot that is %s", ErrStateConflict, ev, s)
	}
	return to, nil
}

// Pays reports whether entering this status from another pays the publisher.
func (s SlotStatus) Pays() bool {
	return s == SlotApproved
}

// Slot is one claimable unit of a campaign. Placement fields left empty
// inherit from the campaign.
type Slot struct {
	ID              uuid.UUID
	CampaignID      uuid.UUID
	TargetURL       string
	TargetKeyword   string
	LinkType        LinkType
	PlacementFormat string

	PublisherID      *uuid.UUID
	PublisherAssetID *uuid.UUID
	ProofURL         string
	Verified         *bool // nil until a proof has been checked
	Details          []string
	Status           SlotStatus

	ReservedAt  *time.Time
	SubmittedAt *time.Time
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Requirement resolves the effective placement requirement against the
// owning campaign.
func (s Slot) Requirement(c Campaign) Requirement {
	return SlotOverride{
		TargetURL:     s.TargetURL,
		TargetKeyword: s.TargetKeyword,
		LinkType:      s.LinkType,
	}.apply(c.Requirement())
}

// ClaimedBy reports whether the given user currently holds the slot.
func (s Slot) ClaimedBy(userID uuid.UUID) bool {
	return s.PublisherID != nil && *s.PublisherID == userID
}

// Apply moves the slot along ev and updates the bookkeeping fields that go
// with the target status. It returns the new status.
func (s *Slot) Apply(ev SlotEvent, now time.Time) (SlotStatus, error) {
	to, err := s.Status.Next(ev)
	if err != nil {
		return "", err
	}
	switch to {
	case SlotOpen:
		s.PublisherID = nil
		s.PublisherAssetID = nil
		s.ProofURL = ""
		s.Verified = nil
		s.Details = nil
		s.ReservedAt = nil
		s.SubmittedAt = nil
		s.ApprovedAt = nil
	case SlotReserved:
		s.ReservedAt = &now
	case SlotSubmitted:
		s.SubmittedAt = &now
	case SlotApproved:
		if s.SubmittedAt == nil {
			s.SubmittedAt = &now
		}
		s.ApprovedAt = &now
	}
	s.Status = to
	s.UpdatedAt = now
	return to, nil
}
