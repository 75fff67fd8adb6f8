package domain

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CampaignStatus is the lifecycle state of a campaign. Completed and
// cancelled are terminal.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s CampaignStatus) Terminal() bool {
	return s == CampaignCompleted || s == CampaignCancelled
}

// LinkType is the kind of placement a campaign asks for.
type LinkType string

const (
	LinkDofollow     LinkType = "hyperlink_dofollow"
	LinkNofollow     LinkType = "hyperlink_nofollow"
	LinkBrandMention LinkType = "brand_mention"
)

// Valid reports whether t is one of the known link types.
func (t LinkType) Valid() bool {
	switch t {
	case LinkDofollow, LinkNofollow, LinkBrandMention:
		return true
	}
	return false
}

// Campaign is an advertiser's funded request for Quantity placements.
// Invariant: 0 <= FilledSlots <= Quantity, and Status is completed exactly
// when FilledSlots == Quantity.
type Campaign struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	TargetURL       string
	TargetKeyword   string
	LinkType        LinkType
	PlacementFormat string // e.g. guest_post, niche_edit
	Industry        string // optional; must match the asset industry when both are set
	Quantity        int
	FilledSlots     int
	CreditReward    int64 // per slot
	Status          CampaignStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Budget is the amount escrowed when the campaign is funded.
func (c Campaign) Budget() int64 {
	return int64(c.Quantity) * c.CreditReward
}

// Requirement is the placement a slot of this campaign must satisfy when the
// slot carries no override.
func (c Campaign) Requirement() Requirement {
	return Requirement{TargetURL: c.TargetURL, TargetKeyword: c.TargetKeyword, LinkType: c.LinkType}
}

// CheckClaim validates that a publisher may reserve a slot of this campaign
// with the given asset.
func (c Campaign) CheckClaim(caller Caller, asset Asset) error {
	if c.Status != CampaignActive {
		return fmt.Errorf("%w: campaign is %s", ErrStateConflict, c.Status)
	}
	if c.OwnerID == caller.UserID {
		return fmt.Errorf("%w: cannot claim a slot of your own campaign", ErrForbidden)
	}
	if err := asset.ClaimableBy(caller.UserID); err != nil {
		return err
	}
	if c.Industry != "" && asset.Industry != "" && !strings.EqualFold(c.Industry, asset.Industry) {
		return fmt.Errorf("%w: asset industry %q does not match campaign industry %q", ErrValidation, asset.Industry, c.Industry)
	}
	return nil
}

// RecordApproval advances the fill counter after a slot reached approved and
// completes the campaign once every slot is filled.
func (c *Campaign) RecordApproval(now time.Time) error {
	if c.Status == CampaignCancelled {
		return fmt.Errorf("%w: campaign is cancelled", ErrStateConflict)
	}
	if c.FilledSlots >= c.Quantity {
		return fmt.Errorf("%w: campaign already has %d of %d slots filled", ErrStateConflict, c.FilledSlots, c.Quantity)
	}
	c.FilledSlots++
	c.settle()
	c.UpdatedAt = now
	return nil
}

// RemoveOpenSlot shrinks the campaign after its owner deleted one unclaimed
// slot.
func (c *Campaign) RemoveOpenSlot(now time.Time) error {
	if c.Status.Terminal() {
		return fmt.Errorf("%w: campaign is %s", ErrStateConflict, c.Status)
	}
	if c.Quantity <= c.FilledSlots {
		return fmt.Errorf("%w: no unfilled slots left", ErrStateConflict)
	}
	c.Quantity--
	if c.Quantity == 0 {
		c.Status = CampaignCancelled
	} else {
		c.settle()
	}
	c.UpdatedAt = now
	return nil
}

// Cancel marks the campaign cancelled. The caller has already checked that
// every remaining slot is open.
func (c *Campaign) Cancel(now time.Time) error {
	if c.Status.Terminal() {
		return fmt.Errorf("%w: campaign is %s", ErrStateConflict, c.Status)
	}
	c.Status = CampaignCancelled
	c.UpdatedAt = now
	return nil
}

// SetPaused moves an active campaign to paused or back.
func (c *Campaign) SetPaused(paused bool, now time.Time) error {
	from, to := CampaignActive, CampaignPaused
	if !paused {
		from, to = CampaignPaused, CampaignActive
	}
	if c.Status != from {
		return fmt.Errorf("%w: campaign is %s", ErrStateConflict, c.Status)
	}
	c.Status = to
	c.UpdatedAt = now
	return nil
}

func (c *Campaign) settle() {
	if c.FilledSlots == c.Quantity {
		c.Status = CampaignCompleted
	}
}

// SlotOverride replaces campaign-level placement fields for one slot. Empty
// fields inherit from the campaign.
type SlotOverride struct {
	TargetURL       string
	TargetKeyword   string
	LinkType        LinkType
	PlacementFormat string
}

// NewCampaign is the input for funding a campaign.
type NewCampaign struct {
	Name            string
	TargetURL       string
	TargetKeyword   string
	LinkType        LinkType
	PlacementFormat string
	Industry        string
	Quantity        int
	CreditReward    int64
	Overrides       []SlotOverride // at most Quantity, applied to the first slots
}

// Validate checks the campaign input before any state is touched.
func (n NewCampaign) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if n.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if n.CreditReward < 1 {
		return fmt.Errorf("%w: credit reward must be positive", ErrValidation)
	}
	if n.CreditReward > math.MaxInt64/int64(n.Quantity) {
		return fmt.Errorf("%w: budget of %d slots at %d credits overflows", ErrValidation, n.Quantity, n.CreditReward)
	}
	if len(n.Overrides) > n.Quantity {
		return fmt.Errorf("%w: %d overrides for %d slots", ErrValidation, len(n.Overrides), n.Quantity)
	}
	base := Requirement{TargetURL: n.TargetURL, TargetKeyword: n.TargetKeyword, LinkType: n.LinkType}
	if err := base.Validate(); err != nil {
		return err
	}
	for i, o := range n.Overrides {
		if err := o.apply(base).Validate(); err != nil {
			return fmt.Errorf("slot %d: %w", i+1, err)
		}
	}
	return nil
}

func (o SlotOverride) apply(r Requirement) Requirement {
	if o.TargetURL != "" {
		r.TargetURL = o.TargetURL
	}
	if o.TargetKeyword != "" {
		r.TargetKeyword = o.TargetKeyword
	}
	if o.LinkType != "" {
		r.LinkType = o.LinkType
	}
	return r
}

// Build materialises the campaign and its Quantity open slots.
func (n NewCampaign) Build(owner uuid.UUID, now time.Time) (Campaign, []Slot) {
	c := Campaign{
		ID:              uuid.New(),
		OwnerID:         owner,
		Name:            strings.TrimSpace(n.Name),
		TargetURL:       n.TargetURL,
		TargetKeyword:   n.TargetKeyword,
		LinkType:        n.LinkType,
		PlacementFormat: n.PlacementFormat,
		Industry:        n.Industry,
		Quantity:        n.Quantity,
		CreditReward:    n.CreditReward,
		Status:          CampaignActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	slots := make([]Slot, n.Quantity)
	for i := range slots {
		slots[i] = Slot{
			ID:         uuid.New(),
			CampaignID: c.ID,
			Status:     SlotOpen,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if i < len(n.Overrides) {
			o := n.Overrides[i]
			slots[i].TargetURL = o.TargetURL
			slots[i].TargetKeyword = o.TargetKeyword
			slots[i].LinkType = o.LinkType
			slots[i].PlacementFormat = o.PlacementFormat
		}
	}
	return c, slots
}

// Requirement is the placement a proof page has to contain.
type Requirement struct {
	TargetURL     string
	TargetKeyword string
	LinkType      LinkType
}

// Validate checks that the requirement can be verified.
func (r Requirement) Validate() error {
	if !r.LinkType.Valid() {
		return fmt.Errorf("%w: invalid link type %q", ErrValidation, r.LinkType)
	}
	if r.LinkType == LinkBrandMention {
		if strings.TrimSpace(r.TargetKeyword) == "" {
			return fmt.Errorf("%w: brand mentions require a keyword", ErrValidation)
		}
		return nil
	}
	return ValidateHTTPURL("target url", r.TargetURL)
}

// ValidateHTTPURL checks that raw is an absolute http(s) URL.
func ValidateHTTPURL(field, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %s must be an absolute http(s) url", ErrValidation, field)
	}
	return nil
}

// Fulfillment summarises how far a campaign has progressed.
type Fulfillment struct {
	CampaignID uuid.UUID
	Status     CampaignStatus
	Quantity   int
	Filled     int
	Remaining  int
	Open       int
	Reserved   int
	Submitted  int
	Approved   int
	Rejected   int
}

// NewFulfillment derives the summary from a campaign and its slots.
func NewFulfillment(c Campaign, slots []Slot) Fulfillment {
	f := Fulfillment{
		CampaignID: c.ID,
		Status:     c.Status,
		Quantity:   c.Quantity,
		Filled:     c.FilledSlots,
		Remaining:  c.Quantity - c.FilledSlots,
	}
	for _, s := range slots {
		f.Count(s.Status, 1)
	}
	return f
}

// Count adds n slots of the given status to the per-status tallies.
func (f *Fulfillment) Count(s SlotStatus, n int) {
	switch s {
	case SlotOpen:
		f.Open += n
	case SlotReserved:
		f.Reserved += n
	case SlotSubmitted:
		f.Submitted += n
	case SlotApproved:
		f.Approved += n
	case SlotRejected:
		f.Rejected += n
	}
}
