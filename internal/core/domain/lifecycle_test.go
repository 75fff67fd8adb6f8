package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCampaign(quantity int) (*Campaign, []Slot) {
	c, slots := NewCampaign{
		Name: "test", TargetURL: "https://target.com", TargetKeyword: "kw",
		LinkType: LinkDofollow, Quantity: quantity, CreditReward: 10,
	}.Build(uuid.New(), time.Now())
	return &c, slots
}

func TestSlotChangeClaim(t *testing.T) {
	c, slots := newTestCampaign(1)
	s := slots[0]
	pub, asset := uuid.New(), uuid.New()

	_, err := SlotChange{SlotID: s.ID, Event: EventClaim, From: SlotOpen}.Apply(&s, c)
	assert.ErrorIs(t, err, ErrValidation)

	c.Status = CampaignPaused
	_, err = SlotChange{SlotID: s.ID, Event: EventClaim, From: SlotOpen, PublisherID: &pub, AssetID: &asset}.Apply(&s, c)
	assert.ErrorIs(t, err, ErrStateConflict)

	c.Status = CampaignActive
	tr, err := SlotChange{SlotID: s.ID, Event: EventClaim, From: SlotOpen, PublisherID: &pub, AssetID: &asset}.Apply(&s, c)
	require.NoError(t, err)
	assert.Nil(t, tr)
	assert.Equal(t, SlotReserved, s.Status)
	assert.True(t, s.ClaimedBy(pub))
	assert.Equal(t, asset, *s.PublisherAssetID)
	assert.Equal(t, 0, c.FilledSlots)
}

func TestSlotChangeCheckAsset(t *testing.T) {
	pub, assetID := uuid.New(), uuid.New()
	ch := SlotChange{Event: EventClaim, From: SlotOpen, PublisherID: &pub, AssetID: &assetID}
	approved := Asset{ID: assetID, OwnerID: pub, Status: AssetApproved}

	assert.NoError(t, ch.CheckAsset(approved))

	disabled := approved
	disabled.Status = AssetDisabled
	assert.ErrorIs(t, ch.CheckAsset(disabled), ErrStateConflict)

	transferred := approved
	transferred.OwnerID = uuid.New()
	assert.ErrorIs(t, ch.CheckAsset(transferred), ErrForbidden)

	other := approved
	other.ID = uuid.New()
	assert.ErrorIs(t, ch.CheckAsset(other), ErrValidation)

	release := SlotChange{Event: EventRelease, From: SlotReserved}
	assert.NoError(t, release.CheckAsset(disabled))
}

func TestSlotChangeCompareAndSet(t *testing.T) {
	c, slots := newTestCampaign(1)
	s := slots[0]
	pub, other := uuid.New(), uuid.New()
	s.Status, s.PublisherID = SlotReserved, &pub

	_, err := SlotChange{SlotID: s.ID, Event: EventRelease, From: SlotSubmitted}.Apply(&s, c)
	assert.ErrorIs(t, err, ErrStateConflict, "stale expected status")

	_, err = SlotChange{SlotID: s.ID, Event: EventRelease, From: SlotReserved, Holder: &other}.Apply(&s, c)
	assert.ErrorIs(t, err, ErrStateConflict, "different holder")

	_, err = SlotChange{SlotID: uuid.New(), Event: EventRelease, From: SlotReserved}.Apply(&s, c)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, SlotReserved, s.Status)
}

func TestSlotChangePayout(t *testing.T) {
	c, slots := newTestCampaign(2)
	pub := uuid.New()
	res := &VerificationResult{Verified: true, Details: []string{"ok"}}

	for i := range slots {
		s := &slots[i]
		s.Status, s.PublisherID = SlotReserved, &pub
		tr, err := SlotChange{
			SlotID: s.ID, Event: EventProofPassed, From: SlotReserved,
			Holder: &pub, ProofURL: "https://blog.example.org", Result: res,
		}.Apply(s, c)
		require.NoError(t, err)
		require.NotNil(t, tr)
		assert.Equal(t, TxEarn, tr.Type)
		assert.Equal(t, pub, *tr.To)
		assert.Nil(t, tr.From)
		assert.Equal(t, int64(10), tr.Amount)
		assert.Equal(t, RefSlot, tr.ReferenceType)
		assert.Equal(t, s.ID, *tr.ReferenceID)
		require.NoError(t, tr.Validate())
		assert.True(t, *s.Verified)
		assert.Equal(t, "https://blog.example.org", s.ProofURL)
	}
	assert.Equal(t, 2, c.FilledSlots)
	assert.Equal(t, CampaignCompleted, c.Status)
}

func TestSlotChangeFailedProofDoesNotPay(t *testing.T) {
	c, slots := newTestCampaign(1)
	s := slots[0]
	pub := uuid.New()
	s.Status, s.PublisherID = SlotReserved, &pub

	tr, err := SlotChange{
		SlotID: s.ID, Event: EventProofFailed, From: SlotReserved,
		ProofURL: "https://blog.example.org", Result: &VerificationResult{Details: []string{"No link"}},
	}.Apply(&s, c)
	require.NoError(t, err)
	assert.Nil(t, tr)
	assert.Equal(t, SlotSubmitted, s.Status)
	assert.False(t, *s.Verified)
	assert.Equal(t, []string{"No link"}, s.Details)
	assert.Equal(t, 0, c.FilledSlots)
}

func TestPlanCancellation(t *testing.T) {
	c, slots := newTestCampaign(3)

	slots[1].Status = SlotRejected
	_, _, err := PlanCancellation(c, slots, time.Now())
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Equal(t, CampaignActive, c.Status)

	slots[1].Status = SlotOpen
	ids, refund, err := PlanCancellation(c, slots, time.Now())
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	assert.Equal(t, CampaignCancelled, c.Status)
	require.NotNil(t, refund)
	assert.Equal(t, int64(30), refund.Amount)
	assert.Equal(t, c.OwnerID, *refund.To)
	require.NoError(t, refund.Validate())
}

func TestPlanCancellationWithoutSlots(t *testing.T) {
	c, _ := newTestCampaign(1)
	ids, refund, err := PlanCancellation(c, nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Nil(t, refund)
}

func TestFundingTransfer(t *testing.T) {
	c, _ := newTestCampaign(4)
	tr := FundingTransfer(*c)
	require.NoError(t, tr.Validate())
	assert.Equal(t, TxSpend, tr.Type)
	assert.Equal(t, int64(40), tr.Amount)
	assert.Equal(t, c.OwnerID, *tr.From)
	assert.Nil(t, tr.To)
}
