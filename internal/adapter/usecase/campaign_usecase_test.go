package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkswap/internal/core/domain"
)

func TestCreateCampaign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.campaigns.Create(ctx, f.owner, domain.NewCampaign{
		Name: " launch ", TargetURL: "https://target.com", TargetKeyword: "target",
		LinkType: domain.LinkNofollow, PlacementFormat: "guest_post", Quantity: 4, CreditReward: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, "launch", out.Campaign.Name)
	assert.Equal(t, domain.CampaignActive, out.Campaign.Status)
	assert.Equal(t, 0, out.Campaign.FilledSlots)
	assert.Len(t, out.Slots, 4)

	assert.Equal(t, domain.TxSpend, out.Funding.Type)
	assert.Equal(t, int64(100), out.Funding.Amount)
	require.NotNil(t, out.Funding.FromUserID)
	assert.Equal(t, f.owner.UserID, *out.Funding.FromUserID)
	assert.Nil(t, out.Funding.ToUserID)
	assert.Equal(t, int64(900), f.balance(t, f.owner.UserID))

	slots := f.slotsOf(t, out.Campaign.ID)
	require.Len(t, slots, 4)
	for i, s := range slots {
		assert.Equal(t, out.Slots[i].ID, s.ID)
		assert.Equal(t, domain.SlotOpen, s.Status)
	}
	f.requireReconciled(t, f.owner.UserID)
}

func TestCreateCampaignInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.campaigns.Create(ctx, f.owner, domain.NewCampaign{
		Name: "too big", TargetURL: "https://target.com", LinkType: domain.LinkDofollow,
		Quantity: 11, CreditReward: 100,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, int64(1000), f.balance(t, f.owner.UserID))

	hist, err := f.ledger.History(ctx, f.owner, f.owner.UserID, 0)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "only the initial grant")
}

func TestCreateCampaignValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	valid := domain.NewCampaign{
		Name: "ok", TargetURL: "https://target.com", TargetKeyword: "kw",
		LinkType: domain.LinkDofollow, Quantity: 1, CreditReward: 1,
	}
	tests := []struct {
		name   string
		mutate func(*domain.NewCampaign)
	}{
		{"empty name", func(n *domain.NewCampaign) { n.Name = "  " }},
		{"zero quantity", func(n *domain.NewCampaign) { n.Quantity = 0 }},
		{"zero reward", func(n *domain.NewCampaign) { n.CreditReward = 0 }},
		{"budget overflows", func(n *domain.NewCampaign) {
			n.Quantity = 3
			n.CreditReward = math.MaxInt64/3 + 1
		}},
		{"unknown link type", func(n *domain.NewCampaign) { n.LinkType = "sponsored" }},
		{"relative target", func(n *domain.NewCampaign) { n.TargetURL = "/page" }},
		{"brand mention without keyword", func(n *domain.NewCampaign) {
			n.LinkType = domain.LinkBrandMention
			n.TargetKeyword = ""
		}},
		{"too many overrides", func(n *domain.NewCampaign) {
			n.Overrides = []domain.SlotOverride{{}, {}}
		}},
		{"bad override", func(n *domain.NewCampaign) {
			n.Overrides = []domain.SlotOverride{{TargetURL: "ftp://target.com"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := f.campaigns.Create(ctx, f.owner, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Equal(t, int64(1000), f.balance(t, f.owner.UserID))
}

func TestCreateCampaignRejectsWrappingBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.campaigns.Create(ctx, f.owner, domain.NewCampaign{
		Name: "wrap", TargetURL: "https://target.com", LinkType: domain.LinkDofollow,
		Quantity: 3, CreditReward: 6148914691236517206,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, int64(1000), f.balance(t, f.owner.UserID))

	hist, err := f.ledger.History(ctx, f.owner, f.owner.UserID, 0)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "no funding transaction")
	f.requireReconciled(t, f.owner.UserID)
}

func TestCancelCampaignRefundsOpenSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.newCampaign(t, 3, 100)
	assert.Equal(t, int64(700), f.balance(t, f.owner.UserID))

	_, err := f.campaigns.Cancel(ctx, f.publisher, camp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.campaigns.Cancel(ctx, f.owner, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignCancelled, out.Campaign.Status)
	assert.Len(t, out.RemovedSlots, 3)
	require.NotNil(t, out.Refund)
	assert.Equal(t, domain.TxRefund, out.Refund.Type)
	assert.Equal(t, int64(300), out.Refund.Amount)
	assert.Equal(t, int64(1000), f.balance(t, f.owner.UserID))
	assert.Empty(t, f.slotsOf(t, camp.ID))

	_, err = f.campaigns.Cancel(ctx, f.owner, camp.ID)
	assert.ErrorIs(t, err, domain.ErrStateConflict)

	f.requireReconciled(t, f.owner.UserID)
}

// TestCancelBlockedByClaimedSlot covers an owner cancelling while a slot is
// still held by a publisher.
func TestCancelBlockedByClaimedSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.newCampaign(t, 2, 100)
	slots := f.slotsOf(t, camp.ID)
	_, err := f.slots.Claim(ctx, f.publisher, slots[0].ID, f.asset)
	require.NoError(t, err)

	_, err = f.campaigns.Cancel(ctx, f.owner, camp.ID)
	assert.ErrorIs(t, err, domain.ErrStateConflict)

	c, err := f.campaigns.Get(ctx, f.owner, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignActive, c.Status)
	assert.Len(t, f.slotsOf(t, camp.ID), 2)
	assert.Equal(t, int64(800), f.balance(t, f.owner.UserID))

	_, err = f.slots.Release(ctx, f.publisher, slots[0].ID)
	require.NoError(t, err)
	out, err := f.campaigns.Cancel(ctx, f.owner, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), out.Refund.Amount)
	assert.Equal(t, int64(1000), f.balance(t, f.owner.UserID))
}

func TestCancelSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.newCampaign(t, 3, 40)
	slots := f.slotsOf(t, camp.ID)

	_, err := f.campaigns.CancelSlot(ctx, f.publisher, slots[2].ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.slots.Claim(ctx, f.publisher, slots[0].ID, f.asset)
	require.NoError(t, err)
	_, err = f.campaigns.CancelSlot(ctx, f.owner, slots[0].ID)
	assert.ErrorIs(t, err, domain.ErrStateConflict)

	out, err := f.campaigns.CancelSlot(ctx, f.owner, slots[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Campaign.Quantity)
	assert.Equal(t, domain.CampaignActive, out.Campaign.Status)
	require.NotNil(t, out.Refund)
	assert.Equal(t, int64(40), out.Refund.Amount)
	assert.Equal(t, domain.RefSlot, out.Refund.ReferenceType)
	assert.Equal(t, int64(1000-120+40), f.balance(t, f.owner.UserID))
	assert.Len(t, f.slotsOf(t, camp.ID), 2)

	_, err = f.campaigns.CancelSlot(ctx, f.owner, slots[2].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.requireReconciled(t, f.owner.UserID)
}

// TestCancelSlotCompletesCampaign removes the last unfilled slot of a
// campaign whose other slots are all approved.
func TestCancelSlotCompletesCampaign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.newCampaign(t, 2, 10)
	slots := f.slotsOf(t, camp.ID)
	f.approved(t, slots[0].ID)

	out, err := f.campaigns.CancelSlot(ctx, f.owner, slots[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Campaign.Quantity)
	assert.Equal(t, 1, out.Campaign.FilledSlots)
	assert.Equal(t, domain.CampaignCompleted, out.Campaign.Status)
	f.requireReconciled(t, f.everyone()...)
}

func TestCancelLastSlotCancelsCampaign(t *testing.T) {
	f := newFixture(t)
	camp := f.newCampaign(t, 1, 10)

	out, err := f.campaigns.CancelSlot(context.Background(), f.owner, f.slotsOf(t, camp.ID)[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Campaign.Quantity)
	assert.Equal(t, domain.CampaignCancelled, out.Campaign.Status)
	assert.Equal(t, int64(1000), f.balance(t, f.owner.UserID))
}

func TestPauseResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.newCampaign(t, 1, 10)

	_, err := f.campaigns.Pause(ctx, f.publisher, camp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	c, err := f.campaigns.Pause(ctx, f.owner, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignPaused, c.Status)

	_, err = f.campaigns.Pause(ctx, f.owner, camp.ID)
	assert.ErrorIs(t, err, domain.ErrStateConflict)

	c, err = f.campaigns.Resume(ctx, f.owner, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignActive, c.Status)

	_, err = f.slots.Claim(ctx, f.publisher, f.slotsOf(t, camp.ID)[0].ID, f.asset)
	assert.NoError(t, err)
}

func TestFulfillment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.newCampaign(t, 5, 10)
	slots := f.slotsOf(t, camp.ID)

	f.approved(t, slots[0].ID)
	f.submitted(t, slots[1].ID)
	_, err := f.slots.Claim(ctx, f.publisher, slots[2].ID, f.asset)
	require.NoError(t, err)
	f.submitted(t, slots[3].ID)
	_, err = f.slots.Reject(ctx, f.admin, slots[3].ID)
	require.NoError(t, err)

	fl, err := f.campaigns.Fulfillment(ctx, f.rival, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Fulfillment{
		CampaignID: camp.ID,
		Status:     domain.CampaignActive,
		Quantity:   5,
		Filled:     1,
		Remaining:  4,
		Open:       1,
		Reserved:   1,
		Submitted:  1,
		Approved:   1,
		Rejected:   1,
	}, *fl)

	_, err = f.campaigns.Fulfillment(ctx, f.owner, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
