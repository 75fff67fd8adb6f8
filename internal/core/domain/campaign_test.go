package domain

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckClaim(t *testing.T) {
	owner, pub := uuid.New(), uuid.New()
	caller := Caller{UserID: pub, Role: RoleUser, Status: AccountActive}
	base := Campaign{OwnerID: owner, Status: CampaignActive, Industry: "Finance"}
	asset := Asset{OwnerID: pub, Status: AssetApproved}

	tests := []struct {
		name    string
		camp    func(Campaign) Campaign
		asset   func(Asset) Asset
		caller  Caller
		wantErr error
	}{
		{name: "ok", caller: caller},
		{name: "same industry any case", caller: caller, asset: func(a Asset) Asset { a.Industry = "finance"; return a }},
		{name: "paused", caller: caller, camp: func(c Campaign) Campaign { c.Status = CampaignPaused; return c }, wantErr: ErrStateConflict},
		{name: "completed", caller: caller, camp: func(c Campaign) Campaign { c.Status = CampaignCompleted; return c }, wantErr: ErrStateConflict},
		{name: "owner", caller: Caller{UserID: owner, Status: AccountActive}, asset: func(a Asset) Asset { a.OwnerID = owner; return a }, wantErr: ErrForbidden},
		{name: "foreign asset", caller: caller, asset: func(a Asset) Asset { a.OwnerID = uuid.New(); return a }, wantErr: ErrForbidden},
		{name: "disabled asset", caller: caller, asset: func(a Asset) Asset { a.Status = AssetDisabled; return a }, wantErr: ErrStateConflict},
		{name: "industry mismatch", caller: caller, asset: func(a Asset) Asset { a.Industry = "gaming"; return a }, wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, a := base, asset
			if tt.camp != nil {
				c = tt.camp(c)
			}
			if tt.asset != nil {
				a = tt.asset(a)
			}
			err := c.CheckClaim(tt.caller, a)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordApproval(t *testing.T) {
	c := Campaign{Quantity: 2, Status: CampaignActive}
	require.NoError(t, c.RecordApproval(time.Now()))
	assert.Equal(t, CampaignActive, c.Status)
	require.NoError(t, c.RecordApproval(time.Now()))
	assert.Equal(t, CampaignCompleted, c.Status)
	assert.ErrorIs(t, c.RecordApproval(time.Now()), ErrStateConflict)
	assert.Equal(t, 2, c.FilledSlots)

	cancelled := Campaign{Quantity: 2, Status: CampaignCancelled}
	assert.ErrorIs(t, cancelled.RecordApproval(time.Now()), ErrStateConflict)
}

func TestRecordApprovalWhilePaused(t *testing.T) {
	c := Campaign{Quantity: 1, Status: CampaignPaused}
	require.NoError(t, c.RecordApproval(time.Now()))
	assert.Equal(t, CampaignCompleted, c.Status)
}

func TestSetPaused(t *testing.T) {
	c := Campaign{Status: CampaignActive}
	require.NoError(t, c.SetPaused(true, time.Now()))
	assert.ErrorIs(t, c.SetPaused(true, time.Now()), ErrStateConflict)
	require.NoError(t, c.SetPaused(false, time.Now()))
	assert.Equal(t, CampaignActive, c.Status)

	done := Campaign{Status: CampaignCompleted}
	assert.ErrorIs(t, done.SetPaused(true, time.Now()), ErrStateConflict)
}

func TestBuildAppliesOverrides(t *testing.T) {
	owner := uuid.New()
	now := time.Now()
	c, slots := NewCampaign{
		Name: "launch", TargetURL: "https://target.com", TargetKeyword: "kw",
		LinkType: LinkDofollow, Quantity: 3, CreditReward: 7,
		Overrides: []SlotOverride{{TargetKeyword: "brand", LinkType: LinkBrandMention}},
	}.Build(owner, now)

	assert.Equal(t, owner, c.OwnerID)
	assert.Equal(t, int64(21), c.Budget())
	require.Len(t, slots, 3)
	assert.Equal(t, LinkBrandMention, slots[0].Requirement(c).LinkType)
	assert.Equal(t, "brand", slots[0].Requirement(c).TargetKeyword)
	assert.Equal(t, c.Requirement(), slots[1].Requirement(c))
	for _, s := range slots {
		assert.Equal(t, c.ID, s.CampaignID)
		assert.Equal(t, SlotOpen, s.Status)
	}
}

func TestValidateHTTPURL(t *testing.T) {
	for _, ok := range []string{"https://a.com", "http://a.com/x?y=1", " https://a.com "} {
		assert.NoError(t, ValidateHTTPURL("url", ok), ok)
	}
	for _, bad := range []string{"", "a.com", "/path", "ftp://a.com", "https://"} {
		assert.ErrorIs(t, ValidateHTTPURL("url", bad), ErrValidation, bad)
	}
}

func TestValidateBudgetBounds(t *testing.T) {
	in := NewCampaign{Name: "n", TargetURL: "https://a.com", LinkType: LinkDofollow, Quantity: 3}

	in.CreditReward = math.MaxInt64 / 3
	require.NoError(t, in.Validate())
	c, _ := in.Build(uuid.New(), time.Now())
	assert.Equal(t, int64(math.MaxInt64/3*3), c.Budget())

	in.CreditReward = math.MaxInt64/3 + 1
	assert.ErrorIs(t, in.Validate(), ErrValidation)
}
