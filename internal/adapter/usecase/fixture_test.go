package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"linkswap/internal/adapter/memory"
	"linkswap/internal/core/domain"
	"linkswap/internal/core/port/mocks"
)

type fixture struct {
	store     *memory.Store
	verifier  *mocks.MockLinkVerifier
	slots     *SlotUseCase
	campaigns *CampaignUseCase
	ledger    *LedgerUseCase

	admin     domain.Caller
	owner     domain.Caller
	publisher domain.Caller
	rival     domain.Caller

	asset      uuid.UUID // approved, owned by publisher
	rivalAsset uuid.UUID // approved, owned by rival
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	verifier := mocks.NewMockLinkVerifier(t)

	f := &fixture{
		store:      store,
		verifier:   verifier,
		slots:      NewSlotUseCase(store, verifier, logger),
		campaigns:  NewCampaignUseCase(store, logger),
		ledger:     NewLedgerUseCase(store, logger),
		admin:      newCaller(domain.RoleAdmin),
		owner:      newCaller(domain.RoleUser),
		publisher:  newCaller(domain.RoleUser),
		rival:      newCaller(domain.RoleUser),
		asset:      uuid.New(),
		rivalAsset: uuid.New(),
	}
	for _, c := range []domain.Caller{f.admin, f.owner, f.publisher, f.rival} {
		f.addUser(t, c)
	}
	f.addAsset(t, f.asset, f.publisher.UserID, domain.AssetApproved, "")
	f.addAsset(t, f.rivalAsset, f.rival.UserID, domain.AssetApproved, "")
	f.fund(t, f.owner.UserID, 1000)
	return f
}

func newCaller(role domain.Role) domain.Caller {
	return domain.Caller{UserID: uuid.New(), Role: role, Status: domain.AccountActive}
}

func (f *fixture) addUser(t *testing.T, c domain.Caller) {
	t.Helper()
	require.NoError(t, f.store.UpsertUser(context.Background(), domain.User{
		ID:     c.UserID,
		Email:  c.UserID.String() + "@example.com",
		Role:   c.Role,
		Status: c.Status,
	}))
}

func (f *fixture) addAsset(t *testing.T, id, owner uuid.UUID, status domain.AssetStatus, industry string) {
	t.Helper()
	require.NoError(t, f.store.UpsertAsset(context.Background(), domain.Asset{
		ID:       id,
		OwnerID:  owner,
		Domain:   "https://" + id.String()[:8] + ".example.org",
		Industry: industry,
		Status:   status,
	}))
}

func (f *fixture) fund(t *testing.T, userID uuid.UUID, amount int64) {
	t.Helper()
	_, err := f.ledger.AdminAdd(context.Background(), f.admin, userID, amount, "initial grant")
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	u, err := f.store.GetUser(context.Background(), userID)
	require.NoError(t, err)
	return u.Credits
}

// newCampaign funds a dofollow campaign for the owner.
func (f *fixture) newCampaign(t *testing.T, quantity int, reward int64) *domain.Campaign {
	t.Helper()
	out, err := f.campaigns.Create(context.Background(), f.owner, domain.NewCampaign{
		Name:          "spring launch",
		TargetURL:     "https://target.com/page",
		TargetKeyword: "keyword",
		LinkType:      domain.LinkDofollow,
		Quantity:      quantity,
		CreditReward:  reward,
	})
	require.NoError(t, err)
	return &out.Campaign
}

func (f *fixture) slotsOf(t *testing.T, campaignID uuid.UUID) []domain.Slot {
	t.Helper()
	slots, err := f.store.ListCampaignSlots(context.Background(), campaignID)
	require.NoError(t, err)
	return slots
}

// submitted claims slot for the publisher and records a failed proof.
func (f *fixture) submitted(t *testing.T, slotID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	_, err := f.slots.Claim(ctx, f.publisher, slotID, f.asset)
	require.NoError(t, err)
	_, err = f.store.TransitionSlot(ctx, domain.SlotChange{
		SlotID: slotID,
		Event:  domain.EventProofFailed,
		From:   domain.SlotReserved,
		Holder: &f.publisher.UserID,
		Result: &domain.VerificationResult{Details: []string{"pending"}},
	})
	require.NoError(t, err)
}

// approved claims slot for the publisher and approves it as admin.
func (f *fixture) approved(t *testing.T, slotID uuid.UUID) {
	t.Helper()
	f.submitted(t, slotID)
	_, err := f.slots.Approve(context.Background(), f.admin, slotID)
	require.NoError(t, err)
}

// requireReconciled checks balance == received - given for every user.
func (f *fixture) requireReconciled(t *testing.T, users ...uuid.UUID) {
	t.Helper()
	for _, id := range users {
		rec, err := f.store.LedgerTotals(context.Background(), id)
		require.NoError(t, err)
		require.True(t, rec.Consistent, "user %s: balance %d, derived %d", id, rec.Balance, rec.Derived)
	}
}

func (f *fixture) everyone() []uuid.UUID {
	return []uuid.UUID{f.admin.UserID, f.owner.UserID, f.publisher.UserID, f.rival.UserID}
}

func verified() domain.VerificationResult {
	return domain.VerificationResult{
		Verified: true, LinkFound: true, AnchorTextMatch: true, LinkTypeMatch: true,
		Details: []string{"Found 1 link(s)"},
	}
}
