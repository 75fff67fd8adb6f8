//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"linkswap/internal/adapter/postgres"
	"linkswap/internal/adapter/usecase"
	"linkswap/internal/core/domain"
	"linkswap/internal/db"
)

func setupStore(t *testing.T) *postgres.Store {
	t.Helper()
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("linkswap"),
		tcpostgres.WithUsername("linkswap"),
		tcpostgres.WithPassword("linkswap"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return postgres.NewStore(pool)
}

type env struct {
	store     *postgres.Store
	campaigns *usecase.CampaignUseCase
	slots     *usecase.SlotUseCase
	ledger    *usecase.LedgerUseCase
	admin     domain.Caller
	owner     domain.Caller
}

type passVerifier struct{}

func (passVerifier) Verify(context.Context, string, domain.Requirement) domain.VerificationResult {
	return domain.VerificationResult{Verified: true, LinkFound: true, AnchorTextMatch: true, LinkTypeMatch: true}
}

func newEnv(t *testing.T) *env {
	store := setupStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := &env{
		store:     store,
		campaigns: usecase.NewCampaignUseCase(store, logger),
		slots:     usecase.NewSlotUseCase(store, passVerifier{}, logger),
		ledger:    usecase.NewLedgerUseCase(store, logger),
		admin:     domain.Caller{UserID: uuid.New(), Role: domain.RoleAdmin, Status: domain.AccountActive},
		owner:     domain.Caller{UserID: uuid.New(), Role: domain.RoleUser, Status: domain.AccountActive},
	}
	e.addUser(t, e.admin)
	e.addUser(t, e.owner)
	_, err := e.ledger.AdminAdd(context.Background(), e.admin, e.owner.UserID, 1000, "initial grant")
	require.NoError(t, err)
	return e
}

func (e *env) addUser(t *testing.T, c domain.Caller) {
	require.NoError(t, e.store.UpsertUser(context.Background(), domain.User{
		ID: c.UserID, Email: c.UserID.String() + "@example.com", Role: c.Role, Status: c.Status,
	}))
}

func (e *env) publisher(t *testing.T) (domain.Caller, uuid.UUID) {
	p := domain.Caller{UserID: uuid.New(), Role: domain.RoleUser, Status: domain.AccountActive}
	e.addUser(t, p)
	asset := uuid.New()
	require.NoError(t, e.store.UpsertAsset(context.Background(), domain.Asset{
		ID: asset, OwnerID: p.UserID, Domain: "https://blog.example.org", Status: domain.AssetApproved,
		Metrics: &domain.AssetMetrics{DomainRating: 42, MonthlyTraffic: 1200},
	}))
	return p, asset
}

func (e *env) reconciled(t *testing.T, ids ...uuid.UUID) {
	for _, id := range ids {
		rec, err := e.store.LedgerTotals(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, rec.Consistent, "user %s: balance %d, derived %d", id, rec.Balance, rec.Derived)
	}
}

func TestStoreLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pub, asset := e.publisher(t)

	got, err := e.store.GetAsset(ctx, asset)
	require.NoError(t, err)
	require.NotNil(t, got.Metrics)
	assert.Equal(t, 42, got.Metrics.DomainRating)

	out, err := e.campaigns.Create(ctx, e.owner, domain.NewCampaign{
		Name: "launch", TargetURL: "https://target.com", TargetKeyword: "target",
		LinkType: domain.LinkDofollow, Quantity: 2, CreditReward: 50,
	})
	require.NoError(t, err)

	slotID := out.Slots[0].ID
	_, err = e.slots.Claim(ctx, pub, slotID, asset)
	require.NoError(t, err)
	res, err := e.slots.SubmitProof(ctx, pub, slotID, "https://blog.example.org/post")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotApproved, res.Slot.Status)
	require.NotNil(t, res.Payout)
	assert.Equal(t, 1, res.Campaign.FilledSlots)

	bal, err := e.ledger.Balance(ctx, pub, pub.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), bal)

	removed, err := e.campaigns.CancelSlot(ctx, e.owner, out.Slots[1].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignCompleted, removed.Campaign.Status)

	hist, err := e.ledger.History(ctx, e.owner, e.owner.UserID, 10)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, domain.TxRefund, hist[0].Type)
	assert.Equal(t, domain.TxSpend, hist[1].Type)
	assert.Equal(t, domain.TxAdminAdd, hist[2].Type)

	e.reconciled(t, e.owner.UserID, pub.UserID, e.admin.UserID)
}

func TestStoreNotFound(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.store.GetSlot(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.store.GetCampaign(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = e.store.UpsertAsset(ctx, domain.Asset{ID: uuid.New(), OwnerID: uuid.New(), Domain: "x", Status: domain.AssetPending})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreInsufficientFundsRollsBack(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.campaigns.Create(ctx, e.owner, domain.NewCampaign{
		Name: "too big", TargetURL: "https://target.com", LinkType: domain.LinkNofollow,
		Quantity: 3, CreditReward: 400,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	bal, err := e.ledger.Balance(ctx, e.owner, e.owner.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), bal)
}

func TestStoreConcurrentClaim(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	out, err := e.campaigns.Create(ctx, e.owner, domain.NewCampaign{
		Name: "race", TargetURL: "https://target.com", LinkType: domain.LinkDofollow,
		Quantity: 1, CreditReward: 10,
	})
	require.NoError(t, err)

	const n = 8
	type contender struct {
		caller domain.Caller
		asset  uuid.UUID
	}
	contenders := make([]contender, n)
	for i := range contenders {
		contenders[i].caller, contenders[i].asset = e.publisher(t)
	}

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for _, c := range contenders {
		wg.Add(1)
		go func(c contender) {
			defer wg.Done()
			_, err := e.slots.Claim(ctx, c.caller, out.Slots[0].ID, c.asset)
			if err == nil {
				wins.Add(1)
				return
			}
			if !errors.Is(err, domain.ErrStateConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}(c)
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestStoreCancelCampaign(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pub, asset := e.publisher(t)
	out, err := e.campaigns.Create(ctx, e.owner, domain.NewCampaign{
		Name: "cancel me", TargetURL: "https://target.com", LinkType: domain.LinkDofollow,
		Quantity: 3, CreditReward: 100,
	})
	require.NoError(t, err)

	_, err = e.slots.Claim(ctx, pub, out.Slots[0].ID, asset)
	require.NoError(t, err)
	_, err = e.campaigns.Cancel(ctx, e.owner, out.Campaign.ID)
	assert.ErrorIs(t, err, domain.ErrStateConflict)

	_, err = e.slots.Release(ctx, pub, out.Slots[0].ID)
	require.NoError(t, err)
	res, err := e.campaigns.Cancel(ctx, e.owner, out.Campaign.ID)
	require.NoError(t, err)
	assert.Len(t, res.RemovedSlots, 3)
	assert.Equal(t, int64(300), res.Refund.Amount)

	slots, err := e.store.ListCampaignSlots(ctx, out.Campaign.ID)
	require.NoError(t, err)
	assert.Empty(t, slots)
	e.reconciled(t, e.owner.UserID)
}
