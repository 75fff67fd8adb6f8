package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkswap/internal/core/domain"
)

func TestSyncUserKeepsBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := NewDirectoryUseCase(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	u, err := dir.SyncUser(ctx, f.admin, domain.User{
		ID: f.owner.UserID, Email: " owner@example.com ", Status: domain.AccountSuspended, Credits: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, domain.AccountSuspended, u.Status)
	assert.Equal(t, int64(1000), u.Credits)

	_, err = dir.SyncUser(ctx, f.owner, domain.User{ID: uuid.New(), Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = dir.SyncUser(ctx, f.admin, domain.User{ID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = dir.SyncUser(ctx, f.admin, domain.User{ID: uuid.New(), Email: "x@example.com", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	fresh, err := dir.SyncUser(ctx, f.admin, domain.User{ID: uuid.New(), Email: "new@example.com", Credits: 99})
	require.NoError(t, err)
	assert.Equal(t, int64(0), fresh.Credits)
}

func TestSyncAsset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := NewDirectoryUseCase(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	a, err := dir.SyncAsset(ctx, f.admin, domain.Asset{ID: uuid.New(), OwnerID: f.publisher.UserID, Domain: "https://news.example.org"})
	require.NoError(t, err)
	assert.Equal(t, domain.AssetPending, a.Status)

	_, err = dir.SyncAsset(ctx, f.admin, domain.Asset{ID: uuid.New(), OwnerID: uuid.New(), Domain: "https://x.org"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = dir.SyncAsset(ctx, f.admin, domain.Asset{ID: uuid.New(), OwnerID: f.publisher.UserID, Domain: "https://x.org", Status: "live"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = dir.SyncAsset(ctx, f.publisher, domain.Asset{ID: uuid.New(), OwnerID: f.publisher.UserID, Domain: "https://x.org"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSyncedSuspensionBlocksValidToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := NewDirectoryUseCase(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	camp := f.newCampaign(t, 2, 10)
	slots := f.slotsOf(t, camp.ID)

	_, err := dir.SyncUser(ctx, f.admin, domain.User{
		ID: f.publisher.UserID, Email: "publisher@example.com", Status: domain.AccountSuspended,
	})
	require.NoError(t, err)

	_, err = f.slots.Claim(ctx, f.publisher, slots[0].ID, f.asset)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.SlotOpen, f.slotsOf(t, camp.ID)[0].Status)

	_, err = dir.SyncUser(ctx, f.admin, domain.User{ID: f.admin.UserID, Email: "admin@example.com", Role: domain.RoleUser})
	require.NoError(t, err)
	_, err = dir.SyncUser(ctx, f.admin, domain.User{ID: f.publisher.UserID, Email: "publisher@example.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.slots.Approve(ctx, f.admin, slots[1].ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
