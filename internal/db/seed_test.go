package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkswap/internal/adapter/memory"
	"linkswap/internal/core/domain"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	demo, err := Seed(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, DemoIDs(), demo)

	c, err := store.GetCampaign(ctx, demo.Campaign)
	require.NoError(t, err)
	assert.Equal(t, demo.Advertiser, c.OwnerID)
	assert.Equal(t, domain.CampaignActive, c.Status)

	slots, err := store.ListCampaignSlots(ctx, demo.Campaign)
	require.NoError(t, err)
	require.Len(t, slots, 5)
	assert.Equal(t, domain.LinkBrandMention, slots[0].LinkType)
	assert.Equal(t, domain.SlotOpen, slots[4].Status)

	_, err = Seed(ctx, store)
	require.NoError(t, err)

	u, err := store.GetUser(ctx, demo.Advertiser)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), u.Credits)

	rec, err := store.LedgerTotals(ctx, demo.Advertiser)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)

	a, err := store.GetAsset(ctx, demo.Asset)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetApproved, a.Status)
}
