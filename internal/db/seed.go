package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
)

// seedNamespace derives stable ids so the demo data can be re-seeded and
// referenced from scripts.
var seedNamespace = uuid.MustParse("5f1b7c62-9a43-4e0e-8d51-2c3a9b7e4d10")

func seedID(name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(name))
}

// Demo lists the ids of the seeded records.
type Demo struct {
	Admin      uuid.UUID
	Advertiser uuid.UUID
	Publisher  uuid.UUID
	Asset      uuid.UUID
	Campaign   uuid.UUID
}

// DemoIDs returns the ids Seed uses.
func DemoIDs() Demo {
	return Demo{
		Admin:      seedID("admin"),
		Advertiser: seedID("advertiser"),
		Publisher:  seedID("publisher"),
		Asset:      seedID("asset"),
		Campaign:   seedID("campaign"),
	}
}

// Seed inserts demo data: an admin, an advertiser with a funded campaign and
// a publisher with an approved asset. It does nothing when the demo campaign
// already exists.
func Seed(ctx context.Context, store port.Store) (Demo, error) {
	ids := DemoIDs()
	if _, err := store.GetCampaign(ctx, ids.Campaign); err == nil {
		return ids, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ids, err
	}

	users := []domain.User{
		{ID: ids.Admin, Email: "admin@linkswap.local", Role: domain.RoleAdmin, Status: domain.AccountActive},
		{ID: ids.Advertiser, Email: "advertiser@linkswap.local", Role: domain.RoleUser, Status: domain.AccountActive},
		{ID: ids.Publisher, Email: "publisher@linkswap.local", Role: domain.RoleUser, Status: domain.AccountActive},
	}
	for _, u := range users {
		if err := store.UpsertUser(ctx, u); err != nil {
			return ids, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	err := store.UpsertAsset(ctx, domain.Asset{
		ID:       ids.Asset,
		OwnerID:  ids.Publisher,
		Domain:   "https://blog.example.org",
		Industry: "technology",
		Status:   domain.AssetApproved,
		Metrics: &domain.AssetMetrics{
			DomainRating:   48,
			Backlinks:      12400,
			MonthlyTraffic: 31000,
			FetchedAt:      time.Now().UTC(),
		},
	})
	if err != nil {
		return ids, fmt.Errorf("seed asset: %w", err)
	}

	admin := ids.Admin
	_, err = store.ApplyTransfer(ctx, domain.Transfer{
		To:            &ids.Advertiser,
		Amount:        5000,
		Type:          domain.TxAdminAdd,
		ReferenceType: domain.RefAdmin,
		ReferenceID:   &admin,
		Description:   "demo grant",
	})
	if err != nil {
		return ids, fmt.Errorf("seed grant: %w", err)
	}

	in := domain.NewCampaign{
		Name:          "Developer tools launch",
		TargetURL:     "https://target.example.com/tools",
		TargetKeyword: "developer tools",
		LinkType:      domain.LinkDofollow,
		Industry:      "technology",
		Quantity:      5,
		CreditReward:  200,
		Overrides: []domain.SlotOverride{
			{LinkType: domain.LinkBrandMention, TargetKeyword: "Example Tools"},
		},
	}
	if err = in.Validate(); err != nil {
		return ids, err
	}
	c, slots := in.Build(ids.Advertiser, time.Now().UTC())
	c.ID = ids.Campaign
	for i := range slots {
		slots[i].ID = seedID(fmt.Sprintf("slot-%d", i+1))
		slots[i].CampaignID = c.ID
	}
	if _, err = store.CreateCampaign(ctx, c, slots, domain.FundingTransfer(c)); err != nil {
		return ids, fmt.Errorf("seed campaign: %w", err)
	}
	return ids, nil
}
