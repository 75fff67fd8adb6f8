package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AssetStatus is the review status of a publisher website.
type AssetStatus string

const (
	AssetPending  AssetStatus = "pending"
	AssetApproved AssetStatus = "approved"
	AssetRejected AssetStatus = "rejected"
	AssetDisabled AssetStatus = "disabled"
)

// Asset is a publisher-owned website. Only approved assets may claim slots.
type Asset struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Domain   string
	Industry string // optional category slug
	Status   AssetStatus
	// Metrics is filled asynchronously by the enrichment service and may be
	// stale or absent.
	Metrics   *AssetMetrics
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssetMetrics is third-party domain data attached to an asset.
type AssetMetrics struct {
	DomainRating   int       `json:"domain_rating"`
	Backlinks      int64     `json:"backlinks"`
	MonthlyTraffic int64     `json:"monthly_traffic"`
	Summary        string    `json:"summary,omitempty"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// ClaimableBy reports whether publisher may claim slots with the asset.
func (a Asset) ClaimableBy(publisher uuid.UUID) error {
	if a.OwnerID != publisher {
		return fmt.Errorf("%w: asset is not owned by caller", ErrForbidden)
	}
	if a.Status != AssetApproved {
		return fmt.Errorf("%w: asset is %s", ErrStateConflict, a.Status)
	}
	return nil
}
