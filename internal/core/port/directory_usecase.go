package port

import (
	"context"

	"linkswap/internal/core/domain"
)

// DirectoryUseCase lets the identity and asset-review integrations mirror
// their records into the service. Admin only.
type DirectoryUseCase interface {
	SyncUser(ctx context.Context, caller domain.Caller, u domain.User) (*domain.User, error)
	SyncAsset(ctx context.Context, caller domain.Caller, a domain.Asset) (*domain.Asset, error)
}
