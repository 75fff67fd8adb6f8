package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
)

// DirectoryUseCase mirrors users and assets owned by external systems.
type DirectoryUseCase struct {
	store  port.Store
	logger *slog.Logger
}

var _ port.DirectoryUseCase = (*DirectoryUseCase)(nil)

// NewDirectoryUseCase creates a usecase over the given store.
func NewDirectoryUseCase(store port.Store, logger *slog.Logger) *DirectoryUseCase {
	return &DirectoryUseCase{store: store, logger: logger}
}

// SyncUser creates or updates a user. Credits in u are ignored; an existing
// balance is kept.
func (u *DirectoryUseCase) SyncUser(ctx context.Context, caller domain.Caller, user domain.User) (*domain.User, error) {
	if err := authorizeAdmin(ctx, u.store, caller); err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.Status == "" {
		user.Status = domain.AccountActive
	}
	if user.Role != domain.RoleUser && user.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, user.Role)
	}
	if user.Status != domain.AccountActive && user.Status != domain.AccountSuspended {
		return nil, fmt.Errorf("%w: unknown account status %q", domain.ErrValidation, user.Status)
	}
	if err := u.store.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	u.logger.Info("user synced",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)),
		slog.String("status", string(user.Status)))
	return u.store.GetUser(ctx, user.ID)
}

// SyncAsset creates or updates a publisher asset.
func (u *DirectoryUseCase) SyncAsset(ctx context.Context, caller domain.Caller, a domain.Asset) (*domain.Asset, error) {
	if err := authorizeAdmin(ctx, u.store, caller); err != nil {
		return nil, err
	}
	if a.ID == uuid.Nil || a.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: asset and owner ids are required", domain.ErrValidation)
	}
	if strings.TrimSpace(a.Domain) == "" {
		return nil, fmt.Errorf("%w: domain is required", domain.ErrValidation)
	}
	switch a.Status {
	case domain.AssetPending, domain.AssetApproved, domain.AssetRejected, domain.AssetDisabled:
	case "":
		a.Status = domain.AssetPending
	default:
		return nil, fmt.Errorf("%w: unknown asset status %q", domain.ErrValidation, a.Status)
	}
	if err := u.store.UpsertAsset(ctx, a); err != nil {
		return nil, err
	}
	u.logger.Info("asset synced",
		slog.String("asset_id", a.ID.String()),
		slog.String("owner_id", a.OwnerID.String()),
		slog.String("status", string(a.Status)))
	return u.store.GetAsset(ctx, a.ID)
}
