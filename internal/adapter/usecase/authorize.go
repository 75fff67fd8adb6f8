package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
)

type userReader interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// authorize checks the token claims, then the caller's stored account.
func authorize(ctx context.Context, users userReader, caller domain.Caller) error {
	if err := caller.Authorize(); err != nil {
		return err
	}
	return confirm(ctx, users, caller)
}

// authorizeAdmin is authorize for admin-only operations.
func authorizeAdmin(ctx context.Context, users userReader, caller domain.Caller) error {
	if err := caller.AuthorizeAdmin(); err != nil {
		return err
	}
	return confirm(ctx, users, caller)
}

func confirm(ctx context.Context, users userReader, caller domain.Caller) error {
	stored, err := users.GetUser(ctx, caller.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: unknown account", domain.ErrForbidden)
	}
	if err != nil {
		return err
	}
	return caller.Confirm(*stored)
}
