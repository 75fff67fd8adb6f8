package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Caller is the verified identity attached to every core call. The identity
// provider is external; the HTTP layer builds a Caller from a signed token and
// passes it into the usecases.
type Caller struct {
	UserID uuid.UUID
	Role   Role
	Status AccountStatus
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Authorize rejects anonymous and suspended callers.
func (c Caller) Authorize() error {
	if c.UserID == uuid.Nil {
		return fmt.Errorf("%w: missing caller identity", ErrForbidden)
	}
	if c.Status != AccountActive {
		return fmt.Errorf("%w: account is %s", ErrForbidden, c.Status)
	}
	return nil
}

// AuthorizeAdmin is Authorize plus a role check.
func (c Caller) AuthorizeAdmin() error {
	if err := c.Authorize(); err != nil {
		return err
	}
	if !c.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}

// Confirm checks the caller against the stored account. Directory sync can
// suspend a user or revoke the admin role while a token is still valid, so
// the stored record overrides the token claims.
func (c Caller) Confirm(stored User) error {
	if stored.ID != c.UserID {
		return fmt.Errorf("%w: token subject does not match account", ErrForbidden)
	}
	if stored.Status != AccountActive {
		return fmt.Errorf("%w: account is %s", ErrForbidden, stored.Status)
	}
	if c.IsAdmin() && stored.Role != RoleAdmin {
		return fmt.Errorf("%w: admin role revoked", ErrForbidden)
	}
	return nil
}
