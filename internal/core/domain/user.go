package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AccountStatus is the administrative status of a user account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
)

// User is an exchange participant. Credits is only ever changed together with
// a Transaction record.
type User struct {
	ID        uuid.UUID
	Email     string
	Role      Role
	Credits   int64
	Status    AccountStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Debit removes amount from the balance or fails with ErrInsufficientFunds.
func (u *User) Debit(amount int64) error {
	if u.Credits < amount {
		return fmt.Errorf("%w: balance %d, required %d", ErrInsufficientFunds, u.Credits, amount)
	}
	u.Credits -= amount
	return nil
}

// Credit adds amount to the balance. A balance that would pass
// math.MaxInt64 is rejected with ErrValidation and left unchanged.
func (u *User) Credit(amount int64) error {
	if err := u.canCredit(amount); err != nil {
		return err
	}
	u.Credits += amount
	return nil
}

func (u *User) canCredit(amount int64) error {
	if amount > math.MaxInt64-u.Credits {
		return fmt.Errorf("%w: crediting %d to balance %d overflows", ErrValidation, amount, u.Credits)
	}
	return nil
}
