package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TxEarn        TransactionType = "earn"
	TxSpend       TransactionType = "spend"
	TxAdminAdd    TransactionType = "admin_add"
	TxAdminRemove TransactionType = "admin_remove"
	TxRefund      TransactionType = "refund"
)

// ReferenceType names the entity that caused a transaction.
type ReferenceType string

const (
	RefCampaign ReferenceType = "campaign"
	RefSlot     ReferenceType = "slot"
	RefAdmin    ReferenceType = "admin"
)

// Transaction is an immutable ledger entry. A nil FromUserID or ToUserID is
// the system side (escrow or administrator).
type Transaction struct {
	ID            uuid.UUID
	FromUserID    *uuid.UUID
	ToUserID      *uuid.UUID
	Amount        int64
	Type          TransactionType
	ReferenceType ReferenceType
	ReferenceID   *uuid.UUID
	Description   string
	CreatedAt     time.Time
}

// Direction is how a transaction looks from one user's side.
type Direction string

const (
	DirectionReceived Direction = "received"
	DirectionGiven    Direction = "given"
)

// DirectionFor classifies t from userID's point of view.
func (t Transaction) DirectionFor(userID uuid.UUID) Direction {
	if t.ToUserID != nil && *t.ToUserID == userID {
		return DirectionReceived
	}
	return DirectionGiven
}

// HistoryEntry is a transaction annotated with its direction.
type HistoryEntry struct {
	Transaction
	Direction Direction
}

// Transfer is a requested balance movement. Exactly one Transaction is
// recorded per applied Transfer.
type Transfer struct {
	From          *uuid.UUID
	To            *uuid.UUID
	Amount        int64
	Type          TransactionType
	ReferenceType ReferenceType
	ReferenceID   *uuid.UUID
	Description   string
	// ClampToBalance debits at most the payer's balance instead of failing.
	ClampToBalance bool
}

// Validate checks amount, type and the sides each type requires.
func (t Transfer) Validate() error {
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if t.From == nil && t.To == nil {
		return fmt.Errorf("%w: transfer needs at least one party", ErrValidation)
	}
	if t.From != nil && t.To != nil && *t.From == *t.To {
		return fmt.Errorf("%w: cannot transfer to self", ErrValidation)
	}
	switch t.Type {
	case TxEarn, TxRefund, TxAdminAdd:
		if t.To == nil {
			return fmt.Errorf("%w: %s requires a recipient", ErrValidation, t.Type)
		}
	case TxSpend, TxAdminRemove:
		if t.From == nil {
			return fmt.Errorf("%w: %s requires a payer", ErrValidation, t.Type)
		}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, t.Type)
	}
	if (t.Type == TxAdminAdd || t.Type == TxRefund) && t.From != nil {
		return fmt.Errorf("%w: %s only credits", ErrValidation, t.Type)
	}
	if t.Type == TxAdminRemove && t.To != nil {
		return fmt.Errorf("%w: admin_remove only debits", ErrValidation)
	}
	return nil
}

// Settle moves the funds between the loaded parties. from and to must be the
// users named by t (nil for the system side). A clamped debit lowers
// t.Amount to what was actually available. Nothing is changed on error.
func (t *Transfer) Settle(from, to *User) error {
	amount := t.Amount
	if from != nil {
		if t.ClampToBalance && from.Credits < amount {
			amount = from.Credits
		}
		if amount <= 0 {
			return fmt.Errorf("%w: balance is empty", ErrInsufficientFunds)
		}
		if from.Credits < amount {
			return fmt.Errorf("%w: balance %d, required %d", ErrInsufficientFunds, from.Credits, amount)
		}
	}
	if to != nil {
		if err := to.canCredit(amount); err != nil {
			return err
		}
	}

	if from != nil {
		if err := from.Debit(amount); err != nil {
			return err
		}
	}
	if to != nil {
		if err := to.Credit(amount); err != nil {
			return err
		}
	}
	t.Amount = amount
	return nil
}

// Record turns the transfer into the ledger entry that accompanies it.
func (t Transfer) Record(now time.Time) Transaction {
	return Transaction{
		ID:            uuid.New(),
		FromUserID:    t.From,
		ToUserID:      t.To,
		Amount:        t.Amount,
		Type:          t.Type,
		ReferenceType: t.ReferenceType,
		ReferenceID:   t.ReferenceID,
		Description:   t.Description,
		CreatedAt:     now,
	}
}

// Reconciliation compares a stored balance with the balance derived from the
// ledger since genesis.
type Reconciliation struct {
	UserID     uuid.UUID
	Balance    int64
	Received   int64
	Given      int64
	Derived    int64
	Consistent bool
}

// NewReconciliation fills Derived and Consistent.
func NewReconciliation(userID uuid.UUID, balance, received, given int64) Reconciliation {
	derived := received - given
	return Reconciliation{
		UserID:     userID,
		Balance:    balance,
		Received:   received,
		Given:      given,
		Derived:    derived,
		Consistent: derived == balance,
	}
}
