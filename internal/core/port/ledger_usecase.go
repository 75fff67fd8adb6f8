package port

import (
	"context"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
)

// LedgerUseCase is the inbound port for balances and credit adjustments.
type LedgerUseCase interface {
	// Balance returns the user's credits. Callers may read their own balance;
	// admins may read anyone's.
	Balance(ctx context.Context, caller domain.Caller, userID uuid.UUID) (int64, error)
	// History returns the user's transactions, newest first, classified as
	// received or given.
	History(ctx context.Context, caller domain.Caller, userID uuid.UUID, limit int) ([]domain.HistoryEntry, error)
	// AdminAdd credits a user from the system side.
	AdminAdd(ctx context.Context, caller domain.Caller, userID uuid.UUID, amount int64, reason string) (*domain.Transaction, error)
	// AdminRemove debits a user to the system side, clamped to the balance.
	AdminRemove(ctx context.Context, caller domain.Caller, userID uuid.UUID, amount int64, reason string) (*domain.Transaction, error)
	// Reconcile compares the stored balance with the ledger-derived one.
	Reconcile(ctx context.Context, caller domain.Caller, userID uuid.UUID) (*domain.Reconciliation, error)
}
