package repository

import (
	"context"
	"time"

	"warranty/internal/domain"
)

// TransactionRepository defines the persistence operations for the
// transaction ledger. The ledger exclusively owns the Transaction
// lifecycle: records enter as PENDING and move to exactly one terminal
// state via Finalize.
type TransactionRepository interface {
	// Create persists a new pending transaction. The write must complete
	// before the provider is contacted.
	Create(ctx context.Context, tx *domain.Transaction) error

	// GetByOrderReference retrieves a transaction by its order reference.
	GetByOrderReference(ctx context.Context, reference string) (*domain.Transaction, error)

	// Finalize moves a pending transaction to a terminal status. It
	// matches strictly by order reference and only applies while the
	// record is still pending, making repeated or out-of-order callback
	// delivery a no-op. Returns true when the transition was applied,
	// false when the record was already terminal.
	Finalize(ctx context.Context, reference string, status domain.TransactionStatus, failureReason string) (bool, error)

	// MarkExpired fails every pending transaction created before the
	// cutoff, returning how many records were expired.
	MarkExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
