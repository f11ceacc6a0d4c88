package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"warranty/internal/domain"
	"warranty/internal/repository"
)

// TransactionRepository is a PostgreSQL implementation of
// repository.TransactionRepository. Customer, vehicle and addon
// snapshots are stored as JSONB alongside the scalar columns.
type TransactionRepository struct {
	q Querier
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{q: db}
}

// NewTransactionRepositoryWithTx creates a transaction repository using a
// database transaction.
func NewTransactionRepositoryWithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Create persists a new pending transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	customer, err := json.Marshal(tx.Customer)
	if err != nil {
		return err
	}
	vehicle, err := json.Marshal(tx.Vehicle)
	if err != nil {
		return err
	}
	addons, err := json.Marshal(tx.ProtectionAddons)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (
			order_reference, plan_id, payment_duration, customer, vehicle,
			protection_addons, claim_limit, discount_code, voluntary_excess,
			final_amount, status, redirect_target, failure_reason,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.q.ExecContext(ctx, query,
		tx.OrderReference,
		tx.PlanID,
		int(tx.PaymentDuration),
		customer,
		vehicle,
		addons,
		tx.ClaimLimit,
		tx.DiscountCode,
		tx.VoluntaryExcess,
		tx.FinalAmount,
		tx.Status,
		tx.RedirectTarget,
		tx.FailureReason,
		tx.CreatedAt,
		tx.UpdatedAt,
	)

	return err
}

// GetByOrderReference retrieves a transaction by its order reference.
func (r *TransactionRepository) GetByOrderReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `
		SELECT order_reference, plan_id, payment_duration, customer, vehicle,
		       protection_addons, claim_limit, discount_code, voluntary_excess,
		       final_amount, status, redirect_target, failure_reason,
		       created_at, updated_at
		FROM transactions WHERE order_reference = $1
	`

	var (
		tx       domain.Transaction
		duration int
		customer []byte
		vehicle  []byte
		addons   []byte
	)
	err := r.q.QueryRowContext(ctx, query, reference).Scan(
		&tx.OrderReference,
		&tx.PlanID,
		&duration,
		&customer,
		&vehicle,
		&addons,
		&tx.ClaimLimit,
		&tx.DiscountCode,
		&tx.VoluntaryExcess,
		&tx.FinalAmount,
		&tx.Status,
		&tx.RedirectTarget,
		&tx.FailureReason,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	tx.PaymentDuration = domain.PaymentDuration(duration)
	if err := json.Unmarshal(customer, &tx.Customer); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(vehicle, &tx.Vehicle); err != nil {
		return nil, err
	}
	if len(addons) > 0 {
		if err := json.Unmarshal(addons, &tx.ProtectionAddons); err != nil {
			return nil, err
		}
	}

	return &tx, nil
}

// Finalize moves a pending transaction to a terminal status. The guard
// on the current status makes replayed callbacks no-ops.
func (r *TransactionRepository) Finalize(ctx context.Context, reference string, status domain.TransactionStatus, failureReason string) (bool, error) {
	query := `
		UPDATE transactions
		SET status = $1, failure_reason = $2, updated_at = $3
		WHERE order_reference = $4 AND status = $5
	`

	result, err := r.q.ExecContext(ctx, query,
		status,
		failureReason,
		time.Now().UTC(),
		reference,
		domain.TransactionStatusPending,
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if rowsAffected > 0 {
		return true, nil
	}

	// Nothing updated: either the record is already terminal (no-op) or
	// the reference is unknown (error).
	var exists bool
	err = r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE order_reference = $1)`,
		reference,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}

	return false, nil
}

// MarkExpired fails every pending transaction created before the cutoff.
func (r *TransactionRepository) MarkExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE transactions
		SET status = $1, failure_reason = 'expired', updated_at = $2
		WHERE status = $3 AND created_at < $4
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.TransactionStatusFailed,
		time.Now().UTC(),
		domain.TransactionStatusPending,
		cutoff,
	)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
