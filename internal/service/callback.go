package service

import (
	"context"
	"log"
	"time"

	"warranty/internal/domain"
	"warranty/internal/redis"
	"warranty/internal/repository"
)

const callbackLockTTL = 30 * time.Second

// FailureReasonDeclined is recorded when the provider's failure
// callback finalizes a transaction.
const FailureReasonDeclined = "declined"

// CallbackService processes the provider's asynchronous success and
// failure callbacks. It reconstructs everything from the ledger record
// located by order reference; there is no shared in-process state with
// the checkout attempt.
type CallbackService struct {
	txRepo   repository.TransactionRepository
	locks    redis.LockStoreInterface
	notifier Notifier
}

// NewCallbackService creates a new CallbackService. Both locks and
// notifier may be nil.
func NewCallbackService(txRepo repository.TransactionRepository, locks redis.LockStoreInterface, notifier Notifier) *CallbackService {
	return &CallbackService{txRepo: txRepo, locks: locks, notifier: notifier}
}

// HandleSuccess finalizes a transaction as succeeded. Replayed or
// duplicate callbacks for a terminal record are no-ops that return the
// record unchanged.
func (s *CallbackService) HandleSuccess(ctx context.Context, reference string) (*domain.Transaction, error) {
	return s.finalize(ctx, reference, domain.TransactionStatusSucceeded, "")
}

// HandleFailure finalizes a transaction as failed.
func (s *CallbackService) HandleFailure(ctx context.Context, reference string) (*domain.Transaction, error) {
	return s.finalize(ctx, reference, domain.TransactionStatusFailed, FailureReasonDeclined)
}

func (s *CallbackService) finalize(ctx context.Context, reference string, status domain.TransactionStatus, failureReason string) (*domain.Transaction, error) {
	if s.locks != nil {
		acquired, err := s.locks.AcquireCallbackLock(ctx, reference, callbackLockTTL)
		if err == nil && acquired {
			defer func() { _ = s.locks.ReleaseCallbackLock(ctx, reference) }()
		}
		// Lock failures fall through: the guarded ledger update is
		// idempotent on its own, the lock only spares duplicate work.
	}

	applied, err := s.txRepo.Finalize(ctx, reference, status, failureReason)
	if err != nil {
		return nil, err
	}

	tx, err := s.txRepo.GetByOrderReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if applied {
		log.Printf("callback: finalized order_reference=%s status=%s", reference, status)
		if s.notifier != nil {
			if status == domain.TransactionStatusSucceeded {
				s.notifier.PaymentSucceeded(ctx, tx)
			} else {
				s.notifier.PaymentFailed(ctx, tx)
			}
		}
	}

	return tx, nil
}

// GetTransaction retrieves a transaction for the post-redirect status view.
func (s *CallbackService) GetTransaction(ctx context.Context, reference string) (*domain.Transaction, error) {
	return s.txRepo.GetByOrderReference(ctx, reference)
}
