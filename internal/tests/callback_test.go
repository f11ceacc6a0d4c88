package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"warranty/internal/domain"
	"warranty/internal/repository"
	"warranty/internal/service"
)

// ──────────────────────────────────────────────
// CALLBACK FINALIZATION
// ──────────────────────────────────────────────

func pendingTransaction(reference string) *domain.Transaction {
	now := time.Now().UTC()
	return &domain.Transaction{
		OrderReference: reference,
		PlanID:         "plan-premium",
		FinalAmount:    500.00,
		Status:         domain.TransactionStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCallback_Success_FinalizesPending(t *testing.T) {
	t.Parallel()

	txRepo := NewMockTransactionRepository()
	txRepo.AddTransaction(pendingTransaction("WP2-100-abc"))
	notifier := NewMockNotifier()
	svc := service.NewCallbackService(txRepo, nil, notifier)

	tx, err := svc.HandleSuccess(context.Background(), "WP2-100-abc")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if tx.Status != domain.TransactionStatusSucceeded {
		t.Errorf("expected SUCCEEDED, got %s", tx.Status)
	}
	if notifier.SucceededCount != 1 {
		t.Errorf("expected 1 success notification, got %d", notifier.SucceededCount)
	}
}

func TestCallback_Failure_RecordsReason(t *testing.T) {
	t.Parallel()

	txRepo := NewMockTransactionRepository()
	txRepo.AddTransaction(pendingTransaction("WP2-100-def"))
	notifier := NewMockNotifier()
	svc := service.NewCallbackService(txRepo, nil, notifier)

	tx, err := svc.HandleFailure(context.Background(), "WP2-100-def")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if tx.Status != domain.TransactionStatusFailed {
		t.Errorf("expected FAILED, got %s", tx.Status)
	}
	if tx.FailureReason != service.FailureReasonDeclined {
		t.Errorf("expected declined reason, got %s", tx.FailureReason)
	}
	if notifier.FailedCount != 1 {
		t.Errorf("expected 1 failure notification, got %d", notifier.FailedCount)
	}
}

func TestCallback_ReplayTerminal_IsNoOp(t *testing.T) {
	t.Parallel()

	txRepo := NewMockTransactionRepository()
	txRepo.AddTransaction(pendingTransaction("WP2-100-ghi"))
	notifier := NewMockNotifier()
	svc := service.NewCallbackService(txRepo, nil, notifier)

	if _, err := svc.HandleSuccess(context.Background(), "WP2-100-ghi"); err != nil {
		t.Fatalf("first callback failed: %v", err)
	}
	finalized := *txRepo.GetTransaction("WP2-100-ghi")

	// Replay the success callback, then deliver a contradictory failure
	// callback. Both must leave the terminal record untouched.
	if _, err := svc.HandleSuccess(context.Background(), "WP2-100-ghi"); err != nil {
		t.Fatalf("replayed callback errored: %v", err)
	}
	tx, err := svc.HandleFailure(context.Background(), "WP2-100-ghi")
	if err != nil {
		t.Fatalf("out-of-order callback errored: %v", err)
	}

	if tx.Status != domain.TransactionStatusSucceeded {
		t.Errorf("terminal status changed on replay: %s", tx.Status)
	}
	if tx.FailureReason != finalized.FailureReason {
		t.Errorf("failure reason changed on replay: %q", tx.FailureReason)
	}
	if !tx.UpdatedAt.Equal(finalized.UpdatedAt) {
		t.Error("updated_at changed on replayed callback")
	}
	if notifier.SucceededCount != 1 || notifier.FailedCount != 0 {
		t.Errorf("expected exactly one notification, got success=%d failure=%d",
			notifier.SucceededCount, notifier.FailedCount)
	}
}

func TestCallback_UnknownReference_NotFound(t *testing.T) {
	t.Parallel()

	txRepo := NewMockTransactionRepository()
	svc := service.NewCallbackService(txRepo, nil, nil)

	_, err := svc.HandleSuccess(context.Background(), "WP9-0-unknown")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// PENDING EXPIRY
// ──────────────────────────────────────────────

func TestExpiry_SweepsOnlyStalePending(t *testing.T) {
	t.Parallel()

	txRepo := NewMockTransactionRepository()

	stale := pendingTransaction("WP2-1-stale")
	stale.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	txRepo.AddTransaction(stale)

	fresh := pendingTransaction("WP2-2-fresh")
	txRepo.AddTransaction(fresh)

	done := pendingTransaction("WP2-3-done")
	done.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	done.Status = domain.TransactionStatusSucceeded
	txRepo.AddTransaction(done)

	sweeper := service.NewExpirySweeper(txRepo, 24*time.Hour, time.Hour)

	expired, err := sweeper.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expired transaction, got %d", expired)
	}

	if got := txRepo.GetTransaction("WP2-1-stale"); got.Status != domain.TransactionStatusFailed || got.FailureReason != "expired" {
		t.Errorf("stale pending not expired: status=%s reason=%s", got.Status, got.FailureReason)
	}
	if got := txRepo.GetTransaction("WP2-2-fresh"); got.Status != domain.TransactionStatusPending {
		t.Errorf("fresh pending should stay pending, got %s", got.Status)
	}
	if got := txRepo.GetTransaction("WP2-3-done"); got.Status != domain.TransactionStatusSucceeded {
		t.Errorf("terminal record must never be resurrected, got %s", got.Status)
	}
}
