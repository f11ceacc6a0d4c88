package service

import (
	"context"
	"log"

	"warranty/internal/domain"
)

// Notifier is the interface to the transactional email sender, which
// lives outside this service. Implementations must not log customer PII.
type Notifier interface {
	PaymentSucceeded(ctx context.Context, tx *domain.Transaction)
	PaymentFailed(ctx context.Context, tx *domain.Transaction)
}

// LogNotifier is a stand-in Notifier that records the event locally.
type LogNotifier struct{}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) PaymentSucceeded(ctx context.Context, tx *domain.Transaction) {
	log.Printf("notify: payment succeeded order_reference=%s amount=%.2f", tx.OrderReference, tx.FinalAmount)
}

func (n *LogNotifier) PaymentFailed(ctx context.Context, tx *domain.Transaction) {
	log.Printf("notify: payment failed order_reference=%s reason=%s", tx.OrderReference, tx.FailureReason)
}
