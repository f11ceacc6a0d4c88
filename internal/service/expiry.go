package service

import (
	"context"
	"log"
	"time"

	"warranty/internal/repository"
)

// ExpirySweeper fails pending transactions that never received a
// provider callback. Such records are inert: the browser left for the
// provider's site and never came back, and without an expiry policy
// they would sit pending forever.
type ExpirySweeper struct {
	txRepo   repository.TransactionRepository
	maxAge   time.Duration
	interval time.Duration
}

// NewExpirySweeper creates a new ExpirySweeper.
func NewExpirySweeper(txRepo repository.TransactionRepository, maxAge, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{txRepo: txRepo, maxAge: maxAge, interval: interval}
}

// SweepOnce expires every pending transaction older than the configured
// maximum age, returning how many were expired.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.maxAge)
	expired, err := s.txRepo.MarkExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		log.Printf("expiry: failed %d stale pending transactions", expired)
	}
	return expired, nil
}

// Run sweeps on a ticker until the context is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				log.Printf("expiry: sweep failed: %v", err)
			}
		}
	}
}
