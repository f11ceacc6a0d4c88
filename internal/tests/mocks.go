package tests

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"warranty/internal/domain"
	"warranty/internal/financing"
	"warranty/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRANSACTION REPOSITORY
// ──────────────────────────────────────────────

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	// Counters for verification
	CreateCallCount   int32
	FinalizeCallCount int32

	// Error injection
	CreateError   error
	FinalizeError error
}

// NewMockTransactionRepository creates a new mock transaction repository.
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

// AddTransaction seeds a transaction into the mock repository.
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.OrderReference] = tx
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *tx
	m.transactions[tx.OrderReference] = &copy
	return nil
}

func (m *MockTransactionRepository) GetByOrderReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tx, ok := m.transactions[reference]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *tx
	return &copy, nil
}

func (m *MockTransactionRepository) Finalize(ctx context.Context, reference string, status domain.TransactionStatus, failureReason string) (bool, error) {
	atomic.AddInt32(&m.FinalizeCallCount, 1)
	if m.FinalizeError != nil {
		return false, m.FinalizeError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.transactions[reference]
	if !ok {
		return false, repository.ErrNotFound
	}
	if tx.Status.IsTerminal() {
		return false, nil
	}
	tx.Status = status
	tx.FailureReason = failureReason
	tx.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (m *MockTransactionRepository) MarkExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired int64
	for _, tx := range m.transactions {
		if tx.Status == domain.TransactionStatusPending && tx.CreatedAt.Before(cutoff) {
			tx.Status = domain.TransactionStatusFailed
			tx.FailureReason = "expired"
			tx.UpdatedAt = time.Now().UTC()
			expired++
		}
	}
	return expired, nil
}

// GetTransaction returns the stored transaction for test assertions.
func (m *MockTransactionRepository) GetTransaction(reference string) *domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transactions[reference]
}

// FirstTransaction returns the single stored transaction, for tests that
// create exactly one.
func (m *MockTransactionRepository) FirstTransaction() *domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, tx := range m.transactions {
		return tx
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK PLAN REPOSITORY
// ──────────────────────────────────────────────

// MockPlanRepository is a mock implementation of PlanRepository.
type MockPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]*domain.Plan

	// Counters for verification
	GetByIDCallCount   int32
	GetByNameCallCount int32
}

// NewMockPlanRepository creates a new mock plan repository.
func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{
		plans: make(map[string]*domain.Plan),
	}
}

// AddPlan adds a plan to the mock repository.
func (m *MockPlanRepository) AddPlan(plan *domain.Plan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = plan
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	plan, ok := m.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *plan
	return &copy, nil
}

func (m *MockPlanRepository) GetByName(ctx context.Context, name string) (*domain.Plan, error) {
	atomic.AddInt32(&m.GetByNameCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.plans {
		if strings.EqualFold(p.Name, name) {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockPlanRepository) GetAll(ctx context.Context) ([]*domain.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Plan, 0, len(m.plans))
	for _, p := range m.plans {
		copy := *p
		result = append(result, &copy)
	}
	return result, nil
}


// ──────────────────────────────────────────────
// MOCK PROVIDER GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a mock implementation of the provider gateway.
type MockGateway struct {
	mu          sync.Mutex
	LastPayload financing.Payload

	// Counters for verification
	InitiateCallCount int32

	// Scripted behavior
	Response *financing.Initiation
	Err      error
}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Initiate(ctx context.Context, p financing.Payload) (*financing.Initiation, error) {
	atomic.AddInt32(&m.InitiateCallCount, 1)
	m.mu.Lock()
	m.LastPayload = p
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response != nil {
		resp := *m.Response
		return &resp, nil
	}
	return &financing.Initiation{RedirectURL: "https://provider.test/session/1"}, nil
}

// Payload returns the last payload for test assertions.
func (m *MockGateway) Payload() financing.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastPayload
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// MockNotifier records notification calls.
type MockNotifier struct {
	SucceededCount int32
	FailedCount    int32
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) PaymentSucceeded(ctx context.Context, tx *domain.Transaction) {
	atomic.AddInt32(&m.SucceededCount, 1)
}

func (m *MockNotifier) PaymentFailed(ctx context.Context, tx *domain.Transaction) {
	atomic.AddInt32(&m.FailedCount, 1)
}
