package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"warranty/internal/config"
	"warranty/internal/domain"
	"warranty/internal/financing"
	"warranty/internal/repository"
)

// ProviderGateway is the interface to the financing provider.
type ProviderGateway interface {
	Initiate(ctx context.Context, p financing.Payload) (*financing.Initiation, error)
}

// CheckoutService orchestrates the financing checkout pipeline:
// validate, resolve the plan, record the pending transaction, then hand
// off to the provider. The ledger write strictly precedes the provider
// call; the order reference in the callback is the only way back to the
// checkout context once the browser has navigated away.
type CheckoutService struct {
	txRepo      repository.TransactionRepository
	planService *PlanService
	gateway     ProviderGateway
	financing   config.FinancingConfig
	checkout    config.CheckoutConfig
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	txRepo repository.TransactionRepository,
	planService *PlanService,
	gateway ProviderGateway,
	financingCfg config.FinancingConfig,
	checkoutCfg config.CheckoutConfig,
) *CheckoutService {
	return &CheckoutService{
		txRepo:      txRepo,
		planService: planService,
		gateway:     gateway,
		financing:   financingCfg,
		checkout:    checkoutCfg,
	}
}

// StartCheckoutRequest contains the parameters for one checkout attempt.
// It is immutable for the duration of the pipeline.
type StartCheckoutRequest struct {
	Plan             PlanIdentifier
	Vehicle          domain.VehicleSnapshot
	Customer         domain.CustomerSnapshot
	PaymentDuration  domain.PaymentDuration
	VoluntaryExcess  int
	DiscountCode     string
	FinalAmount      float64
	ProtectionAddons map[string]bool
	ClaimLimit       int
	SendSMS          bool
	SendEmail        bool
}

// StartCheckoutResult is returned when the provider accepted the
// transaction. RedirectURL is handed to the browser for full-page
// navigation to the provider's site.
type StartCheckoutResult struct {
	OrderReference string
	RedirectURL    string
	Token          string
}

// Start runs one checkout attempt. Gateway failures and below-minimum
// amounts come back as *FallbackError so the caller can offer the card
// provider instead of a dead end; all other errors are fatal to the
// attempt.
func (s *CheckoutService) Start(ctx context.Context, req StartCheckoutRequest) (*StartCheckoutResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if err := ValidateVehicleEligibility(req.Vehicle.ManufactureYear, s.checkout.MaxVehicleAge, time.Now()); err != nil {
		return nil, err
	}

	plan, err := s.planService.Resolve(ctx, req.Plan)
	if err != nil {
		return nil, err
	}

	planCode, err := ProviderPlanCode(plan.Name)
	if err != nil {
		return nil, err
	}

	if !s.financing.Configured() {
		return nil, ErrProviderNotConfigured
	}

	if req.FinalAmount < s.financing.MinimumAmount {
		return nil, &FallbackError{
			Provider: CardProviderName,
			Reason:   fmt.Errorf("%w: %.2f < %.2f", ErrBelowMinimumAmount, req.FinalAmount, s.financing.MinimumAmount),
		}
	}

	now := time.Now().UTC()
	tx := &domain.Transaction{
		OrderReference:   newOrderReference(planCode, now),
		PlanID:           plan.ID,
		PaymentDuration:  req.PaymentDuration,
		Customer:         req.Customer,
		Vehicle:          req.Vehicle,
		ProtectionAddons: req.ProtectionAddons,
		ClaimLimit:       req.ClaimLimit,
		DiscountCode:     req.DiscountCode,
		VoluntaryExcess:  req.VoluntaryExcess,
		FinalAmount:      req.FinalAmount,
		Status:           domain.TransactionStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Ledger write happens-before the gateway call. A confirmed but
	// unrecorded provider transaction is worse than not starting one.
	if err := s.txRepo.Create(ctx, tx); err != nil {
		log.Printf("checkout: ledger write failed order_reference=%s plan=%s", tx.OrderReference, plan.ID)
		return nil, fmt.Errorf("record pending transaction: %w", err)
	}

	payload := s.buildPayload(tx, planCode, req)

	initiation, err := s.gateway.Initiate(ctx, payload)
	if err != nil {
		if errors.Is(err, financing.ErrInitiationFailed) {
			// The pending record stays untouched; the expiry sweeper
			// reclaims it if the card attempt goes nowhere.
			log.Printf("checkout: initiation failed, offering fallback order_reference=%s", tx.OrderReference)
			return nil, &FallbackError{Provider: CardProviderName, Reason: err}
		}
		return nil, err
	}

	log.Printf("checkout: initiated order_reference=%s plan=%s amount=%.2f", tx.OrderReference, plan.ID, tx.FinalAmount)

	return &StartCheckoutResult{
		OrderReference: tx.OrderReference,
		RedirectURL:    initiation.RedirectURL,
		Token:          initiation.Token,
	}, nil
}

func (s *CheckoutService) validate(req StartCheckoutRequest) error {
	if req.FinalAmount <= 0 {
		return ErrInvalidAmount
	}
	if !req.PaymentDuration.Valid() {
		return ErrInvalidPaymentDuration
	}
	if req.Customer.FirstName == "" || req.Customer.LastName == "" || req.Customer.Email == "" {
		return ErrMissingCustomerDetails
	}
	if req.Vehicle.Registration == "" {
		return ErrMissingVehicleReg
	}
	return nil
}

// buildPayload derives the ephemeral signing payload from the recorded
// transaction plus request context. The provider's monthly installment
// framing is display-only; the signed amount is the full cover total.
func (s *CheckoutService) buildPayload(tx *domain.Transaction, planCode string, req StartCheckoutRequest) financing.Payload {
	country := tx.Customer.Address.Country
	if country == "" {
		country = s.financing.Country
	}

	callbackURL := func(path string) string {
		return s.financing.CallbackBase + path + "?order_reference=" + tx.OrderReference
	}

	return financing.Payload{
		Amount:         fmt.Sprintf("%.2f", tx.FinalAmount),
		Currency:       s.financing.Currency,
		OrderReference: tx.OrderReference,
		SuccessURL:     callbackURL("/v1/checkout/success"),
		FailureURL:     callbackURL("/v1/checkout/failure"),
		FirstName:      tx.Customer.FirstName,
		LastName:       tx.Customer.LastName,
		Email:          tx.Customer.Email,
		Mobile:         tx.Customer.Mobile,
		VehicleReg:     tx.Vehicle.Registration,
		FlatNumber:     tx.Customer.Address.FlatNumber,
		BuildingName:   tx.Customer.Address.BuildingName,
		BuildingNumber: tx.Customer.Address.BuildingNumber,
		Street:         tx.Customer.Address.Street,
		Town:           tx.Customer.Address.Town,
		County:         tx.Customer.Address.County,
		Postcode:       tx.Customer.Address.Postcode,
		Country:        country,
		ProductID:      planCode,
		SendSMS:        req.SendSMS,
		SendEmail:      req.SendEmail,

		ProductDescription: fmt.Sprintf("%d month warranty cover for %s", tx.PaymentDuration, tx.Vehicle.Registration),
		PreferredMethod:    "monthly",
	}
}

// newOrderReference builds a globally unique reference embedding the
// provider plan code and a timestamp for human traceability.
func newOrderReference(planCode string, now time.Time) string {
	return fmt.Sprintf("WP%s-%d-%s", planCode, now.Unix(), uuid.New().String()[:8])
}
