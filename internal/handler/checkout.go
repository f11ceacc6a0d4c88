package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"warranty/internal/domain"
	"warranty/internal/service"
)

// CheckoutHandler handles HTTP requests for checkout initiation.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// VehicleRequest is the vehicle portion of a checkout request.
type VehicleRequest struct {
	Year         int    `json:"year"`
	Registration string `json:"registration"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	FuelType     string `json:"fuel_type"`
	Transmission string `json:"transmission"`
	Mileage      int    `json:"mileage"`
}

// AddressRequest is the structured address portion of a checkout request.
type AddressRequest struct {
	FlatNumber     string `json:"flat_number"`
	BuildingName   string `json:"building_name"`
	BuildingNumber string `json:"building_number"`
	Street         string `json:"street"`
	Town           string `json:"town"`
	County         string `json:"county"`
	Postcode       string `json:"postcode"`
	Country        string `json:"country"`
}

// CustomerRequest is the customer portion of a checkout request.
type CustomerRequest struct {
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Mobile    string         `json:"mobile"`
	Address   AddressRequest `json:"address"`
}

// StartCheckoutRequest is the HTTP request body for starting a checkout.
type StartCheckoutRequest struct {
	Plan             string          `json:"plan"` // unique id or plan name
	Vehicle          VehicleRequest  `json:"vehicle"`
	Customer         CustomerRequest `json:"customer"`
	PaymentDuration  int             `json:"payment_duration"`
	VoluntaryExcess  int             `json:"voluntary_excess"`
	DiscountCode     string          `json:"discount_code"`
	FinalAmount      float64         `json:"final_amount"`
	ProtectionAddons map[string]bool `json:"protection_addons"`
	ClaimLimit       int             `json:"claim_limit"`
	SendSMS          bool            `json:"send_sms"`
	SendEmail        bool            `json:"send_email"`
}

// StartCheckoutResponse is the HTTP response for a successful initiation.
type StartCheckoutResponse struct {
	OrderReference string `json:"order_reference"`
	RedirectURL    string `json:"redirect_url"`
	Token          string `json:"token,omitempty"`
}

// FallbackResponse tells the caller to retry checkout with the
// alternate provider.
type FallbackResponse struct {
	Fallback bool   `json:"fallback"`
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// StartCheckout handles POST /v1/checkout
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	var req StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Plan == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "plan is required"})
		return
	}

	result, err := h.checkoutService.Start(c.Request.Context(), service.StartCheckoutRequest{
		Plan: service.ParsePlanIdentifier(req.Plan),
		Vehicle: domain.VehicleSnapshot{
			Registration:    req.Vehicle.Registration,
			Make:            req.Vehicle.Make,
			Model:           req.Vehicle.Model,
			FuelType:        req.Vehicle.FuelType,
			Transmission:    req.Vehicle.Transmission,
			Mileage:         req.Vehicle.Mileage,
			ManufactureYear: req.Vehicle.Year,
		},
		Customer: domain.CustomerSnapshot{
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Email:     req.Customer.Email,
			Mobile:    req.Customer.Mobile,
			Address: domain.Address{
				FlatNumber:     req.Customer.Address.FlatNumber,
				BuildingName:   req.Customer.Address.BuildingName,
				BuildingNumber: req.Customer.Address.BuildingNumber,
				Street:         req.Customer.Address.Street,
				Town:           req.Customer.Address.Town,
				County:         req.Customer.Address.County,
				Postcode:       req.Customer.Address.Postcode,
				Country:        req.Customer.Address.Country,
			},
		},
		PaymentDuration:  domain.PaymentDuration(req.PaymentDuration),
		VoluntaryExcess:  req.VoluntaryExcess,
		DiscountCode:     req.DiscountCode,
		FinalAmount:      req.FinalAmount,
		ProtectionAddons: req.ProtectionAddons,
		ClaimLimit:       req.ClaimLimit,
		SendSMS:          req.SendSMS,
		SendEmail:        req.SendEmail,
	})
	if err != nil {
		var fallback *service.FallbackError
		if errors.As(err, &fallback) {
			respondJSON(c, http.StatusOK, FallbackResponse{
				Fallback: true,
				Provider: fallback.Provider,
				Reason:   fallback.Reason.Error(),
			})
			return
		}
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, StartCheckoutResponse{
		OrderReference: result.OrderReference,
		RedirectURL:    result.RedirectURL,
		Token:          result.Token,
	})
}
