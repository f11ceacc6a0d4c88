package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warranty/internal/domain"
	"warranty/internal/service"
)

// CallbackHandler handles the provider's asynchronous success and
// failure callbacks, plus the post-redirect transaction status view.
type CallbackHandler struct {
	callbackService *service.CallbackService
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(callbackService *service.CallbackService) *CallbackHandler {
	return &CallbackHandler{callbackService: callbackService}
}

// TransactionResponse is the HTTP representation of a transaction's state.
type TransactionResponse struct {
	OrderReference string  `json:"order_reference"`
	Status         string  `json:"status"`
	FinalAmount    float64 `json:"final_amount"`
	FailureReason  string  `json:"failure_reason,omitempty"`
}

// Success handles GET /v1/checkout/success?order_reference=R
func (h *CallbackHandler) Success(c *gin.Context) {
	h.finalize(c, domain.TransactionStatusSucceeded)
}

// Failure handles GET /v1/checkout/failure?order_reference=R
func (h *CallbackHandler) Failure(c *gin.Context) {
	h.finalize(c, domain.TransactionStatusFailed)
}

func (h *CallbackHandler) finalize(c *gin.Context, status domain.TransactionStatus) {
	reference := c.Query("order_reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order_reference is required"})
		return
	}

	var (
		tx  *domain.Transaction
		err error
	)
	if status == domain.TransactionStatusSucceeded {
		tx, err = h.callbackService.HandleSuccess(c.Request.Context(), reference)
	} else {
		tx, err = h.callbackService.HandleFailure(c.Request.Context(), reference)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransactionResponse(tx))
}

// GetTransaction handles GET /v1/transactions/:reference
func (h *CallbackHandler) GetTransaction(c *gin.Context) {
	tx, err := h.callbackService.GetTransaction(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransactionResponse(tx))
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		OrderReference: tx.OrderReference,
		Status:         string(tx.Status),
		FinalAmount:    tx.FinalAmount,
		FailureReason:  tx.FailureReason,
	}
}
