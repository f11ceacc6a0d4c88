package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warranty/internal/domain"
	"warranty/internal/service"
)

// PlanHandler handles HTTP requests for plan reference data.
type PlanHandler struct {
	planService *service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// PlanResponse is the HTTP representation of a plan.
type PlanResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// GetAll handles GET /v1/plans
func (h *PlanHandler) GetAll(c *gin.Context) {
	plans, err := h.planService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		response = append(response, toPlanResponse(plan))
	}
	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/plans/:id — the identifier may be a unique id or,
// for backward compatibility, a plan name.
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.planService.Resolve(c.Request.Context(), service.ParsePlanIdentifier(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPlanResponse(plan))
}

func toPlanResponse(plan *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:       plan.ID,
		Name:     plan.Name,
		Category: string(plan.Category),
	}
}
