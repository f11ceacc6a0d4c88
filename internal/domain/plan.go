package domain

// PlanCategory represents the vehicle category a plan covers.
type PlanCategory string

const (
	PlanCategoryCar       PlanCategory = "CAR"
	PlanCategoryVan       PlanCategory = "VAN"
	PlanCategoryMotorbike PlanCategory = "MOTORBIKE"
)

// Plan is read-only reference data describing a warranty product.
type Plan struct {
	ID       string
	Name     string
	Category PlanCategory
}
