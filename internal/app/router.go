package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"warranty/internal/handler"
	"warranty/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	CheckoutHandler *handler.CheckoutHandler
	CallbackHandler *handler.CallbackHandler
	PlanHandler     *handler.PlanHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Checkout routes. The success/failure routes are the provider's
		// callback targets and must stay GET: the provider redirects the
		// customer's browser to them.
		checkout := v1.Group("/checkout")
		{
			checkout.POST("", deps.CheckoutHandler.StartCheckout)
			checkout.GET("/success", deps.CallbackHandler.Success)
			checkout.GET("/failure", deps.CallbackHandler.Failure)
		}

		// Transaction status for the post-redirect landing page.
		v1.GET("/transactions/:reference", deps.CallbackHandler.GetTransaction)

		// Plan reference data.
		plans := v1.Group("/plans")
		{
			plans.GET("", deps.PlanHandler.GetAll)
			plans.GET("/:id", deps.PlanHandler.Get)
		}
	}

	return router
}
