package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/walletnames/registrar/internal/infrastructure/permission"
	"github.com/walletnames/registrar/internal/interfaces/http/middleware"
	"github.com/walletnames/registrar/internal/shared/logger"

	_ "github.com/walletnames/registrar/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	components     *components
	allowedOrigins []string
	logger         logger.Interface
}

// NewRouter wires the purchase services onto a fresh gin engine.
func NewRouter(deps Dependencies) (*Router, error) {
	c, err := wire(deps)
	if err != nil {
		return nil, err
	}
	return &Router{
		engine:         gin.New(),
		components:     c,
		allowedOrigins: deps.AllowedOrigins,
		logger:         deps.Logger,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.CORS(r.allowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/health", r.components.healthHandler.HealthCheck)

	api := r.engine.Group("/api/v1")

	purchaseChain := []gin.HandlerFunc{}
	if r.components.purchaseLimiter != nil {
		purchaseChain = append(purchaseChain, r.components.purchaseLimiter.Limit())
	}
	purchaseChain = append(purchaseChain, r.components.auth.OptionalAuth(), r.components.purchaseHandler.Purchase)
	api.POST("/purchase", purchaseChain...)

	charges := api.Group("/charges")
	charges.Use(
		r.components.auth.RequireAuth(),
		r.components.permission.RequirePermission(permission.ResourceCharges, permission.ActionRead),
	)
	{
		charges.GET("/:extern_id", r.components.purchaseHandler.GetCharge)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
