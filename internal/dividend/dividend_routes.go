package dividend

import (
	"go-flexile/internal/middleware"
	"go-flexile/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, rdb *redis.Client) {
	computations := r.Group("/dividend-computations")
	computations.Use(middleware.AuthMiddleware())
	{
		computations.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceDividend, rbac.ActionRead),
			handler.GetComputation,
		)
		computations.POST("/:id/finalize",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceDividend, rbac.ActionFinalize),
			middleware.Idempotency(rdb),
			handler.Finalize,
		)
	}

	rounds := r.Group("/dividend-rounds")
	rounds.Use(middleware.AuthMiddleware())
	{
		rounds.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceDividend, rbac.ActionRead),
			handler.GetRound,
		)
	}
}
