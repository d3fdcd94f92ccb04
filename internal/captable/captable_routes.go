package captable

import (
	"go-flexile/internal/middleware"
	"go-flexile/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, rdb *redis.Client) {
	capTable := r.Group("/cap-table")
	capTable.Use(middleware.AuthMiddleware())
	{
		capTable.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCapTable, rbac.ActionRead),
			handler.Get,
		)

		capTable.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCapTable, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
	}
}
