package role

import (
	"go-flexile/internal/middleware"
	"go-flexile/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware())
	{
		roles.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceRole, rbac.ActionRead),
			handler.List,
		)
		roles.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRole, rbac.ActionManage),
			handler.Add,
		)
		roles.DELETE("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRole, rbac.ActionManage),
			handler.Remove,
		)
	}
}
