package company

import (
	"go-flexile/internal/middleware"
	"go-flexile/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	company := r.Group("/companies")
	company.Use(middleware.AuthMiddleware())
	{
		// dashboards refresh this often
		company.GET("/me",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionRead),
			handler.GetMe,
		)

		company.PATCH("/me",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionUpdate),
			handler.UpdateMe,
		)
	}
}
