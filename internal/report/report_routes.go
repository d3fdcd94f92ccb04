package report

import (
	"go-flexile/internal/middleware"

	"github.com/gin-gonic/gin"
)

// TeamMemberRole is the platform staff role allowed to read cross-company
// financial reports.
const TeamMemberRole = "team_member"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	reports := r.Group("/reports/financial")
	reports.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(TeamMemberRole))
	{
		reports.POST("",
			middleware.RateLimitByUser(0.1, 1),
			handler.Generate,
		)
		reports.GET("/:period", handler.GetStored)
		reports.GET("/:period/:file", handler.Download)
	}
}
