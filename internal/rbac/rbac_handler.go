package rbac

import (
	"net/http"
	"strings"

	"go-flexile/internal/domain"
	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Check reports whether the caller may perform an action, so clients can
// hide controls they cannot use.
func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
		return
	}

	userID := c.GetString("user_id")
	companyID := c.GetString("company_id")

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		UserID:    userID,
		CompanyID: companyID,
		Resource:  strings.TrimSpace(req.Resource),
		Action:    strings.TrimSpace(req.Action),
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
		return
	}

	roles, err := h.service.RolesFor(userID, companyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, CheckResponse{Allowed: allowed, Roles: roles}, nil)
}
