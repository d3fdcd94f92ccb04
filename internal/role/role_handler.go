package role

import (
	"net/http"

	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("role.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.handler")
	}
	return &Handler{service: service, logger: l}
}

// writeFailure renders err as {success:false, error}.
func (h *Handler) writeFailure(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, RoleResult{
		Success: false,
		Error:   httpErr.Message,
	})
}

func (h *Handler) bind(c *gin.Context) (ChangeRoleRequest, Role, bool) {
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeFailure(c, apperror.MapValidationError(err))
		return req, 0, false
	}
	r, err := ParseRole(req.Role)
	if err != nil {
		h.writeFailure(c, err)
		return req, 0, false
	}
	return req, r, true
}

func (h *Handler) Add(c *gin.Context) {
	req, r, ok := h.bind(c)
	if !ok {
		return
	}
	companyID := c.GetString("company_id")

	result, err := h.service.AddRole(c.Request.Context(), companyID, req.UserExternalID, r)
	if err != nil {
		h.logger.Warn("add role rejected", zap.String("company_id", companyID), zap.Error(err))
		h.writeFailure(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) Remove(c *gin.Context) {
	req, r, ok := h.bind(c)
	if !ok {
		return
	}
	companyID := c.GetString("company_id")
	actingUserID := c.GetString("user_id")

	result, err := h.service.RemoveRole(c.Request.Context(), companyID, req.UserExternalID, r, actingUserID)
	if err != nil {
		h.logger.Warn("remove role rejected", zap.String("company_id", companyID), zap.Error(err))
		h.writeFailure(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) List(c *gin.Context) {
	members, err := h.service.ListRoles(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, members, nil)
}
