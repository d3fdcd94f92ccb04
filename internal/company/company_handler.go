package company

import (
	"net/http"

	companyerrors "go-flexile/internal/company/errors"
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
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetMe(c *gin.Context) {
	companyID := c.GetString("company_id")
	if companyID == "" {
		h.writeError(c, companyerrors.ErrMissingCompanyContext)
		return
	}

	comp, err := h.service.GetByID(c.Request.Context(), companyID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	companyID := c.GetString("company_id")
	if companyID == "" {
		h.writeError(c, companyerrors.ErrMissingCompanyContext)
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	comp, err := h.service.Update(c.Request.Context(), companyID, req)
	if err != nil {
		h.logger.Warn("update company rejected", zap.String("company_id", companyID), zap.Error(err))
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}
