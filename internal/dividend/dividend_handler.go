package dividend

import (
	"net/http"

	"go-flexile/internal/middleware"
	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("dividend.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dividend.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func validID(c *gin.Context, param string) (string, bool) {
	id := c.Param(param)
	if _, err := uuid.Parse(id); err != nil {
		httpErr := apperror.ToHTTP(apperror.InvalidField(param))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return "", false
	}
	return id, true
}

func (h *Handler) Finalize(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	companyID := c.GetString("company_id")

	result, err := h.service.Finalize(c.Request.Context(), companyID, id)
	if err != nil {
		h.logger.Warn("finalize dividend computation failed",
			zap.String("company_id", companyID),
			zap.String("dividend_computation_id", id),
			zap.Error(err),
		)
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, FinalizeResult{
			Success: false,
			Error:   httpErr.Message,
		})
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, result)
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) GetComputation(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetComputation(c.Request.Context(), c.GetString("company_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetRound(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetRound(c.Request.Context(), c.GetString("company_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
