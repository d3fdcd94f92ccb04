package captable

import (
	"net/http"

	"go-flexile/internal/middleware"
	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("captable.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("captable.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

// failureResult renders err as {success:false, errors:[...]}.
func failureResult(err error) CreateCapTableResult {
	httpErr := apperror.ToHTTP(err)
	if msgs, ok := httpErr.Details.([]string); ok && len(msgs) > 0 {
		return CreateCapTableResult{Success: false, Errors: msgs}
	}
	return CreateCapTableResult{Success: false, Errors: []string{httpErr.Message}}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, failureResult(err))
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateCapTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.logger.Warn("create cap table rejected", zap.String("company_id", companyID), zap.Error(err))
		h.writeError(c, err)
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, result)
	response.Success(c, http.StatusCreated, result, nil)
}

func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
