package report

import (
	"net/http"
	"time"

	reporterrors "go-flexile/internal/report/errors"
	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const csvContentType = "text/csv; charset=utf-8"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	start, errStart := time.Parse(dateLayout, req.StartDate)
	end, errEnd := time.Parse(dateLayout, req.EndDate)
	if errStart != nil || errEnd != nil {
		h.writeError(c, reporterrors.ErrInvalidDateRange)
		return
	}

	files, err := h.service.Generate(c.Request.Context(), start, end)
	if err != nil {
		h.logger.Warn("generate financial report failed",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
			zap.Error(err),
		)
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReportResponse("", files), nil)
}

func (h *Handler) GetStored(c *gin.Context) {
	period := c.Param("period")
	files, err := h.service.GetStored(c.Request.Context(), period)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReportResponse(period, files), nil)
}

// Download streams one stored file as CSV.
func (h *Handler) Download(c *gin.Context) {
	files, err := h.service.GetStored(c.Request.Context(), c.Param("period"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	name := c.Param("file")
	body, ok := files[name]
	if !ok {
		h.writeError(c, reporterrors.ErrReportNotFound)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, csvContentType, body)
}
