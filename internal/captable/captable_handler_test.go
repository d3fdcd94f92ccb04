package captable_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-flexile/internal/captable"
	captableerrors "go-flexile/internal/captable/errors"
	captableMock "go-flexile/internal/captable/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newCapTableRouter(handler *captable.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Next()
	})
	r.POST("/cap-table", handler.Create)
	r.GET("/cap-table", handler.Get)
	return r
}

type envelope struct {
	Ok    bool                          `json:"ok"`
	Data  captable.CreateCapTableResult `json:"data"`
	Error struct {
		Code    string                        `json:"code"`
		Message string                        `json:"message"`
		Details captable.CreateCapTableResult `json:"details"`
	} `json:"error"`
}

func TestHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := captableMock.NewMockService(ctrl)
	handler := captable.NewHandler(mockService, nil)

	body, _ := json.Marshal(captable.CreateCapTableRequest{
		Investors: []captable.InvestorInput{{UserExternalID: "user1", Shares: 100}},
	})

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), "company-1", gomock.Any()).
			Return(captable.CreateCapTableResult{Success: true, Errors: []string{}, FullyDilutedShares: 100}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cap-table", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		newCapTableRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var res envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.True(t, res.Ok)
		assert.True(t, res.Data.Success)
		assert.Equal(t, []string{}, res.Data.Errors)
	})

	t.Run("row errors render as errors list", func(t *testing.T) {
		rowErrs := []string{"Investor 1: User not found", "Investor 2: User not found"}
		mockService.EXPECT().
			Create(gomock.Any(), "company-1", gomock.Any()).
			Return(captable.CreateCapTableResult{}, captableerrors.ErrInvalidInvestors.WithDetails(rowErrs))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cap-table", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		newCapTableRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var res envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.False(t, res.Ok)
		assert.False(t, res.Error.Details.Success)
		assert.Equal(t, rowErrs, res.Error.Details.Errors)
	})

	t.Run("state conflict renders single error", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), "company-1", gomock.Any()).
			Return(captable.CreateCapTableResult{}, captableerrors.ErrCapTableExists)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cap-table", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		newCapTableRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		var res envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, []string{"Company already has cap table data"}, res.Error.Details.Errors)
	})

	t.Run("empty investor list is decided by the service", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), "company-1", captable.CreateCapTableRequest{Investors: []captable.InvestorInput{}}).
			Return(captable.CreateCapTableResult{}, captableerrors.ErrEquityNotEnabled)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cap-table", bytes.NewBufferString(`{"investors":[]}`))
		req.Header.Set("Content-Type", "application/json")
		newCapTableRouter(handler).ServeHTTP(w, req)

		var res envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, []string{"Company must have equity enabled"}, res.Error.Details.Errors)
	})

	t.Run("invalid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/cap-table", bytes.NewBufferString(`{"investors":[{"user_external_id":"user1","shares":0}]}`))
		req.Header.Set("Content-Type", "application/json")
		newCapTableRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := captableMock.NewMockService(ctrl)
	handler := captable.NewHandler(mockService, nil)

	mockService.EXPECT().
		Get(gomock.Any(), "company-1").
		Return(captable.CapTableResponse{CompanyID: "company-1", FullyDilutedShares: 10}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/cap-table", nil)
	newCapTableRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
