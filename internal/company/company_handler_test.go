package company_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-flexile/internal/company"
	companyerrors "go-flexile/internal/company/errors"
	companyMock "go-flexile/internal/company/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newCompanyRouter(handler *company.Handler, companyID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if companyID != "" {
			c.Set("company_id", companyID)
		}
		c.Next()
	})
	r.GET("/me", handler.GetMe)
	r.PATCH("/me", handler.UpdateMe)
	return r
}

func TestHandler_GetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := companyMock.NewMockService(ctrl)
	handler := company.NewHandler(mockService)

	t.Run("Success", func(t *testing.T) {
		compID := "comp-123"
		mockService.EXPECT().GetByID(gomock.Any(), compID).Return(company.CompanyResponse{ID: compID, Name: "Test Company"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		newCompanyRouter(handler, compID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, true, res["ok"])
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.EXPECT().GetByID(gomock.Any(), "comp-404").Return(company.CompanyResponse{}, companyerrors.ErrCompanyNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		newCompanyRouter(handler, "comp-404").ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MissingCompanyContext", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		newCompanyRouter(handler, "").ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_UpdateMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := companyMock.NewMockService(ctrl)
	handler := company.NewHandler(mockService)

	compID := "comp-123"
	enabled := true
	mockService.EXPECT().
		Update(gomock.Any(), compID, company.UpdateCompanyRequest{EquityEnabled: &enabled}).
		Return(company.CompanyResponse{ID: compID, EquityEnabled: true}, nil)

	body, _ := json.Marshal(map[string]any{"equity_enabled": true})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	newCompanyRouter(handler, compID).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
