package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-flexile/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	lastReq domain.EnforceRequest
}

func (m *stubService) LoadCompanyPolicy(companyID string) error { return nil }

func (m *stubService) Enforce(req domain.EnforceRequest) (bool, error) {
	m.lastReq = req
	return req.Resource == ResourceCapTable && req.Action == ActionRead, nil
}

func (m *stubService) RolesFor(userID, companyID string) ([]string, error) {
	return []string{RoleLawyer}, nil
}

func newCheckRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/rbac/check", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("company_id", "company-1")
		c.Next()
	}, NewHandler(svc).Check)
	return router
}

func TestHandler_Check(t *testing.T) {
	svc := &stubService{}
	router := newCheckRouter(svc)

	body, _ := json.Marshal(CheckRequest{Resource: " cap_table ", Action: "read"})
	req, _ := http.NewRequest(http.MethodPost, "/rbac/check", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", svc.lastReq.UserID)
	assert.Equal(t, "company-1", svc.lastReq.CompanyID)
	assert.Equal(t, ResourceCapTable, svc.lastReq.Resource)

	var resp struct {
		Ok   bool          `json:"ok"`
		Data CheckResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.True(t, resp.Data.Allowed)
	assert.Equal(t, []string{RoleLawyer}, resp.Data.Roles)
}

func TestHandler_Check_MissingFields(t *testing.T) {
	router := newCheckRouter(&stubService{})

	req, _ := http.NewRequest(http.MethodPost, "/rbac/check", bytes.NewBufferString(`{"resource":"cap_table"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
