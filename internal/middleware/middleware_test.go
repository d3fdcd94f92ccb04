package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-flexile/internal/domain"
	"go-flexile/internal/middleware"
	"go-flexile/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/test", handlers...)
	r.GET("/test", handlers...)
	return r
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":    c.GetString("user_id"),
		"company_id": contextutil.GetCompanyID(c.Request.Context()),
		"request_id": contextutil.GetRequestID(c.Request.Context()),
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := newRouter(middleware.AuthMiddleware(), ok)

	tests := []struct {
		name   string
		header string
		want   int
		body   string
	}{
		{
			name: "valid token",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"user_id": "user-1", "company_id": "company-1", "exp": time.Now().Add(time.Hour).Unix(),
			}),
			want: http.StatusOK,
			body: `"company_id":"company-1"`,
		},
		{name: "missing token", want: http.StatusUnauthorized, body: "Token not found"},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"user_id": "user-1", "company_id": "company-1", "exp": time.Now().Add(-time.Hour).Unix(),
			}),
			want: http.StatusUnauthorized,
			body: "Token has expired",
		},
		{
			name:   "missing company claim",
			header: "Bearer " + signToken(t, jwt.MapClaims{"user_id": "user-1"}),
			want:   http.StatusUnauthorized,
			body:   "Invalid token",
		},
		{name: "garbage", header: "Bearer abc.def.ghi", want: http.StatusUnauthorized, body: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set("role", role) }
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	newRouter(withRole("team_member"), middleware.RoleMiddleware("team_member"), ok).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	newRouter(withRole("investor"), middleware.RoleMiddleware("team_member"), ok).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

type stubRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (s *stubRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	s.got = req
	return s.allowed, s.err
}

func TestRBACAuthorize(t *testing.T) {
	authenticated := func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("company_id", "company-1")
	}

	tests := []struct {
		name string
		rbac *stubRBAC
		want int
	}{
		{"allowed", &stubRBAC{allowed: true}, http.StatusOK},
		{"denied", &stubRBAC{}, http.StatusForbidden},
		{"enforcer failure", &stubRBAC{err: errors.New("policy load failed")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			newRouter(authenticated, middleware.RBACAuthorize(tt.rbac, "dividend", "finalize"), ok).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, domain.EnforceRequest{
				UserID: "user-1", CompanyID: "company-1", Resource: "dividend", Action: "finalize",
			}, tt.rbac.got)
		})
	}

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		newRouter(middleware.RBACAuthorize(&stubRBAC{allowed: true}, "dividend", "read"), ok).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	router := newRouter(middleware.RequestID(), ok)

	t.Run("keeps caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "req-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
		assert.Contains(t, w.Body.String(), `"request_id":"req-123"`)
	})

	t.Run("replaces unsafe id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "bad id\nwith newline")
		router.ServeHTTP(w, req)

		rid := w.Header().Get("X-Request-ID")
		assert.Len(t, rid, 36)
		assert.NotContains(t, rid, " ")
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 65))
		router.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/test:user-1:key-1"
	authenticated := func(c *gin.Context) { c.Set("user_id", "user-1") }

	t.Run("replays cached response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"round":"r1"}`)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		newRouter(authenticated, middleware.Idempotency(rdb), ok).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Contains(t, w.Body.String(), `"round":"r1"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects concurrent duplicate", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		newRouter(authenticated, middleware.Idempotency(rdb), ok).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request runs and caches", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(`{"success":true}`), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		handler := func(c *gin.Context) {
			middleware.CacheIdempotentResponse(c, rdb, gin.H{"success": true})
			c.Status(http.StatusCreated)
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		newRouter(authenticated, middleware.Idempotency(rdb), handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/test", nil)
		newRouter(authenticated, middleware.Idempotency(rdb), ok).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
