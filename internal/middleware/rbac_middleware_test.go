package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrpay/internal/domain"
	"go-hrpay/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEnforcer struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func serveRBAC(role string, enforcer middleware.RBACService) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/salaries",
		func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		},
		middleware.RBACAuthorize(enforcer, "salary", "read"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))
	return w
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		f := &fakeEnforcer{allowed: true}
		w := serveRBAC(string(domain.RoleCompanyAdmin), f)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.RoleCompanyAdmin, f.got.Role)
		assert.Equal(t, "salary", f.got.Resource)
		assert.Equal(t, "read", f.got.Action)
	})

	t.Run("denied", func(t *testing.T) {
		w := serveRBAC(string(domain.RoleEmployee), &fakeEnforcer{allowed: false})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "salary:read")
	})

	t.Run("missing role", func(t *testing.T) {
		w := serveRBAC("", &fakeEnforcer{allowed: true})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := serveRBAC(string(domain.RolePlatformAdmin), &fakeEnforcer{err: errors.New("model not loaded")})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
