package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrpay/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping",
		func(c *gin.Context) {
			c.Set("user_id", c.GetHeader("X-User"))
			c.Next()
		},
		middleware.RateLimitByUser(rate.Limit(0.001), 1),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("u-1"))
	assert.Equal(t, http.StatusTooManyRequests, call("u-1"))
	assert.Equal(t, http.StatusOK, call("u-2"), "buckets are per user")
	assert.Equal(t, http.StatusOK, call(""), "anonymous requests are not limited")
	assert.Equal(t, http.StatusOK, call(""))
}

func TestKeyedRateLimiter_ReusesLimiter(t *testing.T) {
	k := middleware.NewKeyedRateLimiter(rate.Limit(1), 1)
	assert.Same(t, k.Limiter("a"), k.Limiter("a"))
	assert.NotSame(t, k.Limiter("a"), k.Limiter("b"))
}
