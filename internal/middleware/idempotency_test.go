package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hrpay/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func setupIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	calls := 0

	r := gin.New()
	r.POST("/salaries",
		func(c *gin.Context) { c.Set("user_id", "u-1"); c.Next() },
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)
	return r, mock, &calls
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/salaries", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/salaries:u-1:k-1"
	const lockKey = cacheKey + ":lock"

	t.Run("first request runs the handler and stores the response", func(t *testing.T) {
		r, mock, calls := setupIdempotencyRouter(t)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(`{"status":201,"body":{"ok":true}}`), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := postWithKey(r, "k-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeated key replays the cached response", func(t *testing.T) {
		r, mock, calls := setupIdempotencyRouter(t)

		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true}}`)

		w := postWithKey(r, "k-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate gets 409", func(t *testing.T) {
		r, mock, calls := setupIdempotencyRouter(t)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := postWithKey(r, "k-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.Equal(t, 0, *calls)
	})

	t.Run("redis outage falls through to the handler", func(t *testing.T) {
		r, mock, calls := setupIdempotencyRouter(t)

		mock.ExpectGet(cacheKey).SetErr(errors.New("connection refused"))

		w := postWithKey(r, "k-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
	})

	t.Run("no key skips redis entirely", func(t *testing.T) {
		r, mock, calls := setupIdempotencyRouter(t)

		w := postWithKey(r, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
