package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrpay/internal/dashboard"
	dashboardMock "go-hrpay/internal/dashboard/mock"
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestDashboardHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := dashboardMock.NewMockService(gomock.NewController(t))
	h := dashboard.NewHandler(svc)

	r := gin.New()
	r.GET("/dashboard/admin", func(c *gin.Context) {
		middleware.SetIdentity(c, admin)
		c.Next()
	}, h.Admin)
	r.GET("/dashboard/user", h.User)

	t.Run("admin summary", func(t *testing.T) {
		svc.EXPECT().Admin(gomock.Any(), admin).Return(dashboard.AdminSummary{ActiveEmployees: 7}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"active_employees":7`)
	})

	t.Run("missing identity", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/user", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc.EXPECT().Admin(gomock.Any(), admin).Return(dashboard.AdminSummary{}, apperror.ErrForbidden)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
