package salary_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrpay/internal/domain"
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/salary"
	salaryerrors "go-hrpay/internal/salary/errors"
	salaryMock "go-hrpay/internal/salary/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupHandler(t *testing.T, actor domain.Identity) (*gin.Engine, *salaryMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := salaryMock.NewMockService(gomock.NewController(t))
	h := salary.NewHandler(svc, zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, actor)
		c.Next()
	})
	r.POST("/salaries", h.Create)
	r.GET("/salaries", h.GetAll)
	r.GET("/salaries/preview", h.Preview)
	r.GET("/salaries/export", h.Export)
	r.GET("/salaries/:id", h.GetById)
	r.GET("/salaries/:id/payslip", h.GetPayslip)
	r.PATCH("/salaries/:id/status", h.UpdateStatus)
	return r, svc
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSalaryHandler_Create(t *testing.T) {
	body := `{"employee_id":"` + employeeID.String() + `","month":"04","year":"2024","bonus":100000,"deduction":20000,"attendance_bonus":50000}`

	t.Run("created", func(t *testing.T) {
		r, svc := setupHandler(t, admin)
		svc.EXPECT().Create(gomock.Any(), admin, aprilRequest()).
			Return(salary.SalaryResponse{ID: "s-1", Total: 5130000, Status: "UNPAID"}, nil)

		w := doJSON(r, http.MethodPost, "/salaries", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"total":5130000`)
		assert.Contains(t, w.Body.String(), "Salary created")
	})

	t.Run("duplicate period", func(t *testing.T) {
		r, svc := setupHandler(t, admin)
		svc.EXPECT().Create(gomock.Any(), admin, gomock.Any()).Return(salary.SalaryResponse{}, salaryerrors.ErrSalaryExists)

		w := doJSON(r, http.MethodPost, "/salaries", body)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "salary already exists for this period")
	})

	t.Run("missing month", func(t *testing.T) {
		r, _ := setupHandler(t, admin)

		w := doJSON(r, http.MethodPost, "/salaries", `{"employee_id":"x","year":"2024"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("per-field message", func(t *testing.T) {
		r, svc := setupHandler(t, admin)
		svc.EXPECT().Create(gomock.Any(), admin, gomock.Any()).Return(salary.SalaryResponse{}, salaryerrors.ErrNegativeBonus)

		w := doJSON(r, http.MethodPost, "/salaries", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "bonus must not be negative")
	})
}

func TestSalaryHandler_UpdateStatus(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		r, svc := setupHandler(t, admin)
		svc.EXPECT().UpdateStatus(gomock.Any(), admin, "s-1", salary.UpdateStatusRequest{Status: "VOID"}).
			Return(salary.SalaryResponse{}, salaryerrors.ErrInvalidStatus)

		w := doJSON(r, http.MethodPatch, "/salaries/s-1/status", `{"status":"VOID"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("paid", func(t *testing.T) {
		r, svc := setupHandler(t, admin)
		svc.EXPECT().UpdateStatus(gomock.Any(), admin, "s-1", salary.UpdateStatusRequest{Status: "PAID"}).
			Return(salary.SalaryResponse{ID: "s-1", Status: "PAID"}, nil)

		w := doJSON(r, http.MethodPatch, "/salaries/s-1/status", `{"status":"PAID"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Salary status updated")
	})
}

func TestSalaryHandler_Export(t *testing.T) {
	r, svc := setupHandler(t, admin)
	svc.EXPECT().Export(gomock.Any(), admin, "04", "2024").Return(bytes.NewBufferString("PK-xlsx"), nil)

	w := doJSON(r, http.MethodGet, "/salaries/export?month=04&year=2024", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "salaries-2024-04.xlsx")
	assert.Equal(t, "PK-xlsx", w.Body.String())
}

func TestSalaryHandler_Preview(t *testing.T) {
	r, svc := setupHandler(t, admin)
	svc.EXPECT().Preview(gomock.Any(), admin, employeeID.String(), "04", "2024").
		Return(salary.PreviewResponse{AttendanceBonus: 250000}, nil)

	w := doJSON(r, http.MethodGet, "/salaries/preview?employee_id="+employeeID.String()+"&month=04&year=2024", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"attendance_bonus":250000`)
}

func TestSalaryHandler_GetPayslip(t *testing.T) {
	r, svc := setupHandler(t, staff)
	svc.EXPECT().GetPayslipURL(gomock.Any(), staff, "s-1").Return(salary.PayslipResponse{}, salaryerrors.ErrPayslipNotReady)

	w := doJSON(r, http.MethodGet, "/salaries/s-1/payslip", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
