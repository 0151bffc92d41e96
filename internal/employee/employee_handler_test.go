package employee_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrpay/internal/domain"
	"go-hrpay/internal/employee"
	employeeerrors "go-hrpay/internal/employee/errors"
	employeeMock "go-hrpay/internal/employee/mock"
	"go-hrpay/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupEmployeeRouter(t *testing.T, actor domain.Identity) (*gin.Engine, *employeeMock.MockService) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, actor)
		c.Next()
	})
	r.POST("/employees", h.Create)
	r.GET("/employees", h.GetAll)
	r.DELETE("/employees/:id", h.Deactivate)
	return r, svc
}

func TestHandler_Create(t *testing.T) {
	actor := domain.Identity{UserID: "u-1", Role: domain.RoleCompanyAdmin, CompanyID: "c-1"}

	t.Run("success", func(t *testing.T) {
		r, svc := setupEmployeeRouter(t, actor)
		svc.EXPECT().Create(gomock.Any(), actor, gomock.Any()).
			Return(employee.EmployeeResponse{ID: "e-1", EmployeeNumber: "EMP-000001"}, nil)

		body, _ := json.Marshal(map[string]any{
			"user_id":     "6f1c4a52-5d3b-4c6b-9a55-2b0f3c1b2a10",
			"base_salary": 5000000,
			"join_date":   "2024-01-15",
		})
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "EMP-000001")
	})

	t.Run("validation error", func(t *testing.T) {
		r, _ := setupEmployeeRouter(t, actor)

		body, _ := json.Marshal(map[string]any{"user_id": "nope", "join_date": "2024-01-15"})
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("base salary above the cap", func(t *testing.T) {
		r, _ := setupEmployeeRouter(t, actor)

		body, _ := json.Marshal(map[string]any{
			"user_id":     "6f1c4a52-5d3b-4c6b-9a55-2b0f3c1b2a10",
			"base_salary": int64(1_000_000_000_000_001),
			"join_date":   "2024-01-15",
		})
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		r, svc := setupEmployeeRouter(t, actor)
		svc.EXPECT().Create(gomock.Any(), actor, gomock.Any()).
			Return(employee.EmployeeResponse{}, employeeerrors.ErrUserAlreadyEmployed)

		body, _ := json.Marshal(map[string]any{
			"user_id":   "6f1c4a52-5d3b-4c6b-9a55-2b0f3c1b2a10",
			"join_date": "2024-01-15",
		})
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_GetAll(t *testing.T) {
	actor := domain.Identity{UserID: "u-1", Role: domain.RoleCompanyAdmin, CompanyID: "c-1"}
	r, svc := setupEmployeeRouter(t, actor)

	svc.EXPECT().GetAll(gomock.Any(), "c-1", false).Return([]employee.EmployeeResponse{
		{ID: "1", FullName: "Charlie", EmployeeNumber: "EMP-000003"},
		{ID: "2", FullName: "alice", EmployeeNumber: "EMP-000001"},
		{ID: "3", FullName: "Bob", EmployeeNumber: "EMP-000002"},
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data []employee.EmployeeResponse `json:"data"`
		Meta map[string]any              `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Data, 2)
	assert.Equal(t, "alice", res.Data[0].FullName)
	assert.Equal(t, "Bob", res.Data[1].FullName)
}

func TestHandler_Deactivate(t *testing.T) {
	actor := domain.Identity{UserID: "u-1", Role: domain.RoleCompanyAdmin, CompanyID: "c-1"}
	r, svc := setupEmployeeRouter(t, actor)

	svc.EXPECT().Deactivate(gomock.Any(), actor, "e-9").Return(employeeerrors.ErrEmployeeNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/e-9", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "EMPLOYEE_NOT_FOUND")
}
