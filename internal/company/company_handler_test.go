package company_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrpay/internal/company"
	companyerrors "go-hrpay/internal/company/errors"
	companyMock "go-hrpay/internal/company/mock"
	"go-hrpay/internal/domain"
	"go-hrpay/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupCompanyRouter(t *testing.T, actor domain.Identity) (*gin.Engine, *companyMock.MockService) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	svc := companyMock.NewMockService(ctrl)
	h := company.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, actor)
		c.Next()
	})
	r.GET("/companies/:id/settings", h.GetSettings)
	r.PUT("/companies/:id/settings", h.UpdateSettings)
	r.PUT("/companies/:id/logo", h.UpdateLogo)
	return r, svc
}

func TestHandler_UpdateSettings(t *testing.T) {
	actor := domain.Identity{UserID: "u-1", Role: domain.RoleCompanyAdmin, CompanyID: "c-1"}

	t.Run("success", func(t *testing.T) {
		r, svc := setupCompanyRouter(t, actor)
		svc.EXPECT().
			UpdateSettings(gomock.Any(), actor, "c-1", map[string]any{"minimum_work_hours": float64(7)}).
			Return(company.CompanyResponse{ID: "c-1", Settings: company.Settings{MinimumWorkHours: 7}}, nil)

		req := httptest.NewRequest(http.MethodPut, "/companies/c-1/settings", bytes.NewBufferString(`{"minimum_work_hours":7}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "Company settings updated", res["message"])
	})

	t.Run("unauthorized maps to 401", func(t *testing.T) {
		r, svc := setupCompanyRouter(t, actor)
		svc.EXPECT().
			UpdateSettings(gomock.Any(), actor, "c-2", gomock.Any()).
			Return(company.CompanyResponse{}, companyerrors.ErrUnauthorizedSettings)

		req := httptest.NewRequest(http.MethodPut, "/companies/c-2/settings", bytes.NewBufferString(`{"minimum_work_hours":7}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no valid fields maps to 400", func(t *testing.T) {
		r, svc := setupCompanyRouter(t, actor)
		svc.EXPECT().
			UpdateSettings(gomock.Any(), actor, "c-1", gomock.Any()).
			Return(company.CompanyResponse{}, companyerrors.ErrNoValidFields)

		req := httptest.NewRequest(http.MethodPut, "/companies/c-1/settings", bytes.NewBufferString(`{"foo":1}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "NO_VALID_FIELDS")
	})

	t.Run("malformed body", func(t *testing.T) {
		r, _ := setupCompanyRouter(t, actor)

		req := httptest.NewRequest(http.MethodPut, "/companies/c-1/settings", bytes.NewBufferString(`[1,2`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetSettings(t *testing.T) {
	actor := domain.Identity{UserID: "u-1", Role: domain.RoleEmployee, CompanyID: "c-1"}

	t.Run("own company", func(t *testing.T) {
		r, svc := setupCompanyRouter(t, actor)
		svc.EXPECT().GetSettings(gomock.Any(), "c-1").Return(company.Settings{CheckInEndTime: "09:00"}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/c-1/settings", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"check_in_end_time":"09:00"`)
	})

	t.Run("another tenant", func(t *testing.T) {
		r, _ := setupCompanyRouter(t, actor)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/c-9/settings", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_UpdateLogo(t *testing.T) {
	actor := domain.Identity{UserID: "u-1", Role: domain.RoleCompanyAdmin, CompanyID: "c-1"}

	newUpload := func(filename string) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		fw, _ := mw.CreateFormFile("logo", filename)
		fw.Write([]byte("\x89PNG fake"))
		mw.Close()
		return body, mw.FormDataContentType()
	}

	t.Run("success", func(t *testing.T) {
		r, svc := setupCompanyRouter(t, actor)
		svc.EXPECT().
			UpdateLogo(gomock.Any(), actor, "c-1", gomock.Any(), ".png").
			Return(company.CompanyResponse{ID: "c-1", LogoURL: "/uploads/company/x.png"}, nil)

		body, ct := newUpload("logo.PNG")
		req := httptest.NewRequest(http.MethodPut, "/companies/c-1/logo", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/uploads/company/x.png")
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		r, _ := setupCompanyRouter(t, actor)

		body, ct := newUpload("logo.exe")
		req := httptest.NewRequest(http.MethodPut, "/companies/c-1/logo", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
