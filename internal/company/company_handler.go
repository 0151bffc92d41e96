package company

import (
	"net/http"
	"path/filepath"
	"strings"

	autherrors "go-hrpay/internal/auth/errors"
	companyerrors "go-hrpay/internal/company/errors"
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/shared/apperror"
	"go-hrpay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxLogoSize = 2 << 20

var allowedLogoExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("company request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Company created", resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	items, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSettings(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	companyID := c.Param("id")
	if !actor.IsPlatformAdmin() && actor.CompanyID != companyID {
		h.writeServiceError(c, companyerrors.ErrCompanyNotFound)
		return
	}

	resp, err := h.service.GetSettings(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdateSettings(c.Request.Context(), actor, c.Param("id"), fields)
	if err != nil {
		h.logger.Warn("update settings rejected", zap.String("company_id", c.Param("id")), zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Company settings updated", resp)
}

func (h *Handler) UpdateLogo(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	fh, err := c.FormFile("logo")
	if err != nil || fh.Size > maxLogoSize {
		h.writeServiceError(c, companyerrors.ErrInvalidLogo)
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedLogoExt[ext] {
		h.writeServiceError(c, companyerrors.ErrInvalidLogo)
		return
	}

	file, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.service.UpdateLogo(c.Request.Context(), actor, c.Param("id"), file, ext)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Company logo updated", resp)
}
