package leave

import (
	"net/http"
	"strings"

	autherrors "go-hrpay/internal/auth/errors"
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/shared/apperror"
	"go-hrpay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}
	h.logger.Debug("http create leave", zap.String("company_id", actor.CompanyID), zap.String("actor_id", actor.UserID))

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Leave requested", resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	filter := ListFilter{
		EmployeeID: c.Query("employee_id"),
		Status:     strings.ToUpper(c.Query("status")),
	}
	resp, err := h.service.GetAll(c.Request.Context(), actor, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	items, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
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

func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}
	id := c.Param("id")
	h.logger.Debug("http update leave status", zap.String("leave_id", id), zap.String("actor_id", actor.UserID))

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave status validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Leave status updated", resp)
}

func (h *Handler) CreatePolicy(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	var req CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave policy validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CreatePolicy(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Leave policy created", resp)
}

func (h *Handler) UpdatePolicy(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	var req UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave policy validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdatePolicy(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Leave policy updated", resp)
}

func (h *Handler) ListPolicies(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	resp, err := h.service.ListPolicies(c.Request.Context(), actor, c.Query("company_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
