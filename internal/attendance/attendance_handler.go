package attendance

import (
	"errors"
	"io"
	"net/http"

	autherrors "go-hrpay/internal/auth/errors"
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/shared/apperror"
	"go-hrpay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ClockIn(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	var req ClockInRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Checked in", resp)
}

func (h *Handler) ClockOut(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	var req ClockOutRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Checked out", resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	filter := ListFilter{
		EmployeeID: c.Query("employee_id"),
		From:       c.Query("from"),
		To:         c.Query("to"),
		Status:     c.Query("status"),
	}

	resp, err := h.service.GetAll(c.Request.Context(), actor, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) Evaluate(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}

	var req EvaluateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	result, err := h.service.Evaluate(c.Request.Context(), actor, req.CompanyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Attendance evaluated", result)
}

// bindOptionalJSON accepts an empty body as the zero request.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
