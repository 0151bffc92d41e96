package activity

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("activity.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		e := autherrors.ErrTokenNotFound
		response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.service.List(c.Request.Context(), actor, limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("list activities failed", zap.Int("status", httpErr.Status), zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
