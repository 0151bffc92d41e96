package dashboard

import (
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

func (h *Handler) SuperAdmin(c *gin.Context) {
	resp, err := h.service.SuperAdmin(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Admin(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}
	resp, err := h.service.Admin(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) User(c *gin.Context) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		writeServiceError(c, autherrors.ErrTokenNotFound)
		return
	}
	resp, err := h.service.User(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
