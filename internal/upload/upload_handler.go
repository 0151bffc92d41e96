package upload

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go-hrpay/internal/shared/apperror"
	"go-hrpay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const maxCallbackBody = 64 << 10

// LogoSetter is satisfied by company.Service.
type LogoSetter interface {
	SetLogoURL(ctx context.Context, companyID, url string) error
}

// PhotoSetter is satisfied by employee.Service.
type PhotoSetter interface {
	SetPhotoURL(ctx context.Context, id, url string) error
}

type Handler struct {
	secret    []byte
	companies LogoSetter
	employees PhotoSetter
	logger    *zap.Logger
}

func NewHandler(secret string, companies LogoSetter, employees PhotoSetter, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("upload.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("upload.handler")
	}
	return &Handler{
		secret:    []byte(secret),
		companies: companies,
		employees: employees,
		logger:    l,
	}
}

func (h *Handler) Callback(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCallbackBody+1))
	if err != nil || len(body) > maxCallbackBody {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid callback body", nil)
		return
	}

	if !Verify(h.secret, body, c.GetHeader(SignatureHeader)) {
		h.logger.Warn("upload callback signature rejected", zap.String("client_ip", c.ClientIP()))
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "invalid signature", nil)
		return
	}

	var req CallbackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	ctx := c.Request.Context()
	switch req.Target {
	case TargetCompanyLogo:
		err = h.companies.SetLogoURL(ctx, req.ID, req.URL)
	case TargetEmployeePhoto:
		err = h.employees.SetPhotoURL(ctx, req.ID, req.URL)
	}
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("upload callback apply failed",
			zap.String("target", req.Target),
			zap.String("id", req.ID),
			zap.Error(err),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	h.logger.Info("upload callback applied", zap.String("target", req.Target), zap.String("id", req.ID))
	response.SuccessWithMessage(c, http.StatusOK, "Upload recorded", gin.H{"target": req.Target, "id": req.ID, "url": req.URL})
}
