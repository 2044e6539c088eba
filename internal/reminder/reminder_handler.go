package reminder

import (
	"net/http"

	"github.com/kingxjullien14/nkp-ems/internal/shared/apperror"
	"github.com/kingxjullien14/nkp-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("reminder.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reminder.handler")
	}
	return &Handler{service: service, logger: l}
}

// Scan lists documents approaching expiry, grouped per kind.
func (h *Handler) Scan(c *gin.Context) {
	resp, err := h.service.Scan(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("reminder request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
