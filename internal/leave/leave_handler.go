package leave

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kingxjullien14/nkp-ems/internal/shared/apperror"
	"github.com/kingxjullien14/nkp-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Submit files a leave request for the logged-in employee.
func (h *Handler) Submit(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	cacheKey := c.GetString("idempotency_cache_key")
	if h.rdb != nil && lockKey != "" {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	empCode := c.GetString("code")
	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), empCode, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil && cacheKey != "" {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			_ = h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour).Err()
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// Decide approves or rejects a pending leave request.
func (h *Handler) Decide(c *gin.Context) {
	adminCode := c.GetString("code")
	id := c.Param("id")
	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http decide leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), adminCode, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var (
		resp []LeaveResponse
		err  error
	)
	if c.Query("status") == StatusPending {
		resp, err = h.service.GetPending(c.Request.Context())
	} else {
		resp, err = h.service.GetAll(c.Request.Context())
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetMine lists the logged-in employee's own leave requests.
func (h *Handler) GetMine(c *gin.Context) {
	empCode := c.GetString("code")

	resp, err := h.service.GetByEmployee(c.Request.Context(), empCode)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
