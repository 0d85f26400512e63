package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/volcano/internal/middleware"
	appErr "github.com/xxxsen/volcano/internal/pkg/errors"
	"github.com/xxxsen/volcano/internal/pkg/response"
)

// decodeBody reads a JSON object. Anything else yields an empty map so that
// callers report missing fields rather than a parse error.
func decodeBody(c *gin.Context) map[string]interface{} {
	body := map[string]interface{}{}
	if c.Request.Body == nil {
		return body
	}
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil || body == nil {
		return map[string]interface{}{}
	}
	return body
}

func stringField(body map[string]interface{}, key string) string {
	value, _ := body[key].(string)
	return value
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	status := statusOf(err)
	message, ok := appErr.MessageOf(err)
	if !ok || status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	requestID, _ := c.Get(middleware.ContextRequestIDKey)
	identity := middleware.IdentityFrom(c)
	fields := []zap.Field{
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("caller", identity.Email),
		zap.Int("status", status),
		zap.Error(err),
	}
	logger := logutil.GetLogger(c.Request.Context())
	if status == http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Debug("request rejected", fields...)
	}
	response.Error(c, status, message)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, appErr.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, appErr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, appErr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, appErr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, appErr.ErrTooMany):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
