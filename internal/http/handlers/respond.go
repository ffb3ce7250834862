package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get("request_id")

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.AbortWithStatusJSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondConflict(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusConflict, code, message, nil)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, "unauthorized", message, nil)
}

func RespondUnsupportedMediaType(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnsupportedMediaType, "unsupported_media_type", message, nil)
}

func RespondTooManyRequests(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusTooManyRequests, "rate_limited", message, nil)
}

// RespondInternal logs err with the request id and answers 500 without leaking it.
func RespondInternal(ctx *gin.Context, message string, err error) {
	slog.Default().ErrorContext(ctx.Request.Context(), message,
		"err", err,
		"request_id", requestIDFrom(ctx),
		"route", ctx.FullPath(),
	)
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}
