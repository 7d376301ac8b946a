package router

import (
	"net/http"

	"github.com/launchlist/waitlist-api/internal/log"
)

func GetLogger(ctx *RequestContext) *log.Logger {
	if logger := ctx.Request.Context().Value(log.LoggerKeyForContext); logger != nil {
		if l, ok := logger.(*log.Logger); ok {
			return l
		}
	}

	baseLogger := log.NewLoggerWithJSONOutput()
	return baseLogger.WithCorrelationID(ctx.Request.Context())
}

func OKResult(dataKey string, data any, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		DataKey:    dataKey,
		Data:       data,
		Message:    message,
	}
}

func CreatedResult(dataKey string, data any, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusCreated,
		DataKey:    dataKey,
		Data:       data,
		Message:    message,
	}
}

func TooManyRequestsResult(data RateLimitResponse) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusTooManyRequests,
		DataKey:    "rate_limit",
		Data:       data,
		Message:    "Too Many Requests",
	}
}

func BadRequestResult(message string, fieldErrors any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusBadRequest,
		DataKey:    "errors",
		Data:       fieldErrors,
		Message:    message,
	}
}

func NotFoundResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func InternalServerErrorResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
	}
}

func ConflictResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusConflict,
		Message:    message,
	}
}

func ErrorResult(statusCode int, message string, data any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	}
}
