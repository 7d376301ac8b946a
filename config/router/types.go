package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is the wire envelope for every handler response. The body is
// a flat JSON object: "message" when Message is non-empty, plus the payload
// under DataKey when Data is set. A 201 from the signup handler therefore
// renders as {"message": ..., "registration": {...}} and the count handler
// as {"count": N}.
type ServiceResult struct {
	StatusCode int
	DataKey    string
	Data       any
	Message    string
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	body := gin.H{}

	if result.Message != "" {
		body["message"] = result.Message
	}

	if result.Data != nil {
		key := result.DataKey
		if key == "" {
			key = "data"
		}
		body[key] = result.Data
	}

	return body
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
