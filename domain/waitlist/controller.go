package waitlist

import (
	"strings"
	"time"

	"github.com/launchlist/waitlist-api/config/router"
	"github.com/launchlist/waitlist-api/internal/log"
	apperrors "github.com/launchlist/waitlist-api/pkg/errors"
	"github.com/launchlist/waitlist-api/pkg/ratelimit"
	"gorm.io/gorm"
)

func NewWaitlistController(
	db *gorm.DB,
	logger *log.Logger,
	cache CountCache,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"WaitlistController",
		"api",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewWaitlistRepository(db)
			service := NewWaitlistService(logger, repository, cache)

			signupLimiter := createSignupRateLimiter(rs)

			rs.AddPostHandler(c, signupLimiter, "", registerHandler(service))
			rs.AddGetHandler(c, nil, "count", countHandler(service))
		},
	)
}

func createSignupRateLimiter(routerService *router.RouterService) ratelimit.RateLimiter {
	const signupRequestsPerMinute = 30 // Tighter than the router-wide default

	config := &ratelimit.RateLimitConfig{
		Requests: signupRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil, // For now, use in-memory (could be enhanced to use Redis)
		Logger:   nil, // Logger not needed for in-memory limiter
	}

	return ratelimit.NewRateLimiter(config)
}

func registerHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req RegisterRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		// Whitespace-only fields pass the required binding but are still
		// invalid; report them with the same field-level shape.
		if violations := blankFieldViolations(&req); len(violations) > 0 {
			logger.Error("Request contains blank required fields")
			return router.BadRequestResult("Invalid request payload", violations)
		}

		response, err := service.Register(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.CreatedResult("registration", response, "Successfully registered for the waitlist")
	}
}

func blankFieldViolations(req *RegisterRequest) []apperrors.ValidationErrorResponse {
	var violations []apperrors.ValidationErrorResponse

	if strings.TrimSpace(req.FirstName) == "" {
		violations = append(violations, apperrors.ValidationErrorResponse{Field: "firstName", Message: "This field is required"})
	}
	if strings.TrimSpace(req.LastName) == "" {
		violations = append(violations, apperrors.ValidationErrorResponse{Field: "lastName", Message: "This field is required"})
	}
	if strings.TrimSpace(req.Email) == "" {
		violations = append(violations, apperrors.ValidationErrorResponse{Field: "email", Message: "This field is required"})
	}

	return violations
}

func countHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		count, err := service.Count(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult("count", count, "")
	}
}
