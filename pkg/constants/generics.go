package constants

import "time"

const (
	// DefaultRateLimitRequests is the default number of requests allowed per window
	DefaultRateLimitRequests = 100
	// DefaultRateLimitWindowMinutes is the default rate limit window in minutes
	DefaultRateLimitWindowMinutes = 1
)

// DefaultRateLimitWindow returns the default rate limit window duration
func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}
