package waitlist

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/launchlist/waitlist-api/internal/log"
	"github.com/launchlist/waitlist-api/pkg/circuitbreaker"
	apperrors "github.com/launchlist/waitlist-api/pkg/errors"
)

const (
	countCacheKey = "waitlist:count"
	countCacheTTL = 10 * time.Second
)

// CountCache is the subset of the application cache the service uses to keep
// the public signup counter cheap. A nil cache disables caching entirely.
type CountCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type WaitlistService interface {
	// Register validates and persists a new signup. A previously registered
	// email yields a conflict error whether it is caught by the pre-insert
	// lookup or by the database uniqueness constraint.
	Register(ctx context.Context, req *RegisterRequest) (*RegistrationResponse, error)

	// Count returns the total number of signups, 0 when there are none.
	Count(ctx context.Context) (int64, error)
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	cache      CountCache
	breaker    circuitbreaker.CircuitBreaker
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, cache CountCache) WaitlistService {
	return &waitlistService{
		logger:     logger,
		repository: repository,
		cache:      cache,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
	}
}

func (s *waitlistService) Register(ctx context.Context, req *RegisterRequest) (*RegistrationResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Register received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		logger.Error("Register received blank required fields")
		return nil, apperrors.NewInvalidRequestError("firstName, lastName and email are required", nil)
	}

	// Pre-insert lookup gives the friendly conflict answer in the common
	// case. Correctness under concurrent submissions of the same email
	// still rests on the uniqueness constraint checked at insert time.
	existing, err := s.repository.FindByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("Failed to check for existing registration", "error", err)
		return nil, err
	}
	if existing != nil {
		logger.Info("Duplicate signup attempt", "email", req.Email)
		return nil, apperrors.NewConflictError(DuplicateEmailMessage, nil)
	}

	reg, err := s.repository.Create(ctx, ToRegistrationModel(req))
	if err != nil {
		logger.Error("Failed to create registration", "error", err)
		return nil, err
	}

	s.invalidateCachedCount(ctx, logger)

	logger.Info("Waitlist registration created", "id", reg.ID)

	response := ToRegistrationResponse(reg)
	return &response, nil
}

func (s *waitlistService) Count(ctx context.Context) (int64, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if cached, ok := s.cachedCount(ctx); ok {
		return cached, nil
	}

	var count int64

	err := s.breaker.Call(func() error {
		var callErr error
		count, callErr = s.repository.Count(ctx)
		return callErr
	})
	if err != nil {
		if err == circuitbreaker.ErrCircuitOpen {
			logger.Warn("Count short-circuited; database calls are suspended")
			return 0, apperrors.NewDatabaseError("signup count is temporarily unavailable", err)
		}
		logger.Error("Failed to count registrations", "error", err)
		return 0, err
	}

	s.cacheCount(ctx, logger, count)

	return count, nil
}

func (s *waitlistService) cachedCount(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}

	raw, err := s.cache.Get(ctx, countCacheKey)
	if err != nil || raw == "" {
		return 0, false
	}

	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	return count, true
}

func (s *waitlistService) cacheCount(ctx context.Context, logger *log.Logger, count int64) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, countCacheKey, strconv.FormatInt(count, 10), countCacheTTL); err != nil {
		logger.Warn("Failed to cache signup count", "error", err)
	}
}

func (s *waitlistService) invalidateCachedCount(ctx context.Context, logger *log.Logger) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, countCacheKey); err != nil {
		logger.Warn("Failed to invalidate cached signup count", "error", err)
	}
}
