package waitlist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/launchlist/waitlist-api/internal/log"
	"github.com/launchlist/waitlist-api/internal/models"
	apperrors "github.com/launchlist/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeCountCache struct {
	mu      sync.Mutex
	entries map[string]string
	sets    int
	deletes int
}

func newFakeCountCache() *fakeCountCache {
	return &fakeCountCache{entries: make(map[string]string)}
}

func (f *fakeCountCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[key], nil
}

func (f *fakeCountCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	f.sets++
	return nil
}

func (f *fakeCountCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	f.deletes++
	return nil
}

func TestWaitlistService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo, nil)

	t.Run("successful registration", func(t *testing.T) {
		req := &RegisterRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		}

		created := &models.WaitlistRegistration{
			ID:        "3f5c0a6e-8f1a-4a9a-9a2f-7d1f9a2b3c4d",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "ada@example.com").
			Return(nil, nil)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(created, nil)

		result, err := service.Register(context.Background(), req)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, created.ID, result.ID)
		assert.Equal(t, "Ada", result.FirstName)
		assert.Equal(t, "Lovelace", result.LastName)
		assert.Equal(t, "ada@example.com", result.Email)
	})

	t.Run("email is normalized before lookup and insert", func(t *testing.T) {
		req := &RegisterRequest{
			FirstName: "  Ada  ",
			LastName:  "Lovelace",
			Email:     "  Ada@Example.COM ",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "ada@example.com").
			Return(nil, nil)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, reg *models.WaitlistRegistration) (*models.WaitlistRegistration, error) {
				assert.Equal(t, "ada@example.com", reg.Email)
				assert.Equal(t, "Ada", reg.FirstName)
				reg.ID = "generated-id"
				return reg, nil
			})

		result, err := service.Register(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "ada@example.com", result.Email)
	})

	t.Run("duplicate caught by lookup", func(t *testing.T) {
		req := &RegisterRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "ada@example.com").
			Return(&models.WaitlistRegistration{ID: "existing", Email: "ada@example.com"}, nil)

		result, err := service.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
		assert.Equal(t, DuplicateEmailMessage, apperrors.GetHumanReadableMessage(err))
	})

	t.Run("duplicate caught by uniqueness constraint at insert", func(t *testing.T) {
		req := &RegisterRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "ada@example.com").
			Return(nil, nil)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewConflictError(DuplicateEmailMessage, nil))

		result, err := service.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})

	t.Run("blank fields rejected before any store access", func(t *testing.T) {
		req := &RegisterRequest{
			FirstName: "   ",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		}

		result, err := service.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})

	t.Run("repository error surfaces unchanged", func(t *testing.T) {
		req := &RegisterRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "ada@example.com").
			Return(nil, apperrors.NewDatabaseError("database error", nil))

		result, err := service.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
	})
}

func TestWaitlistService_Register_InvalidatesCachedCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	cache := newFakeCountCache()
	cache.entries[countCacheKey] = "41"

	service := NewWaitlistService(log.NewLoggerWithJSONOutput(), mockRepo, cache)

	mockRepo.EXPECT().
		FindByEmail(gomock.Any(), "ada@example.com").
		Return(nil, nil)

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, reg *models.WaitlistRegistration) (*models.WaitlistRegistration, error) {
			reg.ID = "generated-id"
			return reg, nil
		})

	_, err := service.Register(context.Background(), &RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, cache.deletes)
	assert.Empty(t, cache.entries[countCacheKey])
}

func TestWaitlistService_Count(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()

	t.Run("returns store count", func(t *testing.T) {
		service := NewWaitlistService(logger, mockRepo, nil)

		mockRepo.EXPECT().
			Count(gomock.Any()).
			Return(int64(7), nil)

		count, err := service.Count(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("empty store counts as zero", func(t *testing.T) {
		service := NewWaitlistService(logger, mockRepo, nil)

		mockRepo.EXPECT().
			Count(gomock.Any()).
			Return(int64(0), nil)

		count, err := service.Count(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("store error surfaces unchanged", func(t *testing.T) {
		service := NewWaitlistService(logger, mockRepo, nil)

		mockRepo.EXPECT().
			Count(gomock.Any()).
			Return(int64(0), apperrors.NewDatabaseError("database error", nil))

		count, err := service.Count(context.Background())

		assert.Error(t, err)
		assert.Equal(t, int64(0), count)
		assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		cache := newFakeCountCache()
		cache.entries[countCacheKey] = "42"

		service := NewWaitlistService(logger, mockRepo, cache)

		count, err := service.Count(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(42), count)
	})

	t.Run("cache miss falls through and repopulates", func(t *testing.T) {
		cache := newFakeCountCache()

		service := NewWaitlistService(logger, mockRepo, cache)

		mockRepo.EXPECT().
			Count(gomock.Any()).
			Return(int64(12), nil)

		count, err := service.Count(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.Equal(t, "12", cache.entries[countCacheKey])
	})
}
