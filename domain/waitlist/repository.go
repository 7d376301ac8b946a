package waitlist

import (
	"context"
	"errors"

	"github.com/launchlist/waitlist-api/internal/models"
	apperrors "github.com/launchlist/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

// DuplicateEmailMessage is the human-facing conflict message returned both
// from the pre-insert lookup and from a unique-constraint violation at
// insert time.
const DuplicateEmailMessage = "This email is already registered for the waitlist"

type WaitlistRepository interface {
	// FindByEmail returns (nil, nil) when no registration exists for the
	// email. Absence is not an error.
	FindByEmail(ctx context.Context, email string) (*models.WaitlistRegistration, error)
	// Create persists a new registration. A unique-constraint violation on
	// email is mapped to a conflict error.
	Create(ctx context.Context, reg *models.WaitlistRegistration) (*models.WaitlistRegistration, error)
	// Count returns the total number of registrations, 0 for an empty table.
	Count(ctx context.Context) (int64, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) FindByEmail(ctx context.Context, email string) (*models.WaitlistRegistration, error) {
	var reg models.WaitlistRegistration

	err := wr.db.WithContext(ctx).Where("email = ?", email).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("unable to look up registration by email", err)
	}

	return &reg, nil
}

func (wr *waitlistRepository) Create(ctx context.Context, reg *models.WaitlistRegistration) (*models.WaitlistRegistration, error) {
	if err := wr.db.WithContext(ctx).Create(reg).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.NewConflictError(DuplicateEmailMessage, err)
		}
		return nil, apperrors.NewDatabaseError("unable to create registration", err)
	}

	return reg, nil
}

func (wr *waitlistRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := wr.db.WithContext(ctx).Model(&models.WaitlistRegistration{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count registrations", err)
	}

	return count, nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
