package users

import (
	"context"
	"errors"

	"github.com/launchlist/waitlist-api/internal/models"
	apperrors "github.com/launchlist/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	// FindByUsername returns (nil, nil) when no user exists for the username.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// FindByID returns (nil, nil) when no user exists for the ID.
	FindByID(ctx context.Context, id string) (*models.User, error)
	// Create persists a new user. A unique-constraint violation on username
	// is mapped to a conflict error.
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	err := ur.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("unable to look up user by username", err)
	}

	return &user, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := ur.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("unable to fetch user", err)
	}

	return &user, nil
}

func (ur *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ur.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("a user with this username already exists", err)
		}
		return nil, apperrors.NewDatabaseError("unable to create user", err)
	}

	return user, nil
}
