package users

import (
	"context"
	"strings"

	"github.com/launchlist/waitlist-api/internal/log"
	"github.com/launchlist/waitlist-api/internal/models"
	apperrors "github.com/launchlist/waitlist-api/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// UserService backs the users table. No HTTP controller is mounted for it;
// account features ride on the same schema when they land.
type UserService interface {
	// CreateUser hashes the password and persists a new user. Duplicate
	// usernames yield a conflict error.
	CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)

	// FindByUsername returns (nil, nil) when no user exists.
	FindByUsername(ctx context.Context, username string) (*UserResponse, error)

	// FindByID returns (nil, nil) when no user exists.
	FindByID(ctx context.Context, id string) (*UserResponse, error)
}

type userService struct {
	logger     *log.Logger
	repository UserRepository
}

func NewUserService(logger *log.Logger, repository UserRepository) UserService {
	return &userService{logger: logger, repository: repository}
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("CreateUser received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		logger.Error("CreateUser received blank required fields")
		return nil, apperrors.NewInvalidRequestError("username and password are required", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return nil, apperrors.NewInternalServerError("unable to create user", err)
	}

	user, err := s.repository.Create(ctx, &models.User{
		Username: username,
		Password: string(hash),
	})
	if err != nil {
		logger.Error("Failed to create user", "error", err)
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

func (s *userService) FindByUsername(ctx context.Context, username string) (*UserResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperrors.NewInvalidRequestError("username is required", nil)
	}

	user, err := s.repository.FindByUsername(ctx, username)
	if err != nil {
		logger.Error("Failed to find user", "username", username, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	response := ToUserResponse(user)
	return &response, nil
}

func (s *userService) FindByID(ctx context.Context, id string) (*UserResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewInvalidRequestError("invalid user ID", nil)
	}

	user, err := s.repository.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find user", "id", id, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	response := ToUserResponse(user)
	return &response, nil
}
