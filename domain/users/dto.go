package users

import (
	"github.com/launchlist/waitlist-api/internal/models"
)

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=255"`
	// bcrypt truncates beyond 72 bytes, so cap the password there.
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func ToUserResponse(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}
