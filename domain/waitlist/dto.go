package waitlist

import (
	"github.com/launchlist/waitlist-api/internal/models"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required,min=1,max=255"`
	LastName  string `json:"lastName" binding:"required,min=1,max=255"`
	Email     string `json:"email" binding:"required,email,max=255"`
}

// RegistrationResponse deliberately omits CreatedAt: the signup form only
// echoes back what the caller submitted plus the generated ID.
type RegistrationResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ========================================
// Mappers
// ========================================

func ToRegistrationModel(req *RegisterRequest) *models.WaitlistRegistration {
	if req == nil {
		return nil
	}
	return &models.WaitlistRegistration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
}

func ToRegistrationResponse(reg *models.WaitlistRegistration) RegistrationResponse {
	if reg == nil {
		return RegistrationResponse{}
	}
	return RegistrationResponse{
		ID:        reg.ID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
	}
}
