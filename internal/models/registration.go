package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WaitlistRegistration is a single landing-page signup, keyed uniquely by email.
// Rows are immutable after insert; there is no update or delete path.
type WaitlistRegistration struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (r *WaitlistRegistration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
