package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User exists in the schema for future account features. No HTTP route is
// wired to it; the store and service layers keep CRUD parity with the
// registration entity.
type User struct {
	ID       string `gorm:"type:text;primaryKey" json:"id"`
	Username string `gorm:"not null;uniqueIndex" json:"username"`
	Password string `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
