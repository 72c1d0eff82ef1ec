package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/pkg/auth"
)

// User is the identity record. Email and password are the login
// credentials; FullName and AvatarURL are identity metadata.
type User struct {
	ID           string    `gorm:"primaryKey;size:36"                  json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"       json:"email"`
	PasswordHash string    `gorm:"size:255;not null"                   json:"-"`
	FullName     string    `gorm:"size:255"                            json:"full_name"`
	AvatarURL    string    `gorm:"size:1024"                           json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Identity converts the row into the auth package's view of a user.
func (u *User) Identity() *auth.User {
	return &auth.User{ID: u.ID, Email: u.Email, FullName: u.FullName, AvatarURL: u.AvatarURL}
}
