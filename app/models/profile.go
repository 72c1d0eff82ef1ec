package models

import (
	"time"

	"github.com/shashiranjanraj/staybook/pkg/rbac"
)

// Profile holds the application-side data for a user, keyed by the same id.
type Profile struct {
	ID        string    `gorm:"primaryKey;size:36"               json:"id"`
	Role      rbac.Role `gorm:"size:20;not null;default:guest"   json:"role"`
	FullName  string    `gorm:"size:255"                         json:"full_name"`
	AvatarURL string    `gorm:"size:1024"                        json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
