package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the closed set of room tiers.
type Category string

const (
	CategoryStandard Category = "Standard"
	CategorySuite    Category = "Suite"
	CategoryLuxury   Category = "Luxury"
)

// Categories lists every valid Category in display order.
var Categories = []Category{CategoryStandard, CategorySuite, CategoryLuxury}

// ParseCategory validates s against Categories.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("models: unknown room category %q", s)
}

// Room is a bookable room in the inventory.
type Room struct {
	ID            string    `gorm:"primaryKey;size:36"        json:"id"`
	Name          string    `gorm:"size:255;not null"         json:"name"`
	Description   string    `gorm:"type:text"                 json:"description"`
	PricePerNight Money     `gorm:"not null"                  json:"price_per_night"`
	Category      Category  `gorm:"size:20;not null;index"    json:"category"`
	Capacity      int       `gorm:"not null;default:1"        json:"capacity"`
	ImageURL      string    `gorm:"size:1024"                 json:"image_url"`
	ImageKey      string    `gorm:"size:512"                  json:"-"`
	IsFeatured    bool      `gorm:"not null;default:false"    json:"is_featured"`
	CreatedAt     time.Time `gorm:"index"                     json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (r *Room) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
