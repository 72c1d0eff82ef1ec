package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus is the lifecycle state of a booking. Only confirmed exists.
type BookingStatus string

const BookingConfirmed BookingStatus = "confirmed"

// Booking is a guest's reservation. TotalPrice is a snapshot of
// Nights × the room's nightly rate at creation time and is never
// recomputed.
type Booking struct {
	ID         string        `gorm:"primaryKey;size:36"                 json:"id"`
	RoomID     string        `gorm:"size:36;not null;index"             json:"room_id"`
	UserID     string        `gorm:"size:36;not null;index"             json:"user_id"`
	CheckIn    time.Time     `gorm:"not null"                           json:"check_in"`
	CheckOut   time.Time     `gorm:"not null"                           json:"check_out"`
	Nights     int           `gorm:"not null"                           json:"nights"`
	TotalPrice Money         `gorm:"not null"                           json:"total_price"`
	Status     BookingStatus `gorm:"size:20;not null;default:confirmed" json:"status"`
	CreatedAt  time.Time     `gorm:"index"                              json:"created_at"`

	Room *Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BookingConfirmed
	}
	return nil
}
