// Package services holds StayBook's business rules: pricing, bookings,
// the room inventory, profiles and login. Services depend on narrow store
// interfaces satisfied by app/repositories.
package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/app/repositories"
)

// Domain events fired on the bus.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventRoomCreated      = "room.created"
	EventRoomDeleted      = "room.deleted"
)

var (
	// ErrForbidden means the caller does not own the resource.
	ErrForbidden = errors.New("not allowed")

	// ErrInvalidImage means an upload is missing or not an image.
	ErrInvalidImage = errors.New("image must be a PNG, JPEG, GIF or WebP file")

	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ErrNotFound is re-exported so controllers only check services errors.
var ErrNotFound = repositories.ErrNotFound

type RoomStore interface {
	List(ctx context.Context, f repositories.RoomFilter) ([]models.Room, error)
	Featured(ctx context.Context) ([]models.Room, error)
	Find(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

type BookingStore interface {
	Create(ctx context.Context, b *models.Booking) error
	Find(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
}

type ProfileStore interface {
	Find(ctx context.Context, id string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
}
