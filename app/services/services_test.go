package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/app/repositories"
	"github.com/shashiranjanraj/staybook/pkg/event"
	"github.com/shashiranjanraj/staybook/pkg/testkit"
)

type stores struct {
	db       *gorm.DB
	rooms    *repositories.RoomRepository
	bookings *repositories.BookingRepository
	users    *repositories.UserRepository
	profiles *repositories.ProfileRepository
	bus      *event.Bus
	fired    *[]string
}

func newStores(t *testing.T) stores {
	t.Helper()
	db := testkit.DB(t)

	fired := []string{}
	bus := event.New()
	bus.Listen("*", func(e event.Event) { fired = append(fired, e.Name) })

	return stores{
		db:       db,
		rooms:    repositories.NewRoomRepository(db),
		bookings: repositories.NewBookingRepository(db),
		users:    repositories.NewUserRepository(db),
		profiles: repositories.NewProfileRepository(db),
		bus:      bus,
		fired:    &fired,
	}
}

func (s stores) room(t *testing.T, name string, rate models.Money, featured bool, created time.Time) *models.Room {
	t.Helper()
	r := &models.Room{
		Name:          name,
		PricePerNight: rate,
		Category:      models.CategorySuite,
		Capacity:      2,
		IsFeatured:    featured,
		CreatedAt:     created,
	}
	require.NoError(t, s.rooms.Create(context.Background(), r))
	return r
}
