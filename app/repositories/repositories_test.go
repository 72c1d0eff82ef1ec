package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/app/repositories"
	"github.com/shashiranjanraj/staybook/pkg/rbac"
	"github.com/shashiranjanraj/staybook/pkg/testkit"
)

func TestRoomListFilters(t *testing.T) {
	rooms := repositories.NewRoomRepository(testkit.DB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []models.Room{
		{Name: "A", Category: models.CategoryStandard, Capacity: 1, PricePerNight: 100, CreatedAt: base},
		{Name: "B", Category: models.CategorySuite, Capacity: 4, PricePerNight: 200, IsFeatured: true, CreatedAt: base.Add(time.Hour)},
		{Name: "C", Category: models.CategorySuite, Capacity: 2, PricePerNight: 300, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, rooms.Create(ctx, &seed[i]))
	}

	names := func(rs []models.Room) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.Name
		}
		return out
	}

	all, err := rooms.List(ctx, repositories.RoomFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, names(all))

	suites, err := rooms.List(ctx, repositories.RoomFilter{Category: models.CategorySuite, MinCapacity: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(suites))

	featured, err := rooms.Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(featured))

	_, err = rooms.Find(ctx, "nope")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, rooms.Delete(ctx, "nope"), repositories.ErrNotFound)

	again := models.Room{Name: "A", Category: models.CategoryLuxury, PricePerNight: 1}
	require.NoError(t, rooms.FirstOrCreateByName(ctx, &again))
	assert.Equal(t, seed[0].ID, again.ID)
}

func TestBookingsListByUserPreloadsRoom(t *testing.T) {
	db := testkit.DB(t)
	rooms := repositories.NewRoomRepository(db)
	bookings := repositories.NewBookingRepository(db)
	ctx := context.Background()

	room := &models.Room{Name: "Loft", Category: models.CategoryLuxury, PricePerNight: 500}
	require.NoError(t, rooms.Create(ctx, room))

	in := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	b := &models.Booking{RoomID: room.ID, UserID: "u", CheckIn: in, CheckOut: in.AddDate(0, 0, 2), Nights: 2, TotalPrice: 1000}
	require.NoError(t, bookings.Create(ctx, b))
	assert.Equal(t, models.BookingConfirmed, b.Status)

	list, err := bookings.ListByUser(ctx, "u")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Room)
	assert.Equal(t, "Loft", list[0].Room.Name)

	empty, err := bookings.ListByUser(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, bookings.Delete(ctx, b.ID))
	assert.ErrorIs(t, bookings.Delete(ctx, b.ID), repositories.ErrNotFound)
}

func TestUsersAndProfiles(t *testing.T) {
	db := testkit.DB(t)
	users := repositories.NewUserRepository(db)
	profiles := repositories.NewProfileRepository(db)
	ctx := context.Background()

	u := &models.User{Email: "g@example.com", PasswordHash: "x", FullName: "G"}
	require.NoError(t, users.Save(ctx, u))

	found, err := users.FindUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "g@example.com", found.Email)

	missing, err := users.FindUser(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)

	role, err := profiles.RoleOf(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleGuest, role, "no profile means guest")

	require.NoError(t, profiles.Upsert(ctx, &models.Profile{ID: u.ID, Role: rbac.RoleAdmin}))
	role, err = profiles.RoleOf(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleAdmin, role)
}
