package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_profiles_table", &CreateProfilesTable{})
	migration.Register("20260301000002_create_rooms_table", &CreateRoomsTable{})
	migration.Register("20260301000003_create_bookings_table", &CreateBookingsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: profiles --------

type CreateProfilesTable struct{}

func (m *CreateProfilesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Profile{})
}

func (m *CreateProfilesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("profiles")
}

// -------- 0003: rooms --------

type CreateRoomsTable struct{}

func (m *CreateRoomsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Room{})
}

func (m *CreateRoomsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("rooms")
}

// -------- 0004: bookings --------

type CreateBookingsTable struct{}

func (m *CreateBookingsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Booking{})
}

func (m *CreateBookingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("bookings")
}
