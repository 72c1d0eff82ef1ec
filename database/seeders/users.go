package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/app/repositories"
	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/config"
	"github.com/shashiranjanraj/staybook/pkg/rbac"
)

func init() {
	Register("users", seedUsers)
}

func seedUsers(ctx context.Context, db *gorm.DB) error {
	svc := services.NewAuthService(repositories.NewUserRepository(db), repositories.NewProfileRepository(db), nil)

	accounts := []services.NewUser{
		{
			Email:    config.Get("ADMIN_EMAIL", "admin@staybook.local"),
			Password: config.Get("ADMIN_PASSWORD", "admin-password"),
			FullName: "Front Desk",
			Role:     rbac.RoleAdmin,
		},
		{
			Email:    config.Get("GUEST_EMAIL", "guest@staybook.local"),
			Password: config.Get("GUEST_PASSWORD", "guest-password"),
			FullName: "Demo Guest",
			Role:     rbac.RoleGuest,
		},
	}
	for _, a := range accounts {
		if _, err := svc.CreateUser(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
