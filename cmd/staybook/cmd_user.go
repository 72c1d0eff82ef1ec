package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/staybook/app/repositories"
	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/database"
	"github.com/shashiranjanraj/staybook/pkg/rbac"
)

var userCreateFlags struct {
	email    string
	password string
	name     string
	admin    bool
}

// staybook user:create
var userCreateCmd = &cobra.Command{
	Use:   "user:create",
	Short: "Create a user, or reset an existing one's password and role",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck

		role := rbac.RoleGuest
		if userCreateFlags.admin {
			role = rbac.RoleAdmin
		}

		svc := services.NewAuthService(repositories.NewUserRepository(db), repositories.NewProfileRepository(db), nil)
		u, err := svc.CreateUser(cmd.Context(), services.NewUser{
			Email:    userCreateFlags.email,
			Password: userCreateFlags.password,
			FullName: userCreateFlags.name,
			Role:     role,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "User %s (%s) saved as %s.\n", u.Email, u.ID, role)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userCreateFlags.email, "email", "", "login email")
	f.StringVar(&userCreateFlags.password, "password", "", "login password")
	f.StringVar(&userCreateFlags.name, "name", "", "display name")
	f.BoolVar(&userCreateFlags.admin, "admin", false, "grant the admin role")
	userCreateCmd.MarkFlagRequired("email")    //nolint:errcheck
	userCreateCmd.MarkFlagRequired("password") //nolint:errcheck
}
