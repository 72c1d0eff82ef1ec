// Command staybook runs the StayBook hotel booking backend and its
// maintenance tasks.
//
//	staybook serve             # start the HTTP server
//	staybook migrate           # run pending migrations
//	staybook migrate:rollback
//	staybook migrate:status
//	staybook seed              # demo rooms plus admin and guest accounts
//	staybook route:list
//	staybook user:create --email a@b.c --password ... --admin
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/shashiranjanraj/staybook/database/migrations"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "staybook",
	Short:         "StayBook hotel booking backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(userCreateCmd)
}
