package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/staybook/app/listeners"
	"github.com/shashiranjanraj/staybook/app/routes"
	"github.com/shashiranjanraj/staybook/config"
	"github.com/shashiranjanraj/staybook/internal/kernel"
	"github.com/shashiranjanraj/staybook/internal/server"
	"github.com/shashiranjanraj/staybook/pkg/audit"
	"github.com/shashiranjanraj/staybook/pkg/logger"
	"github.com/shashiranjanraj/staybook/pkg/router"
	"github.com/shashiranjanraj/staybook/pkg/ws"
)

const defaultFeaturedTTL = 5 * time.Minute

// staybook serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		deps, cleanup, err := bootDeps(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		hub := ws.NewHub(nil)
		go hub.Run(ctx)
		listeners.Dashboard(deps.Bus, hub)
		deps.Dashboard = hub

		if uri := config.Get("MONGO_URI", ""); uri != "" {
			trail, err := audit.NewMongoWriter(ctx, audit.MongoConfig{
				URI:        uri,
				Database:   config.Get("MONGO_DATABASE", "staybook"),
				Collection: config.Get("MONGO_AUDIT_COLLECTION", "activity"),
			})
			if err != nil {
				logger.Warn("activity trail disabled", "error", err)
			} else {
				defer trail.Close()
				listeners.Audit(deps.Bus, trail)
			}
		}

		k := kernel.NewHTTPKernel(func(r *router.Router) { routes.RegisterAPI(r, deps) })
		return server.Run(ctx, ":"+config.AppPort(), k.Handler(),
			config.GetDuration("SHUTDOWN_TIMEOUT", server.DefaultShutdownTimeout))
	},
}

// staybook route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps := routes.Deps{Dashboard: ws.NewHub(nil)}
		k := kernel.NewHTTPKernel(func(r *router.Router) { routes.RegisterAPI(r, deps) })

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Router().Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

