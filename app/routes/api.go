// Package routes mounts StayBook's HTTP surface.
package routes

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/app/controllers"
	"github.com/shashiranjanraj/staybook/app/repositories"
	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/auth"
	"github.com/shashiranjanraj/staybook/pkg/cache"
	"github.com/shashiranjanraj/staybook/pkg/ctx"
	"github.com/shashiranjanraj/staybook/pkg/event"
	"github.com/shashiranjanraj/staybook/pkg/middleware"
	"github.com/shashiranjanraj/staybook/pkg/rbac"
	"github.com/shashiranjanraj/staybook/pkg/router"
	"github.com/shashiranjanraj/staybook/pkg/storage"
)

// StoragePrefix is where the local disk is served.
const StoragePrefix = "/storage"

// Deps are the shared resources the routes are built on.
type Deps struct {
	DB            *gorm.DB
	Cache         *cache.Cache
	Disk          storage.Disk
	Bus           *event.Bus
	Tokens        *auth.Tokens
	Dashboard     http.Handler // websocket feed; nil disables /admin/ws
	SecureCookie  bool
	FeaturedTTL   time.Duration
	LookupTimeout time.Duration
}

// RegisterAPI mounts every route onto r.
func RegisterAPI(r *router.Router, d Deps) {
	users := repositories.NewUserRepository(d.DB)
	profiles := repositories.NewProfileRepository(d.DB)
	roomStore := repositories.NewRoomRepository(d.DB)
	bookingStore := repositories.NewBookingRepository(d.DB)

	bookingSvc := services.NewBookingService(roomStore, bookingStore, d.Bus)
	roomSvc := services.NewRoomService(roomStore, d.Disk, d.Cache, d.Bus, d.FeaturedTTL)

	authCtl := controllers.NewAuthController(services.NewAuthService(users, profiles, d.Tokens), d.SecureCookie)
	roomCtl := controllers.NewRoomController(roomSvc, bookingSvc)
	bookingCtl := controllers.NewBookingController(bookingSvc)
	profileCtl := controllers.NewProfileController(services.NewProfileService(profiles))
	adminRoomCtl := controllers.NewAdminRoomController(roomSvc, r)

	identity := &auth.TokenIdentity{Tokens: d.Tokens, Users: users}

	api := r.Group("/api", middleware.Authenticate(identity))
	api.Post("/login", "auth.login", ctx.Wrap(authCtl.Login))
	api.Post("/logout", "auth.logout", ctx.Wrap(authCtl.Logout))
	api.Get("/rooms", "rooms.index", ctx.Wrap(roomCtl.Index))
	api.Get("/rooms/featured", "rooms.featured", ctx.Wrap(roomCtl.Featured))
	api.Get("/rooms/{id}", "rooms.show", ctx.Wrap(roomCtl.Show))
	api.Get("/rooms/{id}/quote", "rooms.quote", ctx.Wrap(roomCtl.Quote))

	member := api.Group("", middleware.RequireAuth)
	member.Get("/profile", "profile.show", ctx.Wrap(profileCtl.Show))
	member.Get("/bookings", "bookings.index", ctx.Wrap(bookingCtl.Index))
	member.Post("/bookings", "bookings.store", ctx.Wrap(bookingCtl.Store))
	member.Delete("/bookings/{id}", "bookings.destroy", ctx.Wrap(bookingCtl.Destroy))

	gate := rbac.Gate(&rbac.Resolver{Identity: identity, Roles: profiles, Timeout: d.LookupTimeout})
	admin := r.Group(rbac.AdminPrefix, gate)
	admin.Get("/rooms", "admin.rooms.index", ctx.Wrap(adminRoomCtl.Index))
	admin.Post("/rooms", "admin.rooms.store", ctx.Wrap(adminRoomCtl.Store))
	admin.Delete("/rooms/{id}", "admin.rooms.destroy", ctx.Wrap(adminRoomCtl.Destroy))
	if d.Dashboard != nil {
		admin.Get("/ws", "admin.dashboard", d.Dashboard.ServeHTTP)
	}

	if local, ok := d.Disk.(*storage.LocalDisk); ok {
		r.Mount(StoragePrefix, http.StripPrefix(StoragePrefix, local.Handler()))
	}
}
