package main

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/app/routes"
	"github.com/shashiranjanraj/staybook/config"
	"github.com/shashiranjanraj/staybook/pkg/auth"
	"github.com/shashiranjanraj/staybook/pkg/cache"
	"github.com/shashiranjanraj/staybook/pkg/database"
	"github.com/shashiranjanraj/staybook/pkg/event"
	"github.com/shashiranjanraj/staybook/pkg/logger"
	"github.com/shashiranjanraj/staybook/pkg/storage"
)

// bootDB loads config and opens the database connection.
func bootDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Connect()
}

// bootDeps opens every shared resource the routes need. The returned func
// releases them.
func bootDeps(ctx context.Context) (routes.Deps, func(), error) {
	db, err := bootDB()
	if err != nil {
		return routes.Deps{}, nil, err
	}

	rdb, err := cache.Connect(ctx)
	if err != nil {
		logger.Warn("cache disabled", "error", err)
	}

	disks, err := storage.NewManager(ctx)
	if err != nil {
		database.Close(db) //nolint:errcheck
		return routes.Deps{}, nil, err
	}

	deps := routes.Deps{
		DB:            db,
		Cache:         cache.New(rdb, config.Get("CACHE_PREFIX", "staybook:")),
		Disk:          disks.Default(),
		Bus:           event.New(),
		Tokens:        auth.NewTokens(config.JWTSecret(), config.TokenTTL()),
		SecureCookie:  config.IsProduction(),
		FeaturedTTL:   config.GetDuration("ROOMS_FEATURED_TTL", defaultFeaturedTTL),
		LookupTimeout: config.AuthLookupTimeout(),
	}

	cleanup := func() {
		if rdb != nil {
			rdb.Close() //nolint:errcheck
		}
		if err := database.Close(db); err != nil {
			logger.Warn("database close failed", "error", err)
		}
	}
	return deps, cleanup, nil
}
