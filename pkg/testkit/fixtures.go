// Package testkit provides the fixtures StayBook's tests share: a migrated
// in-memory database, a throwaway Redis, a temp-dir disk and helpers for
// driving handlers and decoding the JSON envelope.
package testkit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/staybook/database/migrations" // register schema
	"github.com/shashiranjanraj/staybook/pkg/database"
	"github.com/shashiranjanraj/staybook/pkg/migration"
	"github.com/shashiranjanraj/staybook/pkg/storage"
)

// DB opens a private in-memory SQLite database with every registered
// migration applied. It is closed when the test ends.
func DB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("testkit: open sqlite: %v", err)
	}
	t.Cleanup(func() { database.Close(db) }) //nolint:errcheck

	if _, err := migration.New(db).Run(context.Background()); err != nil {
		t.Fatalf("testkit: migrate: %v", err)
	}
	return db
}

// Redis starts a miniredis server and returns a client connected to it.
func Redis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() }) //nolint:errcheck
	return rdb, srv
}

// Disk returns a local disk rooted in a temp dir and served under /storage.
func Disk(t testing.TB) *storage.LocalDisk {
	t.Helper()
	return storage.NewLocalDisk(t.TempDir(), "/storage")
}
