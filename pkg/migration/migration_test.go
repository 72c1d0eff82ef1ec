package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/pkg/database"
)

type widget struct {
	ID   uint
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(tx *gorm.DB) error   { return tx.AutoMigrate(&widget{}) }
func (createWidgets) Down(tx *gorm.DB) error { return tx.Migrator().DropTable(&widget{}) }

type failing struct{}

func (failing) Up(*gorm.DB) error   { return errors.New("nope") }
func (failing) Down(*gorm.DB) error { return nil }

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func TestRunRollbackStatus(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	r := NewWith(db, []Named{{Name: "20260101000000_create_widgets", Migration: createWidgets{}}})

	applied, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101000000_create_widgets"}, applied)
	assert.True(t, db.Migrator().HasTable(&widget{}))

	applied, err = r.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)

	status, err := r.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.True(t, status[0].Ran)
	assert.Equal(t, 1, status[0].Batch)

	reverted, err := r.Rollback(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101000000_create_widgets"}, reverted)
	assert.False(t, db.Migrator().HasTable(&widget{}))

	reverted, err = r.Rollback(ctx)
	require.NoError(t, err)
	assert.Empty(t, reverted)
}

func TestRunStopsOnFailure(t *testing.T) {
	db := openDB(t)
	r := NewWith(db, []Named{
		{Name: "20260101000000_create_widgets", Migration: createWidgets{}},
		{Name: "20260101000001_broken", Migration: failing{}},
	})

	applied, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "20260101000001_broken")
	assert.Equal(t, []string{"20260101000000_create_widgets"}, applied)

	status, err := r.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status[0].Ran)
	assert.False(t, status[1].Ran)
}
