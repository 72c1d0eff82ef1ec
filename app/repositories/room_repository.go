package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/app/models"
)

// RoomFilter narrows List. Zero values do not filter.
type RoomFilter struct {
	Category    models.Category
	Featured    *bool
	MinCapacity int
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns rooms matching f, newest first.
func (r *RoomRepository) List(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	q := r.db.WithContext(ctx).Model(&models.Room{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if f.MinCapacity > 0 {
		q = q.Where("capacity >= ?", f.MinCapacity)
	}

	rooms := []models.Room{}
	if err := q.Order("created_at desc").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("rooms: list: %w", err)
	}
	return rooms, nil
}

// Featured returns featured rooms, newest first.
func (r *RoomRepository) Featured(ctx context.Context) ([]models.Room, error) {
	featured := true
	return r.List(ctx, RoomFilter{Featured: &featured})
}

func (r *RoomRepository) Find(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("rooms: create: %w", err)
	}
	return nil
}

// Delete removes the room and its bookings.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return fmt.Errorf("rooms: delete bookings: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Room{})
		if res.Error != nil {
			return fmt.Errorf("rooms: delete: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// FirstOrCreateByName is used by the seeders to stay idempotent.
func (r *RoomRepository) FirstOrCreateByName(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Where("name = ?", room.Name).FirstOrCreate(room).Error
}
