package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/app/repositories"
	"github.com/shashiranjanraj/staybook/pkg/cache"
	"github.com/shashiranjanraj/staybook/pkg/event"
	"github.com/shashiranjanraj/staybook/pkg/logger"
	"github.com/shashiranjanraj/staybook/pkg/storage"
)

const (
	featuredKey = "rooms:featured"
	photoPrefix = "room-photos/"
	sniffBytes  = 3072
)

var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// NewRoom is the admin form for adding a room.
type NewRoom struct {
	Name          string
	Description   string
	PricePerNight models.Money
	Category      models.Category
	Capacity      int
	IsFeatured    bool
}

// Upload is an image file submitted with a form.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type RoomService struct {
	rooms       RoomStore
	disk        storage.Disk
	cache       *cache.Cache
	bus         *event.Bus
	featuredTTL time.Duration
}

func NewRoomService(rooms RoomStore, disk storage.Disk, c *cache.Cache, bus *event.Bus, featuredTTL time.Duration) *RoomService {
	return &RoomService{rooms: rooms, disk: disk, cache: c, bus: bus, featuredTTL: featuredTTL}
}

func (s *RoomService) List(ctx context.Context, f repositories.RoomFilter) ([]models.Room, error) {
	return s.rooms.List(ctx, f)
}

// Featured is served from the cache when Redis is available.
func (s *RoomService) Featured(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.cache.Remember(ctx, featuredKey, s.featuredTTL, &rooms, func() (any, error) {
		return s.rooms.Featured(ctx)
	})
	return rooms, err
}

func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	return s.rooms.Find(ctx, id)
}

// Add stores the photo under room-photos/<uuid>.<ext>, then creates the
// room pointing at its public URL. The photo is removed again if the room
// cannot be saved.
func (s *RoomService) Add(ctx context.Context, in NewRoom, img Upload) (*models.Room, error) {
	if in.PricePerNight <= 0 {
		return nil, ErrInvalidRate
	}
	if img.Body == nil {
		return nil, ErrInvalidImage
	}

	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(img.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("rooms: read image: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	contentType, _, _ := strings.Cut(mt.String(), ";")
	if n == 0 || !imageTypes[contentType] {
		return nil, ErrInvalidImage
	}

	key := photoPrefix + uuid.NewString() + mt.Extension()
	body := io.MultiReader(bytes.NewReader(head), img.Body)
	if err := s.disk.Put(ctx, key, body, img.Size, contentType); err != nil {
		return nil, fmt.Errorf("rooms: upload image: %w", err)
	}

	room := &models.Room{
		Name:          in.Name,
		Description:   in.Description,
		PricePerNight: in.PricePerNight,
		Category:      in.Category,
		Capacity:      in.Capacity,
		ImageURL:      s.disk.URL(key),
		ImageKey:      key,
		IsFeatured:    in.IsFeatured,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		s.removeImage(ctx, key)
		return nil, err
	}

	s.forgetFeatured(ctx)
	logger.WithCtx(ctx).Info("room added", "room_id", room.ID, "image", key)
	s.bus.Fire(EventRoomCreated, room)
	return room, nil
}

// Delete removes the room, its bookings and, best effort, its photo.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	room, err := s.rooms.Find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}

	if room.ImageKey != "" {
		s.removeImage(ctx, room.ImageKey)
	}
	s.forgetFeatured(ctx)
	logger.WithCtx(ctx).Info("room deleted", "room_id", id)
	s.bus.Fire(EventRoomDeleted, room)
	return nil
}

func (s *RoomService) removeImage(ctx context.Context, key string) {
	if err := s.disk.Delete(ctx, key); err != nil {
		logger.WithCtx(ctx).Warn("rooms: image cleanup failed", "key", key, "error", err)
	}
}

func (s *RoomService) forgetFeatured(ctx context.Context) {
	if err := s.cache.Forget(ctx, featuredKey); err != nil {
		logger.WithCtx(ctx).Warn("rooms: featured cache invalidation failed", "error", err)
	}
}
