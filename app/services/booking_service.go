package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/now"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/pkg/event"
	"github.com/shashiranjanraj/staybook/pkg/logger"
	"github.com/shashiranjanraj/staybook/pkg/metrics"
)

// BookingInput is what a guest submits at checkout. Any client-side total
// is ignored; the price is always computed here.
type BookingInput struct {
	RoomID   string `json:"room_id"   validate:"required"`
	CheckIn  string `json:"check_in"  validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
}

// Quote is a priced stay for a specific room.
type Quote struct {
	RoomID   string    `json:"room_id"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Stay
}

// BookingView is a booking as shown on the guest's profile.
type BookingView struct {
	models.Booking
	IsPast bool `json:"is_past"`
}

type BookingService struct {
	rooms    RoomStore
	bookings BookingStore
	bus      *event.Bus
	now      func() time.Time
}

func NewBookingService(rooms RoomStore, bookings BookingStore, bus *event.Bus) *BookingService {
	return &BookingService{rooms: rooms, bookings: bookings, bus: bus, now: time.Now}
}

// Quote prices a stay in roomID between the two request dates.
func (s *BookingService) Quote(ctx context.Context, roomID, checkIn, checkOut string) (*Quote, error) {
	in, out, err := ParseStayDates(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.Find(ctx, roomID)
	if err != nil {
		return nil, err
	}

	stay, err := ComputeStay(in, out, room.PricePerNight)
	metrics.Quotes.WithLabelValues(quoteResult(err)).Inc()
	if err != nil {
		return nil, err
	}
	return &Quote{RoomID: room.ID, CheckIn: in, CheckOut: out, Stay: stay}, nil
}

func quoteResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidDateRange):
		return "invalid_range"
	case errors.Is(err, ErrStayTooLong):
		return "too_long"
	case errors.Is(err, ErrInvalidRate):
		return "invalid_rate"
	}
	return "error"
}

// Create confirms a booking for userID with the price snapshotted from
// the room's current nightly rate.
func (s *BookingService) Create(ctx context.Context, userID string, in BookingInput) (*models.Booking, error) {
	q, err := s.Quote(ctx, in.RoomID, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		RoomID:     q.RoomID,
		UserID:     userID,
		CheckIn:    q.CheckIn,
		CheckOut:   q.CheckOut,
		Nights:     q.Nights,
		TotalPrice: q.Total,
		Status:     models.BookingConfirmed,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	logger.WithCtx(ctx).Info("booking created",
		"booking_id", b.ID, "room_id", b.RoomID, "user_id", userID,
		"nights", b.Nights, "total", b.TotalPrice.String())
	s.bus.Fire(EventBookingCreated, b)
	return b, nil
}

// Cancel deletes the booking if userID owns it.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) error {
	b, err := s.bookings.Find(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return fmt.Errorf("%w: booking %s belongs to another user", ErrForbidden, bookingID)
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}

	metrics.BookingsCancelled.Inc()
	logger.WithCtx(ctx).Info("booking cancelled", "booking_id", bookingID, "user_id", userID)
	s.bus.Fire(EventBookingCancelled, b)
	return nil
}

// ListMine returns userID's bookings, newest first, flagging stays whose
// check-out is before today (UTC).
func (s *BookingService) ListMine(ctx context.Context, userID string) ([]BookingView, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := now.With(s.now().UTC()).BeginningOfDay()
	views := make([]BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = BookingView{Booking: b, IsPast: b.CheckOut.Before(today)}
	}
	return views, nil
}
