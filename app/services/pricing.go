package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/shashiranjanraj/staybook/app/models"
)

var (
	// ErrInvalidDateRange means check-out is not strictly after check-in.
	// The quote is unavailable; it is never a zero or negative charge.
	ErrInvalidDateRange = errors.New("check-out must be after check-in")

	// ErrInvalidRate means the nightly rate is not positive, or the total
	// does not fit in Money.
	ErrInvalidRate = errors.New("nightly rate must be positive")

	// ErrInvalidDate means a stay date could not be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrStayTooLong means the stay exceeds MaxNights or its total does not
	// fit in Money.
	ErrStayTooLong = errors.New("stay is too long")
)

const day = 24 * time.Hour

// MaxNights caps a single booking.
const MaxNights = 365

// Stay is a priced stay.
type Stay struct {
	Nights      int          `json:"nights"`
	NightlyRate models.Money `json:"nightly_rate"`
	Total       models.Money `json:"total"`
}

// ComputeStay prices a stay: nights is the number of started 24h periods
// between check-in and check-out, total is nights × rate.
func ComputeStay(checkIn, checkOut time.Time, rate models.Money) (Stay, error) {
	if rate <= 0 {
		return Stay{}, ErrInvalidRate
	}
	if !checkOut.After(checkIn) {
		return Stay{}, ErrInvalidDateRange
	}
	// Sub saturates past ~292 years; anything that long is over the cap.
	if checkOut.After(checkIn.AddDate(0, 0, MaxNights+1)) {
		return Stay{}, fmt.Errorf("%w: more than %d nights", ErrStayTooLong, MaxNights)
	}

	span := checkOut.Sub(checkIn)
	nights := int64(span / day)
	if span%day != 0 {
		nights++
	}
	if nights <= 0 {
		return Stay{}, ErrInvalidDateRange
	}
	if nights > MaxNights {
		return Stay{}, fmt.Errorf("%w: %d nights", ErrStayTooLong, nights)
	}

	total, ok := rate.Mul(nights)
	if !ok || total <= 0 {
		return Stay{}, fmt.Errorf("%w: total overflows", ErrStayTooLong)
	}
	return Stay{Nights: int(nights), NightlyRate: rate, Total: total}, nil
}

// ParseStayDates reads check-in and check-out request values. Plain dates
// (2024-06-01) are midnight UTC; timestamps keep their zone.
func ParseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := parseDate("check_in", checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := parseDate("check_out", checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return in, out, nil
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, &DateError{Field: field, Value: raw}
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, &DateError{Field: field, Value: raw}
	}
	return t, nil
}

// DateError names the request field that failed to parse.
type DateError struct {
	Field string
	Value string
}

func (e *DateError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s is required", ErrInvalidDate, e.Field)
	}
	return fmt.Sprintf("%s: %s %q", ErrInvalidDate, e.Field, e.Value)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }
