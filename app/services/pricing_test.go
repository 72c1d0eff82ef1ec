package services

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/staybook/app/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeStayScenario(t *testing.T) {
	stay, err := ComputeStay(date("2024-06-01"), date("2024-06-04"), 25000)
	require.NoError(t, err)
	assert.Equal(t, 3, stay.Nights)
	assert.Equal(t, models.Money(75000), stay.Total)
	assert.Equal(t, "750.00", stay.Total.String())
}

func TestComputeStayInvertedRange(t *testing.T) {
	_, err := ComputeStay(date("2024-06-04"), date("2024-06-01"), 25000)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ComputeStay(date("2024-06-04"), date("2024-06-04"), 25000)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestComputeStayPartialDaysRoundUp(t *testing.T) {
	in := date("2024-06-01").Add(14 * time.Hour)
	out := date("2024-06-03").Add(11 * time.Hour)

	stay, err := ComputeStay(in, out, 10000)
	require.NoError(t, err)
	assert.Equal(t, 2, stay.Nights)

	stay, err = ComputeStay(in, in.Add(time.Minute), 10000)
	require.NoError(t, err)
	assert.Equal(t, 1, stay.Nights)
}

func TestComputeStayRejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []models.Money{0, -100} {
		_, err := ComputeStay(date("2024-06-01"), date("2024-06-02"), rate)
		assert.ErrorIs(t, err, ErrInvalidRate)
	}
}

func TestComputeStayOverflow(t *testing.T) {
	_, err := ComputeStay(date("2024-06-01"), date("2024-06-03"), models.Money(1<<62))
	assert.ErrorIs(t, err, ErrStayTooLong)
}

func TestComputeStayCapsLength(t *testing.T) {
	in := date("2024-06-01")

	stay, err := ComputeStay(in, in.Add(MaxNights*day), 25000)
	require.NoError(t, err)
	assert.Equal(t, MaxNights, stay.Nights)

	_, err = ComputeStay(in, in.Add(MaxNights*day+time.Minute), 25000)
	assert.ErrorIs(t, err, ErrStayTooLong)

	for _, raw := range []string{"2400-01-01", "9999-12-31"} {
		checkIn, checkOut, err := ParseStayDates("2024-06-01", raw)
		require.NoError(t, err)

		stay, err := ComputeStay(checkIn, checkOut, 25000)
		assert.ErrorIs(t, err, ErrStayTooLong, "check_out %s", raw)
		assert.Zero(t, stay.Nights)
		assert.Zero(t, stay.Total)
	}

	_, err = ComputeStay(date("2400-01-01"), in, 25000)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestComputeStayProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := date("2024-01-01")

	for i := 0; i < 500; i++ {
		a := base.Add(time.Duration(rng.Int63n(int64(MaxNights * day))))
		b := base.Add(time.Duration(rng.Int63n(int64(MaxNights * day))))
		rate := models.Money(1 + rng.Int63n(1_000_000))

		stay, err := ComputeStay(a, b, rate)
		if !a.Before(b) {
			require.ErrorIs(t, err, ErrInvalidDateRange, "a=%s b=%s", a, b)
			continue
		}

		require.NoError(t, err)
		span := b.Sub(a)
		assert.Greater(t, stay.Nights, 0)
		assert.True(t, time.Duration(stay.Nights-1)*day < span && span <= time.Duration(stay.Nights)*day,
			"nights=%d span=%s", stay.Nights, span)
		assert.Equal(t, models.Money(int64(stay.Nights)*int64(rate)), stay.Total)
		assert.Positive(t, int64(stay.Total))
	}
}

func TestParseStayDates(t *testing.T) {
	in, out, err := ParseStayDates("2024-06-01", "2024-06-04T12:00:00Z")
	require.NoError(t, err)
	assert.True(t, date("2024-06-01").Equal(in), "check-in %s", in)
	assert.True(t, date("2024-06-04").Add(12*time.Hour).Equal(out), "check-out %s", out)

	_, _, err = ParseStayDates("", "2024-06-04")
	assert.ErrorIs(t, err, ErrInvalidDate)
	var de *DateError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "check_in", de.Field)

	_, _, err = ParseStayDates("2024-06-01", "next tuesday")
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "check_out", de.Field)
}
