package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
	}{
		{"30 min", 30},
		{"45 min", 45},
		{"2 hour", 120},
		{"1 hr", 60},
		{"  90 min ", 90},
	}
	for _, tc := range cases {
		minutes, err := ParseDuration(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.minutes, minutes, tc.in)
	}
}

func TestParseDurationRejectsUnknownUnit(t *testing.T) {
	_, err := ParseDuration("30 sec")
	require.ErrorIs(t, err, ErrUnrecognizedDurationUnit)

	_, err = ParseDuration("30 minutes")
	require.ErrorIs(t, err, ErrUnrecognizedDurationUnit)
}

func TestParseDurationRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "min", "30", "x min", "-30 min", "0 min"} {
		_, err := ParseDuration(in)
		require.ErrorIs(t, err, ErrInvalidDuration, in)
	}
}

func TestAdvanceStart(t *testing.T) {
	cases := []struct {
		start    string
		duration string
		want     string
	}{
		{"22:03", "30 min", "22:33"},
		{"23:45", "30 min", "00:15"},
		{"09:00", "2 hour", "11:00"},
		{"09:00", "1 hr", "10:00"},
		{"09:30", "45 min", "10:15"},
	}
	for _, tc := range cases {
		got, err := AdvanceStart(tc.start, tc.duration)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%s + %s", tc.start, tc.duration)
	}
}

func TestAdvanceStartRejectsBadInput(t *testing.T) {
	_, err := AdvanceStart("25:00", "30 min")
	require.ErrorIs(t, err, ErrInvalidClockTime)

	_, err = AdvanceStart("09:00", "30 sec")
	require.ErrorIs(t, err, ErrUnrecognizedDurationUnit)
}

func TestClockMinutes(t *testing.T) {
	minutes, err := ClockMinutes("09:30")
	require.NoError(t, err)
	require.Equal(t, 570, minutes)

	_, err = ClockMinutes("9h30")
	require.ErrorIs(t, err, ErrInvalidClockTime)
}

func TestNormalizeDate(t *testing.T) {
	normalized, err := NormalizeDate(" 2024-08-24 ")
	require.NoError(t, err)
	require.Equal(t, "2024-08-24", normalized)

	_, err = NormalizeDate("24-08-2024")
	require.True(t, errors.Is(err, ErrInvalidDate))
}

func TestCombine(t *testing.T) {
	at, err := Combine("2024-08-24", "09:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 8, 24, 9, 0, 0, 0, time.UTC), at)

	_, err = Combine("2024-08-24", "9am")
	require.ErrorIs(t, err, ErrInvalidClockTime)
}
