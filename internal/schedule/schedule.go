package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClockTime         = errors.New("invalid clock time")
	ErrInvalidDate              = errors.New("invalid date")
	ErrInvalidDuration          = errors.New("invalid duration")
	ErrUnrecognizedDurationUnit = errors.New("unrecognized duration unit")
)

// ParseDuration converts a "<integer> <unit>" duration token into minutes.
// Recognized units are "min", "hour" and "hr".
func ParseDuration(duration string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(duration))
	if len(fields) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, duration)
	}

	value, err := strconv.Atoi(fields[0])
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, duration)
	}

	switch fields[1] {
	case "min":
		return value, nil
	case "hour", "hr":
		return value * 60, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedDurationUnit, fields[1])
	}
}

// ParseClock splits a zero-padded HH:MM string into hours and minutes.
func ParseClock(clock string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, clock)
	}
	return hours, minutes, nil
}

// ClockMinutes returns the minute-of-day for an HH:MM string.
func ClockMinutes(clock string) (int, error) {
	hours, minutes, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}

// AdvanceStart adds a booked duration to an HH:MM start time, carrying
// minute overflow into hours and wrapping past midnight.
func AdvanceStart(start, duration string) (string, error) {
	hours, minutes, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	added, err := ParseDuration(duration)
	if err != nil {
		return "", err
	}

	minutes += added
	hours = (hours + minutes/60) % 24
	minutes %= 60

	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}

// NormalizeDate validates a calendar date and re-renders it as the
// canonical YYYY-MM-DD form all comparisons use.
func NormalizeDate(date string) (string, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return parsed.Format("2006-01-02"), nil
}

// Combine builds the session start instant from a canonical date and an
// HH:MM time of day. Wall-clock values are kept in UTC throughout.
func Combine(date, clock string) (time.Time, error) {
	normalized, err := NormalizeDate(date)
	if err != nil {
		return time.Time{}, err
	}
	if _, _, err := ParseClock(clock); err != nil {
		return time.Time{}, err
	}
	return time.Parse("2006-01-02 15:04", normalized+" "+clock)
}
