package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
	"github.com/praveensaharan/CareerCarve-Backend/internal/schedule"
)

var (
	ErrMentorNotFound  = errors.New("mentor not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrNoSuchRole      = errors.New("no mentor offers the requested role")
	ErrNoMatch         = errors.New("no mentor available on the requested date")
	ErrInvalidWindow   = errors.New("invalid availability window")
)

type mentorReader interface {
	GetByID(ctx context.Context, id int64) (*models.Mentor, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.Mentor, error)
}

type availabilityStore interface {
	ListByMentor(ctx context.Context, mentorID int64) ([]models.AvailabilityWindow, error)
	Create(ctx context.Context, window models.AvailabilityWindow) error
}

type AvailabilityService struct {
	mentorRepo       mentorReader
	availabilityRepo availabilityStore
}

func NewAvailabilityService(mentorRepo mentorReader, availabilityRepo availabilityStore) *AvailabilityService {
	return &AvailabilityService{mentorRepo: mentorRepo, availabilityRepo: availabilityRepo}
}

// Resolve returns the mentor's windows restricted to one calendar date.
// An empty result is a normal "unavailable" outcome, not an error.
func (s *AvailabilityService) Resolve(ctx context.Context, mentorID int64, date string) ([]models.AvailabilityWindow, error) {
	normalized, err := schedule.NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	matched := make([]models.AvailabilityWindow, 0, len(windows))
	for _, window := range windows {
		if window.Date == normalized {
			matched = append(matched, window)
		}
	}
	return matched, nil
}

// Windows returns every stored window for a mentor, ordered by date then
// start time.
func (s *AvailabilityService) Windows(ctx context.Context, mentorID int64) ([]models.AvailabilityWindow, error) {
	return s.availabilityRepo.ListByMentor(ctx, mentorID)
}

// SetAvailability appends one window per supplied date/start/end triple for
// the mentor behind the external identity. Each insert is an independent
// write; a failure mid-batch leaves prior windows committed.
func (s *AvailabilityService) SetAvailability(ctx context.Context, externalID string, windows []models.AvailabilityWindow) error {
	mentor, err := s.mentorRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMentorNotFound
		}
		return err
	}

	for _, window := range windows {
		normalized, err := schedule.NormalizeDate(window.Date)
		if err != nil {
			return ErrInvalidWindow
		}
		startMinutes, err := schedule.ClockMinutes(window.StartTime)
		if err != nil {
			return ErrInvalidWindow
		}
		endMinutes, err := schedule.ClockMinutes(window.EndTime)
		if err != nil {
			return ErrInvalidWindow
		}
		if endMinutes <= startMinutes {
			return ErrInvalidWindow
		}

		if err := s.availabilityRepo.Create(ctx, models.AvailabilityWindow{
			MentorID:  mentor.ID,
			Date:      normalized,
			StartTime: window.StartTime,
			EndTime:   window.EndTime,
		}); err != nil {
			return err
		}
	}
	return nil
}

// MentorWithAvailability returns the mentor profile plus windows, optionally
// restricted to one date. An empty date keeps every window.
func (s *AvailabilityService) MentorWithAvailability(ctx context.Context, mentorID int64, date string) (*models.MentorAvailability, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}

	var windows []models.AvailabilityWindow
	if strings.TrimSpace(date) == "" {
		windows, err = s.availabilityRepo.ListByMentor(ctx, mentorID)
	} else {
		windows, err = s.Resolve(ctx, mentorID, date)
	}
	if err != nil {
		return nil, err
	}

	return &models.MentorAvailability{
		Mentor:       *mentor,
		RoleList:     mentor.RoleSet(),
		Availability: windows,
	}, nil
}
