package services

import (
	"context"
	"sort"
	"strings"

	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
	"github.com/praveensaharan/CareerCarve-Backend/internal/schedule"
)

type mentorLister interface {
	ListAll(ctx context.Context) ([]models.Mentor, error)
}

type availabilityResolver interface {
	Resolve(ctx context.Context, mentorID int64, date string) ([]models.AvailabilityWindow, error)
}

type MatchingService struct {
	mentors      mentorLister
	availability availabilityResolver
}

func NewMatchingService(mentors mentorLister, availability availabilityResolver) *MatchingService {
	return &MatchingService{mentors: mentors, availability: availability}
}

type matchCandidate struct {
	mentor  models.Mentor
	windows []models.AvailabilityWindow
}

// FindMentor picks the mentor to book for a role on a date. Mentors are
// sieved by role (trimmed, case-sensitive exact match) and then by having at
// least one window on the date. A single survivor is selected outright.
// Multiple survivors are ranked: windows long enough to hold the duration
// win over ones that are not, then the start closest to the desired time,
// then the higher rating, then the lower id.
func (s *MatchingService) FindMentor(ctx context.Context, desiredTime, role, duration, date string) (int64, error) {
	role = strings.TrimSpace(role)

	mentors, err := s.mentors.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	offering := make([]models.Mentor, 0, len(mentors))
	for _, mentor := range mentors {
		if mentor.OffersRole(role) {
			offering = append(offering, mentor)
		}
	}
	if len(offering) == 0 {
		return 0, ErrNoSuchRole
	}

	candidates := make([]matchCandidate, 0, len(offering))
	for _, mentor := range offering {
		windows, err := s.availability.Resolve(ctx, mentor.ID, date)
		if err != nil {
			return 0, err
		}
		if len(windows) == 0 {
			continue
		}
		candidates = append(candidates, matchCandidate{mentor: mentor, windows: windows})
	}

	if len(candidates) == 0 {
		return 0, ErrNoMatch
	}
	if len(candidates) == 1 {
		return candidates[0].mentor.ID, nil
	}

	return s.rank(candidates, desiredTime, duration)
}

func (s *MatchingService) rank(candidates []matchCandidate, desiredTime, duration string) (int64, error) {
	desiredMinutes, err := schedule.ClockMinutes(desiredTime)
	if err != nil {
		return 0, err
	}
	durationMinutes, err := schedule.ParseDuration(duration)
	if err != nil {
		return 0, err
	}

	type scored struct {
		mentorID int64
		rating   float64
		fits     bool
		distance int
	}

	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		best := scored{mentorID: candidate.mentor.ID, rating: candidate.mentor.Rating}
		first := true
		for _, window := range candidate.windows {
			startMinutes, err := schedule.ClockMinutes(window.StartTime)
			if err != nil {
				return 0, err
			}
			endMinutes, err := schedule.ClockMinutes(window.EndTime)
			if err != nil {
				return 0, err
			}

			fits := endMinutes-startMinutes >= durationMinutes
			distance := startMinutes - desiredMinutes
			if distance < 0 {
				distance = -distance
			}

			better := first ||
				(fits && !best.fits) ||
				(fits == best.fits && distance < best.distance)
			if better {
				best.fits = fits
				best.distance = distance
			}
			first = false
		}
		ranked = append(ranked, best)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].fits != ranked[j].fits {
			return ranked[i].fits
		}
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		if ranked[i].rating != ranked[j].rating {
			return ranked[i].rating > ranked[j].rating
		}
		return ranked[i].mentorID < ranked[j].mentorID
	})

	return ranked[0].mentorID, nil
}
