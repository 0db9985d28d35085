package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/praveensaharan/CareerCarve-Backend/internal/middleware"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
	"github.com/praveensaharan/CareerCarve-Backend/internal/services"
)

type stubDirectory struct {
	mentors []models.Mentor
	err     error
}

func (s *stubDirectory) ListAll(ctx context.Context) ([]models.Mentor, error) {
	return s.mentors, s.err
}

type stubProfileStore struct {
	mentor *models.Mentor
}

func (s *stubProfileStore) GetByExternalID(ctx context.Context, externalID string) (*models.Mentor, error) {
	if s.mentor == nil {
		return nil, pgx.ErrNoRows
	}
	return s.mentor, nil
}

func (s *stubProfileStore) UpsertByExternalID(ctx context.Context, externalID, name, email string) (*models.Mentor, error) {
	if s.mentor != nil {
		return s.mentor, nil
	}
	return &models.Mentor{ID: 1, Name: name, Email: email}, nil
}

func (s *stubProfileStore) UpdateProfile(ctx context.Context, externalID, name, roles string) (*models.Mentor, error) {
	if s.mentor == nil {
		return nil, pgx.ErrNoRows
	}
	updated := *s.mentor
	updated.Name = name
	updated.Roles = roles
	return &updated, nil
}

type stubAvailabilityManager struct {
	windows map[int64][]models.AvailabilityWindow
	mentor  *models.MentorAvailability
	setErr  error

	lastSetExternalID string
	lastSetWindows    []models.AvailabilityWindow
}

func (s *stubAvailabilityManager) Windows(ctx context.Context, mentorID int64) ([]models.AvailabilityWindow, error) {
	return s.windows[mentorID], nil
}

func (s *stubAvailabilityManager) SetAvailability(ctx context.Context, externalID string, windows []models.AvailabilityWindow) error {
	s.lastSetExternalID = externalID
	s.lastSetWindows = windows
	return s.setErr
}

func (s *stubAvailabilityManager) MentorWithAvailability(ctx context.Context, mentorID int64, date string) (*models.MentorAvailability, error) {
	if s.mentor == nil {
		return nil, services.ErrMentorNotFound
	}
	return s.mentor, nil
}

type stubSessionLister struct {
	sessions []models.SessionSummary
}

func (s *stubSessionLister) ListByMentor(ctx context.Context, mentorID int64) ([]models.SessionSummary, error) {
	return s.sessions, nil
}

func newMentorApp(directory mentorDirectory, profiles mentorProfileStore, availability availabilityManager) *fiber.App {
	app := fiber.New()
	handler := NewMentorHandler(directory, profiles, availability, &stubSessionLister{}, nil)

	app.Get("/api/v1/mentors", handler.ListMentors)
	app.Get("/api/v1/mentors/:id", handler.GetMentor)
	authed := app.Group("/api/v1/me", middleware.AuthRequired(testSecret))
	authed.Post("/mentor/availability", handler.SetAvailability)
	return app
}

func TestListMentorsIncludesRolesAndWindows(t *testing.T) {
	directory := &stubDirectory{mentors: []models.Mentor{
		{ID: 1, Name: "Asha", Roles: "Consulting, Digital Marketing", Rating: 4.2},
	}}
	availability := &stubAvailabilityManager{windows: map[int64][]models.AvailabilityWindow{
		1: {{MentorID: 1, Date: "2024-08-24", StartTime: "09:00", EndTime: "12:00"}},
	}}
	app := newMentorApp(directory, &stubProfileStore{}, availability)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/mentors", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Mentors []models.MentorAvailability `json:"mentors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Mentors) != 1 {
		t.Fatalf("expected one mentor, got %d", len(body.Mentors))
	}
	listing := body.Mentors[0]
	if len(listing.RoleList) != 2 || listing.RoleList[1] != "Digital Marketing" {
		t.Fatalf("unexpected role list %v", listing.RoleList)
	}
	if len(listing.Availability) != 1 || listing.Availability[0].StartTime != "09:00" {
		t.Fatalf("unexpected availability %+v", listing.Availability)
	}
}

func TestGetMentorRejectsBadID(t *testing.T) {
	app := newMentorApp(&stubDirectory{}, &stubProfileStore{}, &stubAvailabilityManager{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/mentors/abc", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetMentorNotFound(t *testing.T) {
	app := newMentorApp(&stubDirectory{}, &stubProfileStore{}, &stubAvailabilityManager{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/mentors/99", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSetAvailabilityRejectsStudentRole(t *testing.T) {
	app := newMentorApp(&stubDirectory{}, &stubProfileStore{}, &stubAvailabilityManager{})

	body, _ := json.Marshal(map[string]any{
		"dates": []map[string]string{{"date": "2024-08-24", "startTime": "09:00", "endTime": "12:00"}},
	})
	req := httptest.NewRequest("POST", "/api/v1/me/mentor/availability", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "student"))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSetAvailabilityForwardsWindows(t *testing.T) {
	availability := &stubAvailabilityManager{}
	app := newMentorApp(&stubDirectory{}, &stubProfileStore{}, availability)

	body, _ := json.Marshal(map[string]any{
		"dates": []map[string]string{
			{"date": "2024-08-24", "startTime": "09:00", "endTime": "12:00"},
			{"date": "2024-08-25", "startTime": "14:00", "endTime": "16:00"},
		},
	})
	req := httptest.NewRequest("POST", "/api/v1/me/mentor/availability", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "mentor"))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if availability.lastSetExternalID != "user_123" {
		t.Fatalf("windows set for wrong identity %q", availability.lastSetExternalID)
	}
	if len(availability.lastSetWindows) != 2 || availability.lastSetWindows[1].EndTime != "16:00" {
		t.Fatalf("unexpected windows %+v", availability.lastSetWindows)
	}
}

func TestSetAvailabilityInvalidWindow(t *testing.T) {
	availability := &stubAvailabilityManager{setErr: services.ErrInvalidWindow}
	app := newMentorApp(&stubDirectory{}, &stubProfileStore{}, availability)

	body, _ := json.Marshal(map[string]any{
		"dates": []map[string]string{{"date": "2024-08-24", "startTime": "12:00", "endTime": "09:00"}},
	})
	req := httptest.NewRequest("POST", "/api/v1/me/mentor/availability", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "mentor"))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
