package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
	"github.com/praveensaharan/CareerCarve-Backend/internal/schedule"
	"github.com/praveensaharan/CareerCarve-Backend/internal/services"
)

type mentorDirectory interface {
	ListAll(ctx context.Context) ([]models.Mentor, error)
}

type mentorProfileStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.Mentor, error)
	UpsertByExternalID(ctx context.Context, externalID, name, email string) (*models.Mentor, error)
	UpdateProfile(ctx context.Context, externalID, name, roles string) (*models.Mentor, error)
}

type availabilityManager interface {
	Windows(ctx context.Context, mentorID int64) ([]models.AvailabilityWindow, error)
	SetAvailability(ctx context.Context, externalID string, windows []models.AvailabilityWindow) error
	MentorWithAvailability(ctx context.Context, mentorID int64, date string) (*models.MentorAvailability, error)
}

type mentorSessionLister interface {
	ListByMentor(ctx context.Context, mentorID int64) ([]models.SessionSummary, error)
}

type MentorHandler struct {
	directory    mentorDirectory
	profiles     mentorProfileStore
	availability availabilityManager
	sessions     mentorSessionLister

	// onProfileChange drops any cached directory listing; nil when no
	// cache is configured.
	onProfileChange func(ctx context.Context)
}

func NewMentorHandler(
	directory mentorDirectory,
	profiles mentorProfileStore,
	availability availabilityManager,
	sessions mentorSessionLister,
	onProfileChange func(ctx context.Context),
) *MentorHandler {
	return &MentorHandler{
		directory:       directory,
		profiles:        profiles,
		availability:    availability,
		sessions:        sessions,
		onProfileChange: onProfileChange,
	}
}

// ListMentors is the public directory: every mentor with their parsed role
// list and full availability.
func (h *MentorHandler) ListMentors(c *fiber.Ctx) error {
	mentors, err := h.directory.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list mentors"})
	}

	listing := make([]models.MentorAvailability, 0, len(mentors))
	for _, mentor := range mentors {
		windows, err := h.availability.Windows(c.Context(), mentor.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list mentors"})
		}
		listing = append(listing, models.MentorAvailability{
			Mentor:       mentor,
			RoleList:     mentor.RoleSet(),
			Availability: windows,
		})
	}

	return c.JSON(fiber.Map{"mentors": listing})
}

func (h *MentorHandler) GetMentor(c *fiber.Ctx) error {
	mentorID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || mentorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	date := strings.TrimSpace(c.Query("date"))
	mentor, err := h.availability.MentorWithAvailability(c.Context(), mentorID, date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMentorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
		case errors.Is(err, schedule.ErrInvalidDate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mentor"})
		}
	}

	return c.JSON(fiber.Map{"mentor": mentor})
}

// FetchMe upserts the mentor record for the authenticated identity on first
// login and returns it; an existing record comes back unchanged.
func (h *MentorHandler) FetchMe(c *fiber.Ctx) error {
	identity, ok := identityFromLocals(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
	}
	if identity.Role != "mentor" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	mentor, err := h.profiles.UpsertByExternalID(c.Context(), identity.ExternalID, identity.Name, identity.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mentor"})
	}
	if h.onProfileChange != nil {
		h.onProfileChange(c.Context())
	}

	return c.JSON(fiber.Map{"mentor": mentor})
}

type updateMentorRequest struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

func (h *MentorHandler) UpdateMe(c *fiber.Ctx) error {
	identity, ok := identityFromLocals(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
	}
	if identity.Role != "mentor" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req updateMentorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	roles := make([]string, 0, len(req.Roles))
	for _, role := range req.Roles {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}
	if req.Name == "" || len(roles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and roles are required"})
	}

	mentor, err := h.profiles.UpdateProfile(c.Context(), identity.ExternalID, req.Name, strings.Join(roles, ", "))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update mentor"})
	}
	if h.onProfileChange != nil {
		h.onProfileChange(c.Context())
	}

	return c.JSON(fiber.Map{"mentor": mentor})
}

type setAvailabilityRequest struct {
	Dates []models.AvailabilityWindow `json:"dates"`
}

func (h *MentorHandler) SetAvailability(c *fiber.Ctx) error {
	identity, ok := identityFromLocals(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
	}
	if identity.Role != "mentor" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req setAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Dates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Dates are required"})
	}

	if err := h.availability.SetAvailability(c.Context(), identity.ExternalID, req.Dates); err != nil {
		switch {
		case errors.Is(err, services.ErrMentorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
		case errors.Is(err, services.ErrInvalidWindow):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Each window needs a valid date, start and end time"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update availability"})
		}
	}

	return c.JSON(fiber.Map{"message": "Availability updated successfully"})
}

func (h *MentorHandler) MySessions(c *fiber.Ctx) error {
	identity, ok := identityFromLocals(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
	}
	if identity.Role != "mentor" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	mentor, err := h.profiles.GetByExternalID(c.Context(), identity.ExternalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	sessions, err := h.sessions.ListByMentor(c.Context(), mentor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}
