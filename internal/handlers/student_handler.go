package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
)

type studentStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.Student, error)
	UpsertByExternalID(ctx context.Context, externalID, name, email string) (*models.Student, bool, error)
}

type studentSessionLister interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.SessionSummary, error)
}

type StudentHandler struct {
	students studentStore
	sessions studentSessionLister
}

func NewStudentHandler(students studentStore, sessions studentSessionLister) *StudentHandler {
	return &StudentHandler{students: students, sessions: sessions}
}

// FetchMe creates the student record on first authenticated visit and
// reports whether it already existed.
func (h *StudentHandler) FetchMe(c *fiber.Ctx) error {
	identity, ok := identityFromLocals(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
	}
	if identity.Role != "student" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	student, created, err := h.students.UpsertByExternalID(c.Context(), identity.ExternalID, identity.Name, identity.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	status := "exists"
	if created {
		status = "created"
	}
	return c.JSON(fiber.Map{"status": status, "student": student})
}

func (h *StudentHandler) MySessions(c *fiber.Ctx) error {
	identity, ok := identityFromLocals(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
	}
	if identity.Role != "student" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	student, err := h.students.GetByExternalID(c.Context(), identity.ExternalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	sessions, err := h.sessions.ListByStudent(c.Context(), student.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}
