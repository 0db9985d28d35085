package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
	"github.com/praveensaharan/CareerCarve-Backend/internal/schedule"
	"github.com/praveensaharan/CareerCarve-Backend/internal/services"
)

type bookingService interface {
	Checkout(ctx context.Context, studentExternalID string, input services.CheckoutInput) (*models.Payment, error)
	Finalize(ctx context.Context, paymentID string) (*services.FinalizeResult, error)
}

type BookingHandler struct {
	service bookingService
}

func NewBookingHandler(service bookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type checkoutRequest struct {
	Time     string `json:"time"`
	Role     string `json:"role"`
	Duration string `json:"duration"`
	Date     string `json:"date"`
}

// Checkout matches a mentor for the requested slot and opens an unpaid
// payment. The returned payment id is what the provider webhook confirms.
func (h *BookingHandler) Checkout(c *fiber.Ctx) error {
	identity, ok := identityFromLocals(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
	}
	if identity.Role != "student" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Time == "" || strings.TrimSpace(req.Role) == "" || req.Duration == "" || req.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "time, role, duration and date are required"})
	}

	payment, err := h.service.Checkout(c.Context(), identity.ExternalID, services.CheckoutInput{
		Time:     req.Time,
		Role:     req.Role,
		Duration: req.Duration,
		Date:     req.Date,
	})
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment})
}

// ConfirmPayment is the payment-provider confirmation signal. It is
// idempotent: re-confirming an already paid id reports already_paid and
// creates nothing.
func (h *BookingHandler) ConfirmPayment(c *fiber.Ctx) error {
	paymentID := strings.TrimSpace(c.Params("id"))
	if paymentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment id"})
	}

	result, err := h.service.Finalize(c.Context(), paymentID)
	if err != nil {
		return mapBookingError(c, err)
	}

	if result.AlreadyPaid {
		return c.JSON(fiber.Map{"status": "already_paid"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "confirmed", "session": result.Session})
}

func mapBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoSuchRole):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No mentor offers the requested role"})
	case errors.Is(err, services.ErrNoMatch):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No mentor is available on the requested date"})
	case errors.Is(err, services.ErrStudentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	case errors.Is(err, services.ErrPaymentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	case errors.Is(err, schedule.ErrUnrecognizedDurationUnit),
		errors.Is(err, schedule.ErrInvalidDuration),
		errors.Is(err, schedule.ErrInvalidClockTime),
		errors.Is(err, schedule.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process booking"})
	}
}
