package routes

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/praveensaharan/CareerCarve-Backend/internal/cache"
	"github.com/praveensaharan/CareerCarve-Backend/internal/config"
	"github.com/praveensaharan/CareerCarve-Backend/internal/handlers"
	"github.com/praveensaharan/CareerCarve-Backend/internal/middleware"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
	"github.com/praveensaharan/CareerCarve-Backend/internal/repository"
	"github.com/praveensaharan/CareerCarve-Backend/internal/services"
)

type mentorDirectory interface {
	ListAll(ctx context.Context) ([]models.Mentor, error)
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	mentorRepo := repository.NewMentorRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	availabilityService := services.NewAvailabilityService(mentorRepo, availabilityRepo)

	var directory mentorDirectory = mentorRepo
	var onProfileChange func(ctx context.Context)
	if cfg.RedisURL != "" {
		client, err := cache.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Printf("Redis unavailable, mentor directory cache disabled: %v", err)
		} else {
			cached := cache.NewMentorDirectory(mentorRepo, client, cache.DefaultDirectoryTTL)
			directory = cached
			onProfileChange = cached.Invalidate
		}
	}

	matchingService := services.NewMatchingService(directory, availabilityService)
	bookingService := services.NewBookingService(
		db,
		matchingService,
		mentorRepo,
		studentRepo,
		paymentRepo,
		cfg.SessionRatePerHour,
	)

	mentorHandler := handlers.NewMentorHandler(directory, mentorRepo, availabilityService, sessionRepo, onProfileChange)
	studentHandler := handlers.NewStudentHandler(studentRepo, sessionRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	api := app.Group("/api")

	// The confirmation webhook authenticates via the opaque payment id the
	// provider was given at checkout, not a user token.
	api.Post("/payments/:id/confirm", bookingHandler.ConfirmPayment)

	v1 := api.Group("/v1")
	v1.Get("/mentors", mentorHandler.ListMentors)
	v1.Get("/mentors/:id", mentorHandler.GetMentor)

	authed := v1.Group("/me", middleware.AuthRequired(cfg.JWTSecret))
	authed.Get("/mentor", mentorHandler.FetchMe)
	authed.Put("/mentor", mentorHandler.UpdateMe)
	authed.Post("/mentor/availability", mentorHandler.SetAvailability)
	authed.Get("/mentor/sessions", mentorHandler.MySessions)
	authed.Get("/student", studentHandler.FetchMe)
	authed.Get("/student/sessions", studentHandler.MySessions)

	bookings := v1.Group("/bookings", middleware.AuthRequired(cfg.JWTSecret))
	bookings.Post("/checkout", bookingHandler.Checkout)
}
