package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
	"github.com/praveensaharan/CareerCarve-Backend/internal/repository"
)

// These tests need a migrated database. Set DB_URL to run them.

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		t.Skip("DB_URL not set, skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

type bookingFixture struct {
	pool    *pgxpool.Pool
	mentor  *models.Mentor
	student *models.Student
	booking *BookingService
}

func newBookingFixture(t *testing.T, pool *pgxpool.Pool) *bookingFixture {
	t.Helper()
	ctx := context.Background()

	mentorRepo := repository.NewMentorRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	tag := uuid.NewString()[:8]
	mentor, err := mentorRepo.UpsertByExternalID(ctx, "test_mentor_"+tag, "Test Mentor "+tag, fmt.Sprintf("mentor-%s@example.com", tag))
	if err != nil {
		t.Fatalf("seed mentor: %v", err)
	}
	mentor, err = mentorRepo.UpdateProfile(ctx, mentor.ExternalID, mentor.Name, "Digital Marketing")
	if err != nil {
		t.Fatalf("seed mentor roles: %v", err)
	}
	student, _, err := studentRepo.UpsertByExternalID(ctx, "test_student_"+tag, "Test Student "+tag, fmt.Sprintf("student-%s@example.com", tag))
	if err != nil {
		t.Fatalf("seed student: %v", err)
	}

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM sessions WHERE mentor_id = $1`, mentor.ID)
		_, _ = pool.Exec(ctx, `DELETE FROM payments WHERE mentor_id = $1`, mentor.ID)
		_, _ = pool.Exec(ctx, `DELETE FROM availability WHERE mentor_id = $1`, mentor.ID)
		_, _ = pool.Exec(ctx, `DELETE FROM mentors WHERE id = $1`, mentor.ID)
		_, _ = pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, student.ID)
	})

	availabilityService := NewAvailabilityService(mentorRepo, availabilityRepo)
	matching := NewMatchingService(&singleMentorLister{mentor: *mentor}, availabilityService)
	booking := NewBookingService(pool, matching, mentorRepo, studentRepo, paymentRepo, 2000)

	return &bookingFixture{pool: pool, mentor: mentor, student: student, booking: booking}
}

// singleMentorLister pins matching to the fixture's mentor so tests stay
// isolated from whatever else lives in the shared database.
type singleMentorLister struct {
	mentor models.Mentor
}

func (s *singleMentorLister) ListAll(ctx context.Context) ([]models.Mentor, error) {
	return []models.Mentor{s.mentor}, nil
}

func (f *bookingFixture) addWindow(t *testing.T, date, start, end string) {
	t.Helper()
	repo := repository.NewAvailabilityRepository(f.pool)
	err := repo.Create(context.Background(), models.AvailabilityWindow{
		MentorID:  f.mentor.ID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		t.Fatalf("seed window: %v", err)
	}
}

func TestCheckoutCreatesUnpaidPayment(t *testing.T) {
	pool := testPool(t)
	f := newBookingFixture(t, pool)
	f.addWindow(t, "2024-08-24", "09:00", "12:00")

	payment, err := f.booking.Checkout(context.Background(), f.student.ExternalID, CheckoutInput{
		Time:     "09:00",
		Role:     "Digital Marketing",
		Duration: "30 min",
		Date:     "2024-08-24",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if payment.Paid {
		t.Fatal("payment should start unpaid")
	}
	if payment.MentorID != f.mentor.ID {
		t.Fatalf("payment bound to mentor %d, want %d", payment.MentorID, f.mentor.ID)
	}
	if payment.Amount != 1000 {
		t.Fatalf("30 min at 2000/hour should cost 1000, got %v", payment.Amount)
	}
}

func TestCheckoutUnknownStudent(t *testing.T) {
	pool := testPool(t)
	f := newBookingFixture(t, pool)
	f.addWindow(t, "2024-08-24", "09:00", "12:00")

	_, err := f.booking.Checkout(context.Background(), "test_student_missing", CheckoutInput{
		Time:     "09:00",
		Role:     "Digital Marketing",
		Duration: "30 min",
		Date:     "2024-08-24",
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestFinalizeCreatesSessionAndAdvancesWindow(t *testing.T) {
	pool := testPool(t)
	f := newBookingFixture(t, pool)
	f.addWindow(t, "2024-08-24", "09:00", "12:00")
	ctx := context.Background()

	payment, err := f.booking.Checkout(ctx, f.student.ExternalID, CheckoutInput{
		Time:     "09:00",
		Role:     "Digital Marketing",
		Duration: "30 min",
		Date:     "2024-08-24",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	result, err := f.booking.Finalize(ctx, payment.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if result.AlreadyPaid {
		t.Fatal("first confirmation must not report already paid")
	}
	if result.Session == nil || result.Session.PaymentID != payment.ID {
		t.Fatalf("session not created for payment: %+v", result.Session)
	}

	windows, err := repository.NewAvailabilityRepository(pool).ListByMentor(ctx, f.mentor.ID)
	if err != nil {
		t.Fatalf("list windows: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected the single seeded window, got %d", len(windows))
	}
	if windows[0].StartTime != "09:30" || windows[0].EndTime != "12:00" {
		t.Fatalf("window should read 09:30-12:00 after the booking, got %s-%s", windows[0].StartTime, windows[0].EndTime)
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	pool := testPool(t)
	f := newBookingFixture(t, pool)
	f.addWindow(t, "2024-08-24", "09:00", "12:00")
	ctx := context.Background()

	payment, err := f.booking.Checkout(ctx, f.student.ExternalID, CheckoutInput{
		Time:     "09:00",
		Role:     "Digital Marketing",
		Duration: "30 min",
		Date:     "2024-08-24",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if _, err := f.booking.Finalize(ctx, payment.ID); err != nil {
		t.Fatalf("first Finalize: %v", err)
	}
	repeat, err := f.booking.Finalize(ctx, payment.ID)
	if err != nil {
		t.Fatalf("second Finalize: %v", err)
	}
	if !repeat.AlreadyPaid {
		t.Fatal("repeat confirmation must report already paid")
	}
	if repeat.Session != nil {
		t.Fatal("repeat confirmation must not create a session")
	}

	var sessionCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM sessions WHERE payment_id = $1`, payment.ID).Scan(&sessionCount); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if sessionCount != 1 {
		t.Fatalf("expected exactly one session, got %d", sessionCount)
	}

	windows, err := repository.NewAvailabilityRepository(pool).ListByMentor(ctx, f.mentor.ID)
	if err != nil {
		t.Fatalf("list windows: %v", err)
	}
	if windows[0].StartTime != "09:30" {
		t.Fatalf("window must advance exactly once, got start %s", windows[0].StartTime)
	}
}

func TestFinalizeUnknownPayment(t *testing.T) {
	pool := testPool(t)
	f := newBookingFixture(t, pool)

	_, err := f.booking.Finalize(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}
