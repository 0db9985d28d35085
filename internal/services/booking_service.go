package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
	"github.com/praveensaharan/CareerCarve-Backend/internal/repository"
	"github.com/praveensaharan/CareerCarve-Backend/internal/schedule"
)

type mentorFinder interface {
	FindMentor(ctx context.Context, desiredTime, role, duration, date string) (int64, error)
}

type studentReader interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.Student, error)
}

type BookingService struct {
	db          *pgxpool.Pool
	matcher     mentorFinder
	mentorRepo  mentorReader
	studentRepo studentReader
	paymentRepo *repository.PaymentRepository
	ratePerHour float64
}

func NewBookingService(
	db *pgxpool.Pool,
	matcher mentorFinder,
	mentorRepo mentorReader,
	studentRepo studentReader,
	paymentRepo *repository.PaymentRepository,
	ratePerHour float64,
) *BookingService {
	return &BookingService{
		db:          db,
		matcher:     matcher,
		mentorRepo:  mentorRepo,
		studentRepo: studentRepo,
		paymentRepo: paymentRepo,
		ratePerHour: ratePerHour,
	}
}

type CheckoutInput struct {
	Time     string
	Role     string
	Duration string
	Date     string
}

// Checkout matches a mentor for the requested slot and records an unpaid
// payment capturing the slot parameters. The payment id is what the
// provider's confirmation webhook later references.
func (s *BookingService) Checkout(ctx context.Context, studentExternalID string, input CheckoutInput) (*models.Payment, error) {
	student, err := s.studentRepo.GetByExternalID(ctx, studentExternalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	date, err := schedule.NormalizeDate(input.Date)
	if err != nil {
		return nil, err
	}
	minutes, err := schedule.ParseDuration(input.Duration)
	if err != nil {
		return nil, err
	}
	if _, _, err := schedule.ParseClock(input.Time); err != nil {
		return nil, err
	}

	mentorID, err := s.matcher.FindMentor(ctx, input.Time, input.Role, input.Duration, date)
	if err != nil {
		return nil, err
	}
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	amount := s.ratePerHour * float64(minutes) / 60

	return s.paymentRepo.Create(ctx, repository.CreatePaymentInput{
		StudentID:    student.ID,
		MentorID:     mentor.ID,
		Role:         input.Role,
		Duration:     input.Duration,
		Date:         date,
		SlotTime:     input.Time,
		Amount:       amount,
		MentorEmail:  mentor.Email,
		StudentEmail: student.Email,
	})
}

type FinalizeResult struct {
	AlreadyPaid bool
	Session     *models.Session
}

// Finalize turns a confirmed payment into a session and consumes the booked
// time from the mentor's availability. The paid flip, session insert and
// window advance commit as one transaction; a repeat confirmation is a
// no-op that reports AlreadyPaid.
func (s *BookingService) Finalize(ctx context.Context, paymentID string) (*FinalizeResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txPaymentRepo := repository.NewPaymentRepository(tx)
	txSessionRepo := repository.NewSessionRepository(tx)
	txAvailabilityRepo := repository.NewAvailabilityRepository(tx)

	payment, err := txPaymentRepo.GetByIDForUpdate(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Paid {
		return &FinalizeResult{AlreadyPaid: true}, nil
	}

	// Validate the slot arithmetic before any write so a malformed duration
	// leaves the payment unpaid rather than half-finalized.
	newStart, err := schedule.AdvanceStart(payment.SlotTime, payment.Duration)
	if err != nil {
		return nil, err
	}
	startAt, err := schedule.Combine(payment.Date, payment.SlotTime)
	if err != nil {
		return nil, err
	}

	won, err := txPaymentRepo.MarkPaidIfUnpaid(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		return &FinalizeResult{AlreadyPaid: true}, nil
	}

	session, err := txSessionRepo.Create(ctx, repository.CreateSessionInput{
		StudentID: payment.StudentID,
		MentorID:  payment.MentorID,
		DateTime:  startAt,
		Duration:  payment.Duration,
		Role:      payment.Role,
		PaymentID: payment.ID,
	})
	if err != nil {
		return nil, err
	}

	// The remaining window keeps its end time; its start advances past the
	// booked slot so the next booking on this date stacks after it.
	window, err := txAvailabilityRepo.FirstByMentorAndDate(ctx, payment.MentorID, payment.Date)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if window != nil {
		if _, err := txAvailabilityRepo.AdvanceStart(ctx, payment.MentorID, payment.Date, window.StartTime, newStart); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &FinalizeResult{Session: session}, nil
}
