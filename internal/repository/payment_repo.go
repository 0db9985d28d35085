package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
)

type CreatePaymentInput struct {
	StudentID    int64
	MentorID     int64
	Role         string
	Duration     string
	Date         string
	SlotTime     string
	Amount       float64
	MentorEmail  string
	StudentEmail string
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `
	id, student_id, mentor_id, role, duration,
	to_char(date, 'YYYY-MM-DD'), to_char(slot_time, 'HH24:MI'),
	amount, mentor_email, student_email, paid, created_at
`

func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (id, student_id, mentor_id, role, duration, date, slot_time,
		                      amount, mentor_email, student_email, paid)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8, $9, $10, FALSE)
		RETURNING ` + paymentColumns

	var payment models.Payment
	err := r.db.QueryRow(
		ctx,
		query,
		uuid.NewString(),
		input.StudentID,
		input.MentorID,
		input.Role,
		input.Duration,
		input.Date,
		input.SlotTime,
		input.Amount,
		input.MentorEmail,
		input.StudentEmail,
	).Scan(
		&payment.ID,
		&payment.StudentID,
		&payment.MentorID,
		&payment.Role,
		&payment.Duration,
		&payment.Date,
		&payment.SlotTime,
		&payment.Amount,
		&payment.MentorEmail,
		&payment.StudentEmail,
		&payment.Paid,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByIDForUpdate takes a row lock so two concurrent confirmations of the
// same payment are serialized by the store.
func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

// MarkPaidIfUnpaid flips an unpaid payment to paid and reports whether this
// call won
// the transition. paid is monotonic; there is no reverse update anywhere.
func (r *PaymentRepository) MarkPaidIfUnpaid(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE payments
		SET paid = TRUE
		WHERE id = $1 AND paid = FALSE
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PaymentRepository) scanOne(ctx context.Context, query string, args ...any) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&payment.ID,
		&payment.StudentID,
		&payment.MentorID,
		&payment.Role,
		&payment.Duration,
		&payment.Date,
		&payment.SlotTime,
		&payment.Amount,
		&payment.MentorEmail,
		&payment.StudentEmail,
		&payment.Paid,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
