package repository

import (
	"context"
	"time"

	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
)

type CreateSessionInput struct {
	StudentID int64
	MentorID  int64
	DateTime  time.Time
	Duration  string
	Role      string
	PaymentID string
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	query := `
		INSERT INTO sessions (student_id, mentor_id, date_time, duration, role, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, student_id, mentor_id, date_time, duration, role, payment_id, created_at
	`
	var session models.Session
	err := r.db.QueryRow(
		ctx,
		query,
		input.StudentID,
		input.MentorID,
		input.DateTime,
		input.Duration,
		input.Role,
		input.PaymentID,
	).Scan(
		&session.ID,
		&session.StudentID,
		&session.MentorID,
		&session.DateTime,
		&session.Duration,
		&session.Role,
		&session.PaymentID,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ListByMentor(ctx context.Context, mentorID int64) ([]models.SessionSummary, error) {
	query := `
		SELECT st.name, s.date_time, s.duration, s.role, s.payment_id
		FROM sessions s
		JOIN students st ON s.student_id = st.id
		WHERE s.mentor_id = $1
		ORDER BY s.date_time
	`
	return r.listSummaries(ctx, query, mentorID)
}

func (r *SessionRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.SessionSummary, error) {
	query := `
		SELECT m.name, s.date_time, s.duration, s.role, s.payment_id
		FROM sessions s
		JOIN mentors m ON s.mentor_id = m.id
		WHERE s.student_id = $1
		ORDER BY s.date_time
	`
	return r.listSummaries(ctx, query, studentID)
}

func (r *SessionRepository) listSummaries(ctx context.Context, query string, actorID int64) ([]models.SessionSummary, error) {
	rows, err := r.db.Query(ctx, query, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.SessionSummary, 0)
	for rows.Next() {
		var summary models.SessionSummary
		if err := rows.Scan(
			&summary.CounterpartName,
			&summary.DateTime,
			&summary.Duration,
			&summary.Role,
			&summary.PaymentID,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
