package repository

import (
	"context"

	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
)

type AvailabilityRepository struct {
	db DBTX
}

func NewAvailabilityRepository(db DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByMentor returns all windows for a mentor ordered by date then start
// time. Dates come back as YYYY-MM-DD and times as HH:MM so callers compare
// plain strings without timezone drift.
func (r *AvailabilityRepository) ListByMentor(ctx context.Context, mentorID int64) ([]models.AvailabilityWindow, error) {
	query := `
		SELECT mentor_id,
		       to_char(date, 'YYYY-MM-DD'),
		       to_char(start_time, 'HH24:MI'),
		       to_char(end_time, 'HH24:MI')
		FROM availability
		WHERE mentor_id = $1
		ORDER BY date, start_time
	`
	rows, err := r.db.Query(ctx, query, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]models.AvailabilityWindow, 0)
	for rows.Next() {
		var window models.AvailabilityWindow
		if err := rows.Scan(
			&window.MentorID,
			&window.Date,
			&window.StartTime,
			&window.EndTime,
		); err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

// FirstByMentorAndDate returns the earliest window for a mentor on a date
// and locks the row, so a finalizing transaction can advance it without
// racing a concurrent booking.
func (r *AvailabilityRepository) FirstByMentorAndDate(ctx context.Context, mentorID int64, date string) (*models.AvailabilityWindow, error) {
	query := `
		SELECT mentor_id,
		       to_char(date, 'YYYY-MM-DD'),
		       to_char(start_time, 'HH24:MI'),
		       to_char(end_time, 'HH24:MI')
		FROM availability
		WHERE mentor_id = $1 AND date = $2::date
		ORDER BY start_time
		LIMIT 1
		FOR UPDATE
	`
	var window models.AvailabilityWindow
	err := r.db.QueryRow(ctx, query, mentorID, date).Scan(
		&window.MentorID,
		&window.Date,
		&window.StartTime,
		&window.EndTime,
	)
	if err != nil {
		return nil, err
	}
	return &window, nil
}

func (r *AvailabilityRepository) Create(ctx context.Context, window models.AvailabilityWindow) error {
	query := `
		INSERT INTO availability (mentor_id, date, start_time, end_time)
		VALUES ($1, $2::date, $3::time, $4::time)
	`
	_, err := r.db.Exec(ctx, query, window.MentorID, window.Date, window.StartTime, window.EndTime)
	return err
}

// AdvanceStart moves a window's start forward, keyed on the start time the
// caller previously read. A false return means another booking advanced the
// window first and the caller must not proceed.
func (r *AvailabilityRepository) AdvanceStart(ctx context.Context, mentorID int64, date, currentStart, newStart string) (bool, error) {
	query := `
		UPDATE availability
		SET start_time = $4::time
		WHERE mentor_id = $1 AND date = $2::date AND start_time = $3::time
	`
	tag, err := r.db.Exec(ctx, query, mentorID, date, currentStart, newStart)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
