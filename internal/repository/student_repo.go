package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
)

type StudentRepository struct {
	db DBTX
}

func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, external_id, name, email
		FROM students
		WHERE id = $1
	`
	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.ExternalID,
		&student.Name,
		&student.Email,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Student, error) {
	query := `
		SELECT id, external_id, name, email
		FROM students
		WHERE external_id = $1
	`
	var student models.Student
	err := r.db.QueryRow(ctx, query, externalID).Scan(
		&student.ID,
		&student.ExternalID,
		&student.Name,
		&student.Email,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// UpsertByExternalID creates the student on first login and reports whether
// a new record was inserted.
func (r *StudentRepository) UpsertByExternalID(ctx context.Context, externalID, name, email string) (*models.Student, bool, error) {
	existing, err := r.GetByExternalID(ctx, externalID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	query := `
		INSERT INTO students (external_id, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
		RETURNING id, external_id, name, email
	`
	var student models.Student
	err = r.db.QueryRow(ctx, query, externalID, name, email).Scan(
		&student.ID,
		&student.ExternalID,
		&student.Name,
		&student.Email,
	)
	if err != nil {
		return nil, false, err
	}
	return &student, true, nil
}
