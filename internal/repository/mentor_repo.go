package repository

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"github.com/jackc/pgx/v5"
	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
)

type MentorRepository struct {
	db DBTX
}

func NewMentorRepository(db DBTX) *MentorRepository {
	return &MentorRepository{db: db}
}

func (r *MentorRepository) ListAll(ctx context.Context) ([]models.Mentor, error) {
	query := `
		SELECT id, external_id, name, COALESCE(roles, ''), rating, email
		FROM mentors
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentors := make([]models.Mentor, 0)
	for rows.Next() {
		var mentor models.Mentor
		if err := rows.Scan(
			&mentor.ID,
			&mentor.ExternalID,
			&mentor.Name,
			&mentor.Roles,
			&mentor.Rating,
			&mentor.Email,
		); err != nil {
			return nil, err
		}
		mentors = append(mentors, mentor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mentors, nil
}

func (r *MentorRepository) GetByID(ctx context.Context, id int64) (*models.Mentor, error) {
	query := `
		SELECT id, external_id, name, COALESCE(roles, ''), rating, email
		FROM mentors
		WHERE id = $1
	`
	var mentor models.Mentor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&mentor.ID,
		&mentor.ExternalID,
		&mentor.Name,
		&mentor.Roles,
		&mentor.Rating,
		&mentor.Email,
	)
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *MentorRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Mentor, error) {
	query := `
		SELECT id, external_id, name, COALESCE(roles, ''), rating, email
		FROM mentors
		WHERE external_id = $1
	`
	var mentor models.Mentor
	err := r.db.QueryRow(ctx, query, externalID).Scan(
		&mentor.ID,
		&mentor.ExternalID,
		&mentor.Name,
		&mentor.Roles,
		&mentor.Rating,
		&mentor.Email,
	)
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

// UpsertByExternalID returns the mentor for an external identity, creating
// the record on first login. New mentors get a random rating in [2.0, 5.0];
// existing rows are returned unchanged.
func (r *MentorRepository) UpsertByExternalID(ctx context.Context, externalID, name, email string) (*models.Mentor, error) {
	existing, err := r.GetByExternalID(ctx, externalID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	rating := math.Round((rand.Float64()*3+2)*10) / 10

	query := `
		INSERT INTO mentors (external_id, name, rating, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
		RETURNING id, external_id, name, COALESCE(roles, ''), rating, email
	`
	var mentor models.Mentor
	err = r.db.QueryRow(ctx, query, externalID, name, rating, email).Scan(
		&mentor.ID,
		&mentor.ExternalID,
		&mentor.Name,
		&mentor.Roles,
		&mentor.Rating,
		&mentor.Email,
	)
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *MentorRepository) UpdateProfile(ctx context.Context, externalID, name, roles string) (*models.Mentor, error) {
	query := `
		UPDATE mentors
		SET name = $2, roles = $3
		WHERE external_id = $1
		RETURNING id, external_id, name, COALESCE(roles, ''), rating, email
	`
	var mentor models.Mentor
	err := r.db.QueryRow(ctx, query, externalID, name, roles).Scan(
		&mentor.ID,
		&mentor.ExternalID,
		&mentor.Name,
		&mentor.Roles,
		&mentor.Rating,
		&mentor.Email,
	)
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}
