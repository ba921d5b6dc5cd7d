package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/goodscary/firstrubyfriend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type mentorshipRepository struct {
	db *sqlx.DB
}

func NewMentorshipRepository(db *sqlx.DB) repository.MentorshipRepository {
	return &mentorshipRepository{db: db}
}

// Create relies on the partial unique indexes over open standings, so two
// concurrent inserts for the same mentor cannot both succeed.
func (r *mentorshipRepository) Create(ctx context.Context, mentorship *domain.Mentorship) error {
	if mentorship.ID == uuid.Nil {
		mentorship.ID = uuid.New()
	}

	query := `
		INSERT INTO mentorships (id, mentor_id, applicant_id, standing)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, mentorship.ID, mentorship.MentorID, mentorship.ApplicantID, mentorship.Standing).
		Scan(&mentorship.CreatedAt, &mentorship.UpdatedAt)
	return translateError(err)
}

func (r *mentorshipRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mentorship, error) {
	var mentorship domain.Mentorship
	query := `SELECT id, mentor_id, applicant_id, standing, created_at, updated_at FROM mentorships WHERE id = $1`
	err := r.db.GetContext(ctx, &mentorship, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMentorshipNotFound
		}
		return nil, err
	}
	return &mentorship, nil
}

func (r *mentorshipRepository) ListByStanding(ctx context.Context, standing domain.Standing) ([]*domain.Mentorship, error) {
	var mentorships []*domain.Mentorship
	query := `
		SELECT id, mentor_id, applicant_id, standing, created_at, updated_at
		FROM mentorships
		WHERE standing = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &mentorships, query, standing)
	return mentorships, err
}

func (r *mentorshipRepository) RejectedMentorIDs(ctx context.Context, applicantID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT mentor_id FROM mentorships
		WHERE applicant_id = $1 AND standing = 'rejected'
		ORDER BY created_at
	`
	err := r.db.SelectContext(ctx, &ids, query, applicantID)
	return ids, err
}

func (r *mentorshipRepository) UpdateStanding(ctx context.Context, id uuid.UUID, from, to domain.Standing) error {
	query := `
		UPDATE mentorships
		SET standing = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND standing = $3
	`
	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrStaleStanding
}

func (r *mentorshipRepository) ApproveAllPending(ctx context.Context) (int, error) {
	query := `
		UPDATE mentorships
		SET standing = 'active', updated_at = CURRENT_TIMESTAMP
		WHERE standing = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
