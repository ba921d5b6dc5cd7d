package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/goodscary/firstrubyfriend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	languagesColumn = `
		ARRAY(
			SELECT l.iso639_alpha3 FROM user_languages ul
			JOIN languages l ON l.id = ul.language_id
			WHERE ul.user_id = u.id
			ORDER BY l.iso639_alpha3
		) AS languages`

	openStandings = `('pending', 'active')`

	applicantSelect = `
		SELECT u.id, u.email, u.country_code, u.city, u.lat, u.lng, u.requested_mentorship_at,
		       aq.looking_for_career_mentorship, aq.looking_for_code_mentorship,` + languagesColumn + `
		FROM users u
		LEFT JOIN applicant_questionnaires aq ON aq.respondent_id = u.id
		WHERE (u.requested_mentorship_at IS NOT NULL OR aq.respondent_id IS NOT NULL)`

	mentorSelect = `
		SELECT u.id, u.email, u.country_code, u.city, u.lat, u.lng, u.available_as_mentor_at,
		       mq.preferred_style_career, mq.preferred_style_code,` + languagesColumn + `,
		       ARRAY(
		           SELECT r.applicant_id::text FROM mentorships r
		           WHERE r.mentor_id = u.id AND r.standing = 'rejected'
		           ORDER BY r.created_at
		       ) AS rejected_applicant_ids
		FROM users u
		LEFT JOIN mentor_questionnaires mq ON mq.respondent_id = u.id`
)

type applicantRow struct {
	ID          uuid.UUID      `db:"id"`
	Email       string         `db:"email"`
	CountryCode *string        `db:"country_code"`
	City        *string        `db:"city"`
	Lat         *float64       `db:"lat"`
	Lng         *float64       `db:"lng"`
	RequestedAt *time.Time     `db:"requested_mentorship_at"`
	WantsCareer *bool          `db:"looking_for_career_mentorship"`
	WantsCode   *bool          `db:"looking_for_code_mentorship"`
	Languages   pq.StringArray `db:"languages"`
}

func (row *applicantRow) toDomain() *domain.ApplicantProfile {
	profile := &domain.ApplicantProfile{
		ID:          row.ID,
		Email:       row.Email,
		CountryCode: row.CountryCode,
		City:        row.City,
		Latitude:    row.Lat,
		Longitude:   row.Lng,
		Languages:   []string(row.Languages),
		RequestedAt: row.RequestedAt,
	}
	if row.WantsCareer != nil && row.WantsCode != nil {
		profile.Wants = &domain.MentorshipWants{Career: *row.WantsCareer, Code: *row.WantsCode}
	}
	return profile
}

type mentorRow struct {
	ID             uuid.UUID      `db:"id"`
	Email          string         `db:"email"`
	CountryCode    *string        `db:"country_code"`
	City           *string        `db:"city"`
	Lat            *float64       `db:"lat"`
	Lng            *float64       `db:"lng"`
	AvailableSince *time.Time     `db:"available_as_mentor_at"`
	OffersCareer   *bool          `db:"preferred_style_career"`
	OffersCode     *bool          `db:"preferred_style_code"`
	Languages      pq.StringArray `db:"languages"`
	RejectedIDs    pq.StringArray `db:"rejected_applicant_ids"`
}

func (row *mentorRow) toDomain() (*domain.MentorProfile, error) {
	profile := &domain.MentorProfile{
		ID:             row.ID,
		Email:          row.Email,
		CountryCode:    row.CountryCode,
		City:           row.City,
		Latitude:       row.Lat,
		Longitude:      row.Lng,
		Languages:      []string(row.Languages),
		AvailableSince: row.AvailableSince,
	}
	if row.OffersCareer != nil && row.OffersCode != nil {
		profile.Offers = &domain.MentoringStyle{Career: *row.OffersCareer, Code: *row.OffersCode}
	}
	for _, raw := range row.RejectedIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse rejected applicant id %q: %w", raw, err)
		}
		profile.RejectedApplicantIDs = append(profile.RejectedApplicantIDs, id)
	}
	return profile, nil
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetApplicant(ctx context.Context, id uuid.UUID) (*domain.ApplicantProfile, error) {
	var row applicantRow
	query := applicantSelect + ` AND u.id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicantNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *profileRepository) GetMentor(ctx context.Context, id uuid.UUID) (*domain.MentorProfile, error) {
	var row mentorRow
	query := mentorSelect + ` WHERE u.available_as_mentor_at IS NOT NULL AND u.id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMentorNotFound
		}
		return nil, err
	}
	return row.toDomain()
}

func (r *profileRepository) ListUnmatchedApplicants(ctx context.Context) ([]*domain.ApplicantProfile, error) {
	var rows []applicantRow
	query := applicantSelect + `
		AND NOT EXISTS (
			SELECT 1 FROM mentorships m
			WHERE m.applicant_id = u.id AND m.standing IN ` + openStandings + `
		)
		ORDER BY u.created_at, u.id
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	applicants := make([]*domain.ApplicantProfile, 0, len(rows))
	for i := range rows {
		applicants = append(applicants, rows[i].toDomain())
	}
	return applicants, nil
}

func (r *profileRepository) ListEligibleMentors(ctx context.Context, excludeIDs []uuid.UUID) ([]*domain.MentorProfile, error) {
	excluded := make([]string, 0, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded = append(excluded, id.String())
	}

	var rows []mentorRow
	query := mentorSelect + `
		WHERE u.available_as_mentor_at IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM mentorships m
			WHERE m.mentor_id = u.id AND m.standing IN ` + openStandings + `
		  )
		  AND NOT (u.id = ANY($1::uuid[]))
		ORDER BY u.created_at, u.id
	`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(excluded)); err != nil {
		return nil, err
	}

	mentors := make([]*domain.MentorProfile, 0, len(rows))
	for i := range rows {
		mentor, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, mentor)
	}
	return mentors, nil
}
