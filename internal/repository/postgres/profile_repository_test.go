package postgres

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	applicantColumns = []string{
		"id", "email", "country_code", "city", "lat", "lng", "requested_mentorship_at",
		"looking_for_career_mentorship", "looking_for_code_mentorship", "languages",
	}
	mentorColumns = []string{
		"id", "email", "country_code", "city", "lat", "lng", "available_as_mentor_at",
		"preferred_style_career", "preferred_style_code", "languages", "rejected_applicant_ids",
	}
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

// sqlPattern matches a query containing every fragment in order.
func sqlPattern(fragments ...string) string {
	quoted := make([]string, len(fragments))
	for i, f := range fragments {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return strings.Join(quoted, ".*")
}

func TestListEligibleMentorsQuery(t *testing.T) {
	rejected := []uuid.UUID{
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
	}

	tests := []struct {
		name     string
		exclude  []uuid.UUID
		arrayArg string
	}{
		{name: "no exclusions", exclude: nil, arrayArg: "{}"},
		{
			name:     "rejected mentors",
			exclude:  rejected,
			arrayArg: `{"11111111-1111-1111-1111-111111111111","22222222-2222-2222-2222-222222222222"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mentorID := uuid.New()
			rejectedApplicant := uuid.New()

			mock.ExpectQuery(sqlPattern(
				"WHERE u.available_as_mentor_at IS NOT NULL",
				"WHERE m.mentor_id = u.id AND m.standing IN ('pending', 'active')",
				"AND NOT (u.id = ANY($1::uuid[]))",
				"ORDER BY u.created_at, u.id",
			)).
				WithArgs(tt.arrayArg).
				WillReturnRows(sqlmock.NewRows(mentorColumns).AddRow(
					mentorID.String(), "mentor@example.com", "GB", "Brighton", 50.82, -0.15,
					time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					true, false, "{eng,fra}", "{"+rejectedApplicant.String()+"}",
				))

			mentors, err := NewProfileRepository(db).ListEligibleMentors(context.Background(), tt.exclude)
			require.NoError(t, err)
			require.Len(t, mentors, 1)

			got := mentors[0]
			assert.Equal(t, mentorID, got.ID)
			assert.Equal(t, []string{"eng", "fra"}, got.Languages)
			assert.Equal(t, &domain.MentoringStyle{Career: true}, got.Offers)
			assert.Equal(t, []uuid.UUID{rejectedApplicant}, got.RejectedApplicantIDs)
		})
	}
}

func TestListEligibleMentorsWithoutQuestionnaire(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(sqlPattern("FROM users u", "ORDER BY u.created_at, u.id")).
		WillReturnRows(sqlmock.NewRows(mentorColumns).AddRow(
			uuid.NewString(), "mentor@example.com", nil, nil, nil, nil,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			nil, nil, "{}", "{}",
		))

	mentors, err := NewProfileRepository(db).ListEligibleMentors(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Nil(t, mentors[0].Offers)
	assert.Nil(t, mentors[0].Latitude)
	assert.Empty(t, mentors[0].RejectedApplicantIDs)
}

func TestListEligibleMentorsRejectsMalformedRejectedID(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(sqlPattern("FROM users u")).
		WillReturnRows(sqlmock.NewRows(mentorColumns).AddRow(
			uuid.NewString(), "mentor@example.com", nil, nil, nil, nil, nil,
			nil, nil, "{}", "{not-a-uuid}",
		))

	_, err := NewProfileRepository(db).ListEligibleMentors(context.Background(), nil)
	assert.ErrorContains(t, err, "not-a-uuid")
}

func TestListUnmatchedApplicantsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery(sqlPattern(
		"WHERE (u.requested_mentorship_at IS NOT NULL OR aq.respondent_id IS NOT NULL)",
		"AND NOT EXISTS",
		"WHERE m.applicant_id = u.id AND m.standing IN ('pending', 'active')",
		"ORDER BY u.created_at, u.id",
	)).
		WillReturnRows(sqlmock.NewRows(applicantColumns).
			AddRow(first.String(), "first@example.com", "GB", nil, 50.82, -0.15, nil, true, true, "{eng}").
			AddRow(second.String(), "second@example.com", nil, nil, nil, nil, nil, nil, nil, "{}"))

	applicants, err := NewProfileRepository(db).ListUnmatchedApplicants(context.Background())
	require.NoError(t, err)
	require.Len(t, applicants, 2)

	assert.Equal(t, first, applicants[0].ID)
	assert.Equal(t, &domain.MentorshipWants{Career: true, Code: true}, applicants[0].Wants)
	assert.Equal(t, second, applicants[1].ID)
	assert.Nil(t, applicants[1].Wants)
}

func TestGetProfileNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)
	id := uuid.New()

	mock.ExpectQuery(sqlPattern("AND u.id = $1")).WithArgs(id).WillReturnRows(sqlmock.NewRows(applicantColumns))
	_, err := repo.GetApplicant(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrApplicantNotFound)

	mock.ExpectQuery(sqlPattern("WHERE u.available_as_mentor_at IS NOT NULL AND u.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(mentorColumns))
	_, err = repo.GetMentor(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrMentorNotFound)
}
