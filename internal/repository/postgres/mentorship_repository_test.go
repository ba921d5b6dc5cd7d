package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mentorshipColumns = []string{"id", "mentor_id", "applicant_id", "standing", "created_at", "updated_at"}

func TestCreateMentorship(t *testing.T) {
	insert := sqlPattern("INSERT INTO mentorships (id, mentor_id, applicant_id, standing)", "RETURNING created_at, updated_at")

	t.Run("stores timestamps", func(t *testing.T) {
		db, mock := newMockDB(t)
		m, err := domain.NewMentorship(uuid.New(), uuid.New(), domain.StandingPending)
		require.NoError(t, err)
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectQuery(insert).
			WithArgs(m.ID, m.MentorID, m.ApplicantID, "pending").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, NewMentorshipRepository(db).Create(context.Background(), m))
		assert.Equal(t, now, m.CreatedAt)
	})

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "mentor already paired",
			err:  &pq.Error{Code: codeUniqueViolation, Constraint: "mentorships_open_mentor_idx"},
			want: domain.ErrMentorUnavailable,
		},
		{
			name: "applicant already paired",
			err:  &pq.Error{Code: codeUniqueViolation, Constraint: "mentorships_open_applicant_idx"},
			want: domain.ErrApplicantAlreadyMatched,
		},
		{
			name: "mentor deleted",
			err:  &pq.Error{Code: codeForeignKeyViolation, Constraint: "mentorships_mentor_id_fkey"},
			want: domain.ErrMentorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			m, err := domain.NewMentorship(uuid.New(), uuid.New(), domain.StandingPending)
			require.NoError(t, err)

			mock.ExpectQuery(insert).WillReturnError(tt.err)

			err = NewMentorshipRepository(db).Create(context.Background(), m)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsValidationError(err))
		})
	}
}

func TestUpdateStanding(t *testing.T) {
	update := sqlPattern("UPDATE mentorships", "SET standing = $1", "WHERE id = $2 AND standing = $3")
	lookup := sqlPattern("FROM mentorships WHERE id = $1")

	t.Run("applied", func(t *testing.T) {
		db, mock := newMockDB(t)
		id := uuid.New()
		mock.ExpectExec(update).WithArgs("active", id, "pending").WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewMentorshipRepository(db).UpdateStanding(context.Background(), id, domain.StandingPending, domain.StandingActive)
		assert.NoError(t, err)
	})

	t.Run("standing moved underneath", func(t *testing.T) {
		db, mock := newMockDB(t)
		id := uuid.New()
		now := time.Now().UTC()
		mock.ExpectExec(update).WithArgs("active", id, "pending").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(lookup).WithArgs(id).
			WillReturnRows(sqlmock.NewRows(mentorshipColumns).
				AddRow(id.String(), uuid.NewString(), uuid.NewString(), "rejected", now, now))

		err := NewMentorshipRepository(db).UpdateStanding(context.Background(), id, domain.StandingPending, domain.StandingActive)
		assert.ErrorIs(t, err, domain.ErrStaleStanding)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		id := uuid.New()
		mock.ExpectExec(update).WithArgs("ended", id, "active").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(lookup).WithArgs(id).WillReturnRows(sqlmock.NewRows(mentorshipColumns))

		err := NewMentorshipRepository(db).UpdateStanding(context.Background(), id, domain.StandingActive, domain.StandingEnded)
		assert.ErrorIs(t, err, domain.ErrMentorshipNotFound)
	})
}

func TestApproveAllPendingCountsRows(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(sqlPattern("SET standing = 'active'", "WHERE standing = 'pending'")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := NewMentorshipRepository(db).ApproveAllPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRejectedMentorIDs(t *testing.T) {
	db, mock := newMockDB(t)
	applicantID, first, second := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(sqlPattern("WHERE applicant_id = $1 AND standing = 'rejected'", "ORDER BY created_at")).
		WithArgs(applicantID).
		WillReturnRows(sqlmock.NewRows([]string{"mentor_id"}).AddRow(first.String()).AddRow(second.String()))

	ids, err := NewMentorshipRepository(db).RejectedMentorIDs(context.Background(), applicantID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
}
