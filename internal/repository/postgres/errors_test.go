package postgres

import (
	"fmt"
	"testing"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{
			name: "mentor already paired",
			err:  &pq.Error{Code: codeUniqueViolation, Constraint: "mentorships_open_mentor_idx"},
			want: domain.ErrMentorUnavailable,
		},
		{
			name: "applicant already paired",
			err:  fmt.Errorf("insert: %w", &pq.Error{Code: codeUniqueViolation, Constraint: "mentorships_open_applicant_idx"}),
			want: domain.ErrApplicantAlreadyMatched,
		},
		{
			name: "self pairing",
			err:  &pq.Error{Code: codeCheckViolation, Constraint: "mentorships_distinct_parties"},
			want: domain.ErrSelfMentorship,
		},
		{
			name: "unknown mentor",
			err:  &pq.Error{Code: codeForeignKeyViolation, Constraint: "mentorships_mentor_id_fkey"},
			want: domain.ErrMentorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateErrorPassesThroughUnknown(t *testing.T) {
	unknown := &pq.Error{Code: codeUniqueViolation, Constraint: "users_email_key"}
	assert.Same(t, unknown, translateError(unknown))

	assert.Same(t, assert.AnError, translateError(assert.AnError))
}
