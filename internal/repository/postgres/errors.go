package postgres

import (
	"errors"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/lib/pq"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

var constraintErrors = map[string]error{
	"mentorships_open_mentor_idx":    domain.ErrMentorUnavailable,
	"mentorships_open_applicant_idx": domain.ErrApplicantAlreadyMatched,
	"mentorships_distinct_parties":   domain.ErrSelfMentorship,
	"mentorships_standing_check":     domain.ErrInvalidStanding,
	"mentorships_mentor_id_fkey":     domain.ErrMentorNotFound,
	"mentorships_applicant_id_fkey":  domain.ErrApplicantNotFound,
}

// translateError maps constraint violations to domain errors so callers
// never see driver messages.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeUniqueViolation, codeCheckViolation, codeForeignKeyViolation:
		if mapped, ok := constraintErrors[pqErr.Constraint]; ok {
			return mapped
		}
	}
	return err
}
