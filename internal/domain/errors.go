package domain

import "errors"

var (
	ErrApplicantNotFound  = errors.New("applicant not found")
	ErrMentorNotFound     = errors.New("mentor not found")
	ErrMentorshipNotFound = errors.New("mentorship not found")

	ErrSelfMentorship          = errors.New("mentor cannot be the same as applicant")
	ErrMentorUnavailable       = errors.New("mentor already has a pending or active mentorship")
	ErrApplicantAlreadyMatched = errors.New("applicant already has a pending or active mentorship")
	ErrInvalidInitialStanding  = errors.New("mentorship can only be created as pending or active")
	ErrInvalidStanding         = errors.New("invalid mentorship standing")
	ErrIllegalTransition       = errors.New("illegal mentorship standing transition")
	ErrStaleStanding           = errors.New("mentorship standing changed concurrently")

	ErrAutoMatchInProgress     = errors.New("auto-match run already in progress")
	ErrAutoMatchReportNotFound = errors.New("no auto-match report recorded")
	ErrInvalidMinimumScore     = errors.New("minimum score must be between 0 and 100")
)

// IsValidationError reports whether err is a per-pairing rule or integrity
// violation that a batch run records and moves past, as opposed to an
// infrastructure failure. A party deleted between ranking and insert counts.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrSelfMentorship),
		errors.Is(err, ErrMentorUnavailable),
		errors.Is(err, ErrApplicantAlreadyMatched),
		errors.Is(err, ErrInvalidInitialStanding),
		errors.Is(err, ErrInvalidStanding),
		errors.Is(err, ErrMentorNotFound),
		errors.Is(err, ErrApplicantNotFound):
		return true
	default:
		return false
	}
}
