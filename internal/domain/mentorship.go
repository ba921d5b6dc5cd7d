package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Standing is the lifecycle state of a mentorship.
type Standing string

const (
	StandingPending  Standing = "pending"
	StandingActive   Standing = "active"
	StandingEnded    Standing = "ended"
	StandingRejected Standing = "rejected"
)

var transitions = map[Standing][]Standing{
	StandingPending: {StandingActive, StandingRejected},
	StandingActive:  {StandingEnded},
}

func ParseStanding(s string) (Standing, error) {
	switch st := Standing(s); st {
	case StandingPending, StandingActive, StandingEnded, StandingRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStanding, s)
}

// IsOpen reports whether the standing occupies both sides of the pairing.
func (s Standing) IsOpen() bool {
	return s == StandingPending || s == StandingActive
}

// IsTerminal reports whether no transition leaves s.
func (s Standing) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Standing) CanTransitionTo(next Standing) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Mentorship pairs one mentor with one applicant.
type Mentorship struct {
	ID          uuid.UUID `json:"id" db:"id"`
	MentorID    uuid.UUID `json:"mentor_id" db:"mentor_id"`
	ApplicantID uuid.UUID `json:"applicant_id" db:"applicant_id"`
	Standing    Standing  `json:"standing" db:"standing"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewMentorship validates a new pairing. Only pending (auto-match) and
// active (manual match) are valid initial standings.
func NewMentorship(mentorID, applicantID uuid.UUID, standing Standing) (*Mentorship, error) {
	if mentorID == applicantID {
		return nil, ErrSelfMentorship
	}
	if !standing.IsOpen() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInitialStanding, standing)
	}

	return &Mentorship{
		ID:          uuid.New(),
		MentorID:    mentorID,
		ApplicantID: applicantID,
		Standing:    standing,
	}, nil
}

// TransitionTo moves the mentorship to next, rejecting moves outside the
// transition table.
func (m *Mentorship) TransitionTo(next Standing) error {
	if m.Standing.IsTerminal() {
		return fmt.Errorf("%w: %s is final", ErrIllegalTransition, m.Standing)
	}
	if !m.Standing.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.Standing, next)
	}
	m.Standing = next
	return nil
}
