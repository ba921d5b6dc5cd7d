package domain

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMentorship(t *testing.T) {
	mentor, applicant := uuid.New(), uuid.New()

	m, err := NewMentorship(mentor, applicant, StandingPending)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, StandingPending, m.Standing)

	_, err = NewMentorship(mentor, applicant, StandingActive)
	assert.NoError(t, err)

	_, err = NewMentorship(mentor, mentor, StandingPending)
	assert.ErrorIs(t, err, ErrSelfMentorship)

	for _, s := range []Standing{StandingEnded, StandingRejected} {
		_, err = NewMentorship(mentor, applicant, s)
		assert.ErrorIs(t, err, ErrInvalidInitialStanding, s)
	}
}

func TestStandingTransitions(t *testing.T) {
	all := []Standing{StandingPending, StandingActive, StandingEnded, StandingRejected}
	allowed := map[[2]Standing]bool{
		{StandingPending, StandingActive}:   true,
		{StandingPending, StandingRejected}: true,
		{StandingActive, StandingEnded}:     true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]Standing{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)

			m := &Mentorship{Standing: from}
			err := m.TransitionTo(to)
			if want {
				assert.NoError(t, err)
				assert.Equal(t, to, m.Standing)
			} else {
				assert.ErrorIs(t, err, ErrIllegalTransition)
				assert.Equal(t, from, m.Standing)
			}
		}
	}

	assert.True(t, StandingEnded.IsTerminal())
	assert.True(t, StandingRejected.IsTerminal())
	assert.False(t, StandingPending.IsTerminal())
	assert.True(t, StandingPending.IsOpen())
	assert.True(t, StandingActive.IsOpen())
	assert.False(t, StandingEnded.IsOpen())
}

func TestTransitionFromTerminalStanding(t *testing.T) {
	for _, from := range []Standing{StandingEnded, StandingRejected} {
		m := &Mentorship{Standing: from}
		err := m.TransitionTo(StandingActive)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.EqualError(t, err, ErrIllegalTransition.Error()+": "+string(from)+" is final")
	}

	m := &Mentorship{Standing: StandingActive}
	assert.EqualError(t, m.TransitionTo(StandingRejected), ErrIllegalTransition.Error()+": active -> rejected")
}

func TestParseStanding(t *testing.T) {
	s, err := ParseStanding("rejected")
	require.NoError(t, err)
	assert.Equal(t, StandingRejected, s)

	_, err = ParseStanding("archived")
	assert.ErrorIs(t, err, ErrInvalidStanding)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrMentorUnavailable))
	assert.True(t, IsValidationError(ErrApplicantAlreadyMatched))
	assert.True(t, IsValidationError(ErrSelfMentorship))
	assert.True(t, IsValidationError(fmt.Errorf("insert: %w", ErrMentorNotFound)))
	assert.True(t, IsValidationError(ErrApplicantNotFound))
	assert.False(t, IsValidationError(ErrMentorshipNotFound))
	assert.False(t, IsValidationError(assert.AnError))
}
