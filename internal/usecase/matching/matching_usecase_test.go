package matching

import (
	"context"
	"testing"
	"time"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/goodscary/firstrubyfriend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type failingProfiles struct {
	*memory.Store
	err error
}

func (f *failingProfiles) ListEligibleMentors(context.Context, []uuid.UUID) ([]*domain.MentorProfile, error) {
	return nil, f.err
}

func newUseCase(store *memory.Store) *MatchingUseCase {
	return NewMatchingUseCase(store, store, zap.NewNop())
}

func seedScenario(store *memory.Store) (*domain.ApplicantProfile, map[string]*domain.MentorProfile) {
	applicant := testApplicant()
	store.AddApplicant(applicant)

	mentors := map[string]*domain.MentorProfile{
		"C": testMentor("c@example.com", "US", newYork, []string{"eng"}, &domain.MentoringStyle{}),
		"D": testMentor("d@example.com", "GB", brighton, []string{"deu"}, &domain.MentoringStyle{Career: true, Code: true}),
		"B": testMentor("b@example.com", "FR", nantes, []string{"fra"}, &domain.MentoringStyle{Career: true}),
		"A": testMentor("a@example.com", "GB", brighton, []string{"eng"}, &domain.MentoringStyle{Career: true, Code: true}),
	}
	for _, key := range []string{"C", "D", "B", "A"} {
		store.AddMentor(mentors[key])
	}
	return applicant, mentors
}

func TestFindMatchesRanksDescending(t *testing.T) {
	store := memory.NewStore()
	applicant, mentors := seedScenario(store)
	uc := newUseCase(store)

	candidates, err := uc.FindMatches(context.Background(), applicant.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 3, "mentor without a shared language must be excluded")

	assert.Equal(t, mentors["A"].ID, candidates[0].Mentor.ID)
	assert.Equal(t, 100, candidates[0].Score)
	assert.Equal(t, mentors["B"].ID, candidates[1].Mentor.ID)
	assert.Equal(t, 25, candidates[1].Score)
	assert.Equal(t, mentors["C"].ID, candidates[2].Mentor.ID)
	assert.Equal(t, 5, candidates[2].Score)

	for _, c := range candidates {
		assert.NotEqual(t, mentors["D"].ID, c.Mentor.ID)
	}
}

func TestFindMatchesIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	applicant, _ := seedScenario(store)
	uc := newUseCase(store)

	first, err := uc.FindMatches(context.Background(), applicant.ID)
	require.NoError(t, err)
	second, err := uc.FindMatches(context.Background(), applicant.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankKeepsStorageOrderOnTies(t *testing.T) {
	store := memory.NewStore()
	applicant := testApplicant()
	store.AddApplicant(applicant)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		m := testMentor("tie@example.com", "US", newYork, []string{"eng"}, &domain.MentoringStyle{Career: true})
		store.AddMentor(m)
		ids = append(ids, m.ID)
	}
	better := testMentor("better@example.com", "GB", brighton, []string{"eng"}, &domain.MentoringStyle{})
	store.AddMentor(better)

	candidates, err := newUseCase(store).Rank(context.Background(), applicant)
	require.NoError(t, err)
	require.Len(t, candidates, 6)

	assert.Equal(t, better.ID, candidates[0].Mentor.ID)
	for i, id := range ids {
		assert.Equal(t, id, candidates[i+1].Mentor.ID)
		assert.Equal(t, 10, candidates[i+1].Score)
	}
}

func TestRankWithoutQuestionnaireIsEmpty(t *testing.T) {
	store := memory.NewStore()
	applicant, _ := seedScenario(store)
	applicant.Wants = nil

	candidates, err := newUseCase(store).Rank(context.Background(), applicant)
	require.NoError(t, err)
	assert.NotNil(t, candidates)
	assert.Empty(t, candidates)
}

func TestRankExcludesUnavailableAndPairedMentors(t *testing.T) {
	store := memory.NewStore()
	applicant, mentors := seedScenario(store)

	mentors["A"].AvailableSince = nil
	store.Seed(&domain.Mentorship{ID: uuid.New(), MentorID: mentors["B"].ID, ApplicantID: uuid.New(), Standing: domain.StandingPending})

	candidates, err := newUseCase(store).Rank(context.Background(), applicant)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, mentors["C"].ID, candidates[0].Mentor.ID)
}

func TestRankExcludesPreviouslyRejectedMentors(t *testing.T) {
	store := memory.NewStore()
	applicant, mentors := seedScenario(store)
	store.Seed(&domain.Mentorship{ID: uuid.New(), MentorID: mentors["A"].ID, ApplicantID: applicant.ID, Standing: domain.StandingRejected})

	best, err := newUseCase(store).BestMatch(context.Background(), applicant)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, mentors["B"].ID, best.Mentor.ID)
}

func TestRejectionIsOnlyAppliedFromApplicantSide(t *testing.T) {
	store := memory.NewStore()
	applicant, mentors := seedScenario(store)

	// A different applicant rejected mentor A; that must not affect this one.
	store.Seed(&domain.Mentorship{ID: uuid.New(), MentorID: mentors["A"].ID, ApplicantID: uuid.New(), Standing: domain.StandingRejected})

	best, err := newUseCase(store).BestMatch(context.Background(), applicant)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, mentors["A"].ID, best.Mentor.ID)
}

func TestBestMatchNone(t *testing.T) {
	store := memory.NewStore()
	applicant := testApplicant()
	store.AddApplicant(applicant)

	best, err := newUseCase(store).BestMatch(context.Background(), applicant)
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestFindMatchesUnknownApplicant(t *testing.T) {
	_, err := newUseCase(memory.NewStore()).FindMatches(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrApplicantNotFound)
}

func TestRankPropagatesRepositoryErrors(t *testing.T) {
	store := memory.NewStore()
	applicant, _ := seedScenario(store)
	profiles := &failingProfiles{Store: store, err: assert.AnError}

	uc := NewMatchingUseCase(profiles, store, zap.NewNop())
	_, err := uc.Rank(context.Background(), applicant)
	assert.ErrorIs(t, err, assert.AnError)
}
