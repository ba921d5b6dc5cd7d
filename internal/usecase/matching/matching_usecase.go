package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/goodscary/firstrubyfriend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchingUseCase struct {
	profileRepo repository.ProfileRepository
	filter      *EligibilityFilter
	logger      *zap.Logger
}

func NewMatchingUseCase(
	profileRepo repository.ProfileRepository,
	mentorshipRepo repository.MentorshipRepository,
	logger *zap.Logger,
) *MatchingUseCase {
	return &MatchingUseCase{
		profileRepo: profileRepo,
		filter:      NewEligibilityFilter(profileRepo, mentorshipRepo),
		logger:      logger,
	}
}

// Candidate is a scored mentor for one applicant.
type Candidate struct {
	Mentor    *domain.MentorProfile `json:"mentor"`
	Score     int                   `json:"score"`
	Breakdown Breakdown             `json:"breakdown"`
}

// FindMatches returns the ranked candidates for the applicant with the given id.
func (uc *MatchingUseCase) FindMatches(ctx context.Context, applicantID uuid.UUID) ([]Candidate, error) {
	applicant, err := uc.profileRepo.GetApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	return uc.Rank(ctx, applicant)
}

// Rank scores every eligible mentor and orders them by score, highest first.
// Equal scores keep the order in which mentors were enumerated from storage.
func (uc *MatchingUseCase) Rank(ctx context.Context, applicant *domain.ApplicantProfile) ([]Candidate, error) {
	if !applicant.HasQuestionnaire() {
		uc.logger.Debug("applicant has no questionnaire, skipping ranking",
			zap.String("applicant_id", applicant.ID.String()),
		)
		return []Candidate{}, nil
	}

	mentors, err := uc.filter.EligibleMentors(ctx, applicant)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(mentors))
	for _, mentor := range mentors {
		breakdown, ok := Score(applicant, mentor)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			Mentor:    mentor,
			Score:     breakdown.Total(),
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	uc.logger.Debug("ranked mentors",
		zap.String("applicant_id", applicant.ID.String()),
		zap.Int("initial", len(mentors)),
		zap.Int("dropped", len(mentors)-len(candidates)),
		zap.Int("left", len(candidates)),
	)

	return candidates, nil
}

// BestMatch returns the top ranked candidate, or nil if there is none.
func (uc *MatchingUseCase) BestMatch(ctx context.Context, applicant *domain.ApplicantProfile) (*Candidate, error) {
	candidates, err := uc.Rank(ctx, applicant)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[0], nil
}

func (uc *MatchingUseCase) UnmatchedApplicants(ctx context.Context) ([]*domain.ApplicantProfile, error) {
	applicants, err := uc.profileRepo.ListUnmatchedApplicants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unmatched applicants: %w", err)
	}
	return applicants, nil
}
