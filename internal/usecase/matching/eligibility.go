package matching

import (
	"context"
	"fmt"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/goodscary/firstrubyfriend/internal/repository"
)

// EligibilityFilter resolves the candidate mentor pool for an applicant:
// available mentors without an open mentorship, minus the mentors this
// applicant was previously rejected from. Rejections are only applied from
// the applicant's side.
type EligibilityFilter struct {
	profileRepo    repository.ProfileRepository
	mentorshipRepo repository.MentorshipRepository
}

func NewEligibilityFilter(
	profileRepo repository.ProfileRepository,
	mentorshipRepo repository.MentorshipRepository,
) *EligibilityFilter {
	return &EligibilityFilter{
		profileRepo:    profileRepo,
		mentorshipRepo: mentorshipRepo,
	}
}

func (f *EligibilityFilter) EligibleMentors(ctx context.Context, applicant *domain.ApplicantProfile) ([]*domain.MentorProfile, error) {
	rejected, err := f.mentorshipRepo.RejectedMentorIDs(ctx, applicant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rejected mentors: %w", err)
	}

	mentors, err := f.profileRepo.ListEligibleMentors(ctx, rejected)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible mentors: %w", err)
	}
	return mentors, nil
}
