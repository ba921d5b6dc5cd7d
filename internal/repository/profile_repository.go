package repository

import (
	"context"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetApplicant(ctx context.Context, id uuid.UUID) (*domain.ApplicantProfile, error)
	GetMentor(ctx context.Context, id uuid.UUID) (*domain.MentorProfile, error)
	// ListUnmatchedApplicants returns applicants without a pending or active
	// mentorship, in insertion order.
	ListUnmatchedApplicants(ctx context.Context) ([]*domain.ApplicantProfile, error)
	// ListEligibleMentors returns mentors that are available, have no pending
	// or active mentorship and are not in excludeIDs, in insertion order.
	ListEligibleMentors(ctx context.Context, excludeIDs []uuid.UUID) ([]*domain.MentorProfile, error)
}
