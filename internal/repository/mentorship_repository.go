package repository

import (
	"context"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/google/uuid"
)

type MentorshipRepository interface {
	// Create inserts the mentorship atomically. It returns
	// domain.ErrMentorUnavailable or domain.ErrApplicantAlreadyMatched when
	// either side already has a pending or active mentorship.
	Create(ctx context.Context, mentorship *domain.Mentorship) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Mentorship, error)
	ListByStanding(ctx context.Context, standing domain.Standing) ([]*domain.Mentorship, error)
	RejectedMentorIDs(ctx context.Context, applicantID uuid.UUID) ([]uuid.UUID, error)
	// UpdateStanding moves a mentorship from one standing to another and
	// returns domain.ErrStaleStanding if it is no longer in from.
	UpdateStanding(ctx context.Context, id uuid.UUID, from, to domain.Standing) error
	ApproveAllPending(ctx context.Context) (int, error)
}
