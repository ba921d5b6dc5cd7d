package mentorship

import (
	"context"
	"slices"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/goodscary/firstrubyfriend/internal/infrastructure/gemini"
	"github.com/goodscary/firstrubyfriend/internal/repository"
	"github.com/goodscary/firstrubyfriend/internal/usecase/matching"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Summarizer produces a reviewer-facing note for a pairing.
type Summarizer interface {
	SummarizePairing(ctx context.Context, p gemini.Pairing) (string, error)
}

type MentorshipUseCase struct {
	mentorshipRepo repository.MentorshipRepository
	profileRepo    repository.ProfileRepository
	summarizer     Summarizer
	logger         *zap.Logger
}

// NewMentorshipUseCase wires the admin review flow. summarizer may be nil.
func NewMentorshipUseCase(
	mentorshipRepo repository.MentorshipRepository,
	profileRepo repository.ProfileRepository,
	summarizer Summarizer,
	logger *zap.Logger,
) *MentorshipUseCase {
	return &MentorshipUseCase{
		mentorshipRepo: mentorshipRepo,
		profileRepo:    profileRepo,
		summarizer:     summarizer,
		logger:         logger,
	}
}

// ManualMatchRequest pairs an applicant with a mentor chosen by an admin.
type ManualMatchRequest struct {
	ApplicantID uuid.UUID `json:"applicant_id" binding:"required"`
	MentorID    uuid.UUID `json:"mentor_id" binding:"required"`
}

// Summary is the review view of one mentorship.
type Summary struct {
	MentorshipID uuid.UUID          `json:"mentorship_id"`
	Standing     domain.Standing    `json:"standing"`
	Score        int                `json:"score"`
	Eligible     bool               `json:"eligible"`
	Breakdown    matching.Breakdown `json:"breakdown"`
	Text         string             `json:"text"`
	Generated    bool               `json:"generated"`
}

// ManualMatch creates an active mentorship without scoring. The pairing
// invariants still apply.
func (uc *MentorshipUseCase) ManualMatch(ctx context.Context, req *ManualMatchRequest) (*domain.Mentorship, error) {
	if _, err := uc.profileRepo.GetApplicant(ctx, req.ApplicantID); err != nil {
		return nil, err
	}
	if _, err := uc.profileRepo.GetMentor(ctx, req.MentorID); err != nil {
		return nil, err
	}

	mentorship, err := domain.NewMentorship(req.MentorID, req.ApplicantID, domain.StandingActive)
	if err != nil {
		return nil, err
	}
	if err := uc.mentorshipRepo.Create(ctx, mentorship); err != nil {
		return nil, err
	}

	uc.logger.Info("manual mentorship created",
		zap.String("mentorship_id", mentorship.ID.String()),
		zap.String("applicant_id", req.ApplicantID.String()),
		zap.String("mentor_id", req.MentorID.String()),
	)
	return mentorship, nil
}

func (uc *MentorshipUseCase) ListByStanding(ctx context.Context, standing domain.Standing) ([]*domain.Mentorship, error) {
	return uc.mentorshipRepo.ListByStanding(ctx, standing)
}

func (uc *MentorshipUseCase) Approve(ctx context.Context, id uuid.UUID) (*domain.Mentorship, error) {
	return uc.transition(ctx, id, domain.StandingActive)
}

// Reject moves a pending mentorship to rejected, which keeps the mentor out
// of the applicant's future candidates.
func (uc *MentorshipUseCase) Reject(ctx context.Context, id uuid.UUID) (*domain.Mentorship, error) {
	return uc.transition(ctx, id, domain.StandingRejected)
}

func (uc *MentorshipUseCase) End(ctx context.Context, id uuid.UUID) (*domain.Mentorship, error) {
	return uc.transition(ctx, id, domain.StandingEnded)
}

func (uc *MentorshipUseCase) ApproveAllPending(ctx context.Context) (int, error) {
	count, err := uc.mentorshipRepo.ApproveAllPending(ctx)
	if err != nil {
		return 0, err
	}
	uc.logger.Info("approved pending mentorships", zap.Int("count", count))
	return count, nil
}

func (uc *MentorshipUseCase) transition(ctx context.Context, id uuid.UUID, next domain.Standing) (*domain.Mentorship, error) {
	mentorship, err := uc.mentorshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := mentorship.Standing
	if err := mentorship.TransitionTo(next); err != nil {
		return nil, err
	}
	if err := uc.mentorshipRepo.UpdateStanding(ctx, id, from, next); err != nil {
		return nil, err
	}

	uc.logger.Info("mentorship standing changed",
		zap.String("mentorship_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
	)
	return uc.mentorshipRepo.GetByID(ctx, id)
}

// Summary scores the pair again and describes it. Model failures fall back
// to a fixed template; the score never depends on the model.
func (uc *MentorshipUseCase) Summary(ctx context.Context, id uuid.UUID) (*Summary, error) {
	mentorship, err := uc.mentorshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applicant, err := uc.profileRepo.GetApplicant(ctx, mentorship.ApplicantID)
	if err != nil {
		return nil, err
	}
	mentor, err := uc.profileRepo.GetMentor(ctx, mentorship.MentorID)
	if err != nil {
		return nil, err
	}

	breakdown, eligible := matching.Score(applicant, mentor)
	pairing := pairingFacts(applicant, mentor, breakdown)

	summary := &Summary{
		MentorshipID: mentorship.ID,
		Standing:     mentorship.Standing,
		Score:        breakdown.Total(),
		Eligible:     eligible,
		Breakdown:    breakdown,
	}

	if uc.summarizer != nil {
		text, err := uc.summarizer.SummarizePairing(ctx, pairing)
		if err == nil {
			summary.Text, summary.Generated = text, true
			return summary, nil
		}
		uc.logger.Warn("falling back to template summary",
			zap.String("mentorship_id", id.String()),
			zap.Error(err),
		)
	}

	summary.Text = gemini.FallbackSummary(pairing)
	return summary, nil
}

func pairingFacts(a *domain.ApplicantProfile, m *domain.MentorProfile, b matching.Breakdown) gemini.Pairing {
	p := gemini.Pairing{
		ApplicantEmail: a.Email,
		MentorEmail:    m.Email,
		DistanceKm:     b.DistanceKm,
		Score:          b.Total(),
	}
	if a.CountryCode != nil {
		p.ApplicantCountry = *a.CountryCode
	}
	if m.CountryCode != nil {
		p.MentorCountry = *m.CountryCode
	}
	if a.Wants != nil {
		p.WantsCareer, p.WantsCode = a.Wants.Career, a.Wants.Code
	}
	if m.Offers != nil {
		p.OffersCareer, p.OffersCode = m.Offers.Career, m.Offers.Code
	}
	for _, lang := range a.Languages {
		if slices.Contains(m.Languages, lang) {
			p.SharedLanguages = append(p.SharedLanguages, lang)
		}
	}
	return p
}

