package automatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/goodscary/firstrubyfriend/internal/infrastructure/cache"
	"github.com/goodscary/firstrubyfriend/internal/repository"
	"github.com/goodscary/firstrubyfriend/internal/usecase/matching"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	lockKey         = "automatch:lock"
	lastReportKey   = "automatch:last_report"
	lastReportTTL   = 30 * 24 * time.Hour
	belowThreshold  = "score below threshold"
	defaultLockTTL  = 5 * time.Minute
	defaultMaxError = 100
)

// Matcher is the slice of the matching engine the orchestrator depends on.
type Matcher interface {
	UnmatchedApplicants(ctx context.Context) ([]*domain.ApplicantProfile, error)
	BestMatch(ctx context.Context, applicant *domain.ApplicantProfile) (*matching.Candidate, error)
}

type Config struct {
	Workers           int
	MaxReportedErrors int
	LockTTL           time.Duration
}

type AutoMatchUseCase struct {
	matcher        Matcher
	mentorshipRepo repository.MentorshipRepository
	cache          cache.Cache
	locker         cache.Locker
	cfg            Config
	logger         *zap.Logger
	now            func() time.Time
}

// NewAutoMatchUseCase wires the orchestrator. reports and locker may be nil,
// in which case runs are neither persisted nor serialized across instances.
func NewAutoMatchUseCase(
	matcher Matcher,
	mentorshipRepo repository.MentorshipRepository,
	reports cache.Cache,
	locker cache.Locker,
	cfg Config,
	logger *zap.Logger,
) *AutoMatchUseCase {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxReportedErrors <= 0 {
		cfg.MaxReportedErrors = defaultMaxError
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}

	return &AutoMatchUseCase{
		matcher:        matcher,
		mentorshipRepo: mentorshipRepo,
		cache:          reports,
		locker:         locker,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

// CreatedMatch describes a pending mentorship proposed by a run.
type CreatedMatch struct {
	MentorshipID   uuid.UUID `json:"mentorship_id"`
	ApplicantID    uuid.UUID `json:"applicant_id"`
	ApplicantEmail string    `json:"applicant_email"`
	MentorID       uuid.UUID `json:"mentor_id"`
	MentorEmail    string    `json:"mentor_email"`
	Score          int       `json:"score"`
}

// Failure explains why an applicant with a candidate was left unmatched.
type Failure struct {
	ApplicantID    uuid.UUID `json:"applicant_id"`
	ApplicantEmail string    `json:"applicant_email"`
	Reason         string    `json:"reason"`
	Score          *int      `json:"score,omitempty"`
}

// Report aggregates one run. Success is false whenever any failure was
// recorded, even though the run itself completed.
type Report struct {
	Success             bool           `json:"success"`
	MinimumScore        int            `json:"minimum_score"`
	ApplicantsProcessed int            `json:"applicants_processed"`
	Skipped             int            `json:"skipped"`
	MatchesCreated      int            `json:"matches_created"`
	Matches             []CreatedMatch `json:"matches"`
	FailureCount        int            `json:"failure_count"`
	Errors              []Failure      `json:"errors"`
	StartedAt           time.Time      `json:"started_at"`
	FinishedAt          time.Time      `json:"finished_at"`
}

type outcome struct {
	match   *CreatedMatch
	failure *Failure
}

// AutoMatchAll proposes a pending mentorship for every unmatched applicant
// whose best candidate scores at least minimumScore. Per-applicant rule
// violations are recorded in the report; repository failures abort the run.
func (uc *AutoMatchUseCase) AutoMatchAll(ctx context.Context, minimumScore int) (*Report, error) {
	if minimumScore < 0 || minimumScore > matching.MaxScore {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidMinimumScore, minimumScore)
	}

	if uc.locker != nil {
		lease, ok, err := uc.locker.TryLock(ctx, lockKey, uc.cfg.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire auto-match lock: %w", err)
		}
		if !ok {
			return nil, domain.ErrAutoMatchInProgress
		}
		stop := uc.keepAlive(ctx, lease)
		defer func() {
			stop()
			if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("failed to release auto-match lock", zap.Error(err))
			}
		}()
	}

	report := &Report{
		MinimumScore: minimumScore,
		Matches:      []CreatedMatch{},
		Errors:       []Failure{},
		StartedAt:    uc.now().UTC(),
	}

	applicants, err := uc.matcher.UnmatchedApplicants(ctx)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("auto-match started",
		zap.Int("applicants", len(applicants)),
		zap.Int("minimum_score", minimumScore),
		zap.Int("workers", uc.cfg.Workers),
	)

	outcomes, err := uc.process(ctx, applicants, minimumScore)
	if err != nil {
		uc.logger.Error("auto-match aborted", zap.Error(err))
		return nil, err
	}

	for _, o := range outcomes {
		report.ApplicantsProcessed++
		switch {
		case o.match != nil:
			report.Matches = append(report.Matches, *o.match)
		case o.failure != nil:
			report.FailureCount++
			if len(report.Errors) < uc.cfg.MaxReportedErrors {
				report.Errors = append(report.Errors, *o.failure)
			}
		default:
			report.Skipped++
		}
	}
	report.MatchesCreated = len(report.Matches)
	report.Success = report.FailureCount == 0
	report.FinishedAt = uc.now().UTC()

	uc.logger.Info("auto-match finished",
		zap.Bool("success", report.Success),
		zap.Int("matches_created", report.MatchesCreated),
		zap.Int("failures", report.FailureCount),
		zap.Int("skipped", report.Skipped),
	)

	uc.storeReport(ctx, report)
	return report, nil
}

// keepAlive refreshes lease every third of the lock ttl until stop returns,
// so runs longer than the ttl stay exclusive.
func (uc *AutoMatchUseCase) keepAlive(ctx context.Context, lease cache.Lease) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(max(uc.cfg.LockTTL/3, time.Millisecond))
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := lease.Refresh(ctx)
				if err == nil || ctx.Err() != nil {
					continue
				}
				uc.logger.Warn("failed to refresh auto-match lock", zap.Error(err))
				if errors.Is(err, cache.ErrLockLost) {
					return
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// LastReport returns the report of the most recent completed run.
func (uc *AutoMatchUseCase) LastReport(ctx context.Context) (*Report, error) {
	if uc.cache == nil {
		return nil, domain.ErrAutoMatchReportNotFound
	}

	var report Report
	hit, err := uc.cache.GetJSON(ctx, lastReportKey, &report)
	if err != nil {
		return nil, fmt.Errorf("failed to read auto-match report: %w", err)
	}
	if !hit {
		return nil, domain.ErrAutoMatchReportNotFound
	}
	return &report, nil
}

func (uc *AutoMatchUseCase) storeReport(ctx context.Context, report *Report) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.SetJSON(context.WithoutCancel(ctx), lastReportKey, report, lastReportTTL); err != nil {
		uc.logger.Warn("failed to store auto-match report", zap.Error(err))
	}
}

// process runs every applicant and returns outcomes in applicant order.
func (uc *AutoMatchUseCase) process(ctx context.Context, applicants []*domain.ApplicantProfile, minimumScore int) ([]outcome, error) {
	outcomes := make([]outcome, len(applicants))

	if uc.cfg.Workers == 1 {
		for i, applicant := range applicants {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			o, err := uc.matchApplicant(ctx, applicant, minimumScore)
			if err != nil {
				return nil, err
			}
			outcomes[i] = o
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.Workers)
	for i, applicant := range applicants {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o, err := uc.matchApplicant(gctx, applicant, minimumScore)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (uc *AutoMatchUseCase) matchApplicant(ctx context.Context, applicant *domain.ApplicantProfile, minimumScore int) (outcome, error) {
	best, err := uc.matcher.BestMatch(ctx, applicant)
	if err != nil {
		return outcome{}, fmt.Errorf("failed to rank mentors for applicant %s: %w", applicant.ID, err)
	}
	if best == nil {
		return outcome{}, nil
	}

	if best.Score < minimumScore {
		score := best.Score
		uc.logger.Info("best match below threshold",
			zap.String("applicant_id", applicant.ID.String()),
			zap.Int("score", score),
			zap.Int("minimum_score", minimumScore),
		)
		return outcome{failure: &Failure{
			ApplicantID:    applicant.ID,
			ApplicantEmail: applicant.Email,
			Reason:         belowThreshold,
			Score:          &score,
		}}, nil
	}

	mentorship, err := domain.NewMentorship(best.Mentor.ID, applicant.ID, domain.StandingPending)
	if err == nil {
		err = uc.mentorshipRepo.Create(ctx, mentorship)
	}
	if err != nil {
		if !domain.IsValidationError(err) {
			return outcome{}, fmt.Errorf("failed to create mentorship for applicant %s: %w", applicant.ID, err)
		}
		score := best.Score
		uc.logger.Warn("mentorship rejected by validation",
			zap.String("applicant_id", applicant.ID.String()),
			zap.String("mentor_id", best.Mentor.ID.String()),
			zap.Error(err),
		)
		return outcome{failure: &Failure{
			ApplicantID:    applicant.ID,
			ApplicantEmail: applicant.Email,
			Reason:         err.Error(),
			Score:          &score,
		}}, nil
	}

	return outcome{match: &CreatedMatch{
		MentorshipID:   mentorship.ID,
		ApplicantID:    applicant.ID,
		ApplicantEmail: applicant.Email,
		MentorID:       best.Mentor.ID,
		MentorEmail:    best.Mentor.Email,
		Score:          best.Score,
	}}, nil
}
