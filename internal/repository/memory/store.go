// Package memory holds mutex-guarded repository implementations that enforce
// the same pairing invariants as the postgres schema.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/goodscary/firstrubyfriend/internal/repository"
	"github.com/google/uuid"
)

var (
	_ repository.ProfileRepository    = (*Store)(nil)
	_ repository.MentorshipRepository = (*Store)(nil)
)

// Store implements repository.ProfileRepository and repository.MentorshipRepository.
type Store struct {
	mu          sync.Mutex
	applicants  []*domain.ApplicantProfile
	mentors     []*domain.MentorProfile
	mentorships []*domain.Mentorship
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) AddApplicant(a *domain.ApplicantProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applicants = append(s.applicants, a)
}

func (s *Store) AddMentor(m *domain.MentorProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mentors = append(s.mentors, m)
}

// Seed stores an existing mentorship without any invariant checks, the way
// an import of historical data would.
func (s *Store) Seed(m *domain.Mentorship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.mentorships = append(s.mentorships, &cp)
}

func (s *Store) Mentorships() []domain.Mentorship {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Mentorship, 0, len(s.mentorships))
	for _, m := range s.mentorships {
		out = append(out, *m)
	}
	return out
}

func (s *Store) GetApplicant(_ context.Context, id uuid.UUID) (*domain.ApplicantProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.applicants {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrApplicantNotFound
}

func (s *Store) GetMentor(_ context.Context, id uuid.UUID) (*domain.MentorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.mentors {
		if m.ID == id && m.IsAvailable() {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrMentorNotFound
}

func (s *Store) ListUnmatchedApplicants(_ context.Context) ([]*domain.ApplicantProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.ApplicantProfile
	for _, a := range s.applicants {
		if s.hasOpenLocked(func(m *domain.Mentorship) bool { return m.ApplicantID == a.ID }) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) ListEligibleMentors(_ context.Context, excludeIDs []uuid.UUID) ([]*domain.MentorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	excluded := make(map[uuid.UUID]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	var out []*domain.MentorProfile
	for _, m := range s.mentors {
		if !m.IsAvailable() {
			continue
		}
		if _, skip := excluded[m.ID]; skip {
			continue
		}
		if s.hasOpenLocked(func(ms *domain.Mentorship) bool { return ms.MentorID == m.ID }) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) Create(_ context.Context, mentorship *domain.Mentorship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mentorship.MentorID == mentorship.ApplicantID {
		return domain.ErrSelfMentorship
	}
	if !mentorship.Standing.IsOpen() {
		return domain.ErrInvalidInitialStanding
	}
	if s.hasOpenLocked(func(m *domain.Mentorship) bool { return m.MentorID == mentorship.MentorID }) {
		return domain.ErrMentorUnavailable
	}
	if s.hasOpenLocked(func(m *domain.Mentorship) bool { return m.ApplicantID == mentorship.ApplicantID }) {
		return domain.ErrApplicantAlreadyMatched
	}

	if mentorship.ID == uuid.Nil {
		mentorship.ID = uuid.New()
	}
	now := s.now()
	mentorship.CreatedAt, mentorship.UpdatedAt = now, now
	cp := *mentorship
	s.mentorships = append(s.mentorships, &cp)
	return nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*domain.Mentorship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.findLocked(id); m != nil {
		cp := *m
		return &cp, nil
	}
	return nil, domain.ErrMentorshipNotFound
}

func (s *Store) ListByStanding(_ context.Context, standing domain.Standing) ([]*domain.Mentorship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Mentorship
	for _, m := range s.mentorships {
		if m.Standing == standing {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) RejectedMentorIDs(_ context.Context, applicantID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uuid.UUID
	for _, m := range s.mentorships {
		if m.ApplicantID == applicantID && m.Standing == domain.StandingRejected {
			ids = append(ids, m.MentorID)
		}
	}
	return ids, nil
}

func (s *Store) UpdateStanding(_ context.Context, id uuid.UUID, from, to domain.Standing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.findLocked(id)
	if m == nil {
		return domain.ErrMentorshipNotFound
	}
	if m.Standing != from {
		return domain.ErrStaleStanding
	}
	m.Standing = to
	m.UpdatedAt = s.now()
	return nil
}

func (s *Store) ApproveAllPending(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, m := range s.mentorships {
		if m.Standing == domain.StandingPending {
			m.Standing = domain.StandingActive
			m.UpdatedAt = s.now()
			count++
		}
	}
	return count, nil
}

func (s *Store) findLocked(id uuid.UUID) *domain.Mentorship {
	for _, m := range s.mentorships {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Store) hasOpenLocked(match func(*domain.Mentorship) bool) bool {
	for _, m := range s.mentorships {
		if m.Standing.IsOpen() && match(m) {
			return true
		}
	}
	return false
}
