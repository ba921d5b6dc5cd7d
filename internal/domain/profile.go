package domain

import (
	"time"

	"github.com/google/uuid"
)

// MentorshipWants holds the applicant's questionnaire answers relevant to matching.
type MentorshipWants struct {
	Career bool `json:"career" db:"looking_for_career_mentorship"`
	Code   bool `json:"code" db:"looking_for_code_mentorship"`
}

// MentoringStyle holds the mentor's questionnaire answers relevant to matching.
type MentoringStyle struct {
	Career bool `json:"career" db:"preferred_style_career"`
	Code   bool `json:"code" db:"preferred_style_code"`
}

// ApplicantProfile is the read-only projection of an applicant used by the matching engine.
// Wants is nil when the applicant has not filled in the questionnaire.
type ApplicantProfile struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	CountryCode *string          `json:"country_code"`
	City        *string          `json:"city"`
	Latitude    *float64         `json:"latitude"`
	Longitude   *float64         `json:"longitude"`
	Languages   []string         `json:"languages"`
	Wants       *MentorshipWants `json:"wants"`
	RequestedAt *time.Time       `json:"requested_at"`
}

func (a *ApplicantProfile) Location() *GeoPoint {
	return NewGeoPoint(a.Latitude, a.Longitude)
}

// HasQuestionnaire reports whether the applicant can be matched at all.
func (a *ApplicantProfile) HasQuestionnaire() bool {
	return a.Wants != nil
}

// MentorProfile is the read-only projection of a mentor used by the matching engine.
type MentorProfile struct {
	ID             uuid.UUID       `json:"id"`
	Email          string          `json:"email"`
	CountryCode    *string         `json:"country_code"`
	City           *string         `json:"city"`
	Latitude       *float64        `json:"latitude"`
	Longitude      *float64        `json:"longitude"`
	Languages      []string        `json:"languages"`
	Offers         *MentoringStyle `json:"offers"`
	AvailableSince *time.Time      `json:"available_since"`

	// RejectedApplicantIDs lists applicants whose pairing with this mentor was
	// rejected. Matching never excludes on it; rejection only counts from the
	// applicant's side.
	RejectedApplicantIDs []uuid.UUID `json:"rejected_applicant_ids,omitempty"`
}

func (m *MentorProfile) Location() *GeoPoint {
	return NewGeoPoint(m.Latitude, m.Longitude)
}

func (m *MentorProfile) HasQuestionnaire() bool {
	return m.Offers != nil
}

func (m *MentorProfile) IsAvailable() bool {
	return m.AvailableSince != nil
}
