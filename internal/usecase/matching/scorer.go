package matching

import (
	"strings"

	"github.com/goodscary/firstrubyfriend/internal/domain"
)

const (
	CountryMatchScore     = 40
	LocalPreferenceScore  = 15
	RemotePreferenceScore = 5
	LongDistanceScore     = 5
	MaxScore              = 100

	// localBandKm bounds the distance at which preference matches earn the
	// local rate.
	localBandKm = 1000.0
)

type distanceTier struct {
	maxKm float64
	score int
}

// distanceTiers is ordered by maxKm. Anything beyond the last tier, or an
// unknown distance, scores LongDistanceScore.
var distanceTiers = []distanceTier{
	{maxKm: 300, score: 30},  // same timezone
	{maxKm: 1000, score: 10}, // +/- 1-2 hours
}

// Breakdown is a scored candidate split into its components.
type Breakdown struct {
	Country    int      `json:"country"`
	Distance   int      `json:"distance"`
	Preference int      `json:"preference"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

func (b Breakdown) Total() int {
	return b.Country + b.Distance + b.Preference
}

// Score rates mentor for applicant on a 0-100 scale. The second result is
// false when the pair is ineligible: either side has no questionnaire, or
// they share no language.
func Score(applicant *domain.ApplicantProfile, mentor *domain.MentorProfile) (Breakdown, bool) {
	if applicant == nil || mentor == nil {
		return Breakdown{}, false
	}
	if !applicant.HasQuestionnaire() || !mentor.HasQuestionnaire() {
		return Breakdown{}, false
	}
	if !sharesLanguage(applicant.Languages, mentor.Languages) {
		return Breakdown{}, false
	}

	var b Breakdown
	distance, known := domain.DistanceKm(applicant.Location(), mentor.Location())
	if known {
		b.DistanceKm = &distance
	}

	b.Country = countryScore(applicant.CountryCode, mentor.CountryCode)
	b.Distance = distanceScore(distance, known)
	b.Preference = preferenceScore(applicant.Wants, mentor.Offers, distance, known)
	return b, true
}

func countryScore(a, b *string) int {
	if a == nil || b == nil {
		return 0
	}
	left, right := strings.TrimSpace(*a), strings.TrimSpace(*b)
	if left == "" || !strings.EqualFold(left, right) {
		return 0
	}
	return CountryMatchScore
}

func distanceScore(km float64, known bool) int {
	if !known {
		return LongDistanceScore
	}
	for _, tier := range distanceTiers {
		if km <= tier.maxKm {
			return tier.score
		}
	}
	return LongDistanceScore
}

func preferenceScore(wants *domain.MentorshipWants, offers *domain.MentoringStyle, km float64, known bool) int {
	unit := RemotePreferenceScore
	if known && km <= localBandKm {
		unit = LocalPreferenceScore
	}

	score := 0
	if wants.Career && offers.Career {
		score += unit
	}
	if wants.Code && offers.Code {
		score += unit
	}
	return score
}

func sharesLanguage(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, lang := range a {
		set[lang] = struct{}{}
	}
	for _, lang := range b {
		if _, ok := set[lang]; ok {
			return true
		}
	}
	return false
}
