package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const modelName = "gemini-1.5-pro"

// Pairing is the set of facts a reviewer sees about a proposed mentorship.
type Pairing struct {
	ApplicantEmail   string
	MentorEmail      string
	ApplicantCountry string
	MentorCountry    string
	SharedLanguages  []string
	DistanceKm       *float64
	WantsCareer      bool
	WantsCode        bool
	OffersCareer     bool
	OffersCode       bool
	Score            int
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// SummarizePairing asks the model for a short note to the admin reviewing a
// pairing. The score is passed for context only.
func (c *GeminiClient) SummarizePairing(ctx context.Context, p Pairing) (string, error) {
	prompt := fmt.Sprintf(`
		You help an administrator review a proposed mentorship between a Ruby
		mentor and an applicant.
		Applicant: country %s, wants career help: %t, wants code help: %t.
		Mentor: country %s, offers career help: %t, offers code help: %t.
		Shared languages: %s. Distance: %s. Match score: %d out of 100.

		Task: Write two short sentences on what this pair has in common and
		anything the reviewer should double-check.
		Language: English.
		Output: Just the text.
	`,
		orUnknown(p.ApplicantCountry), p.WantsCareer, p.WantsCode,
		orUnknown(p.MentorCountry), p.OffersCareer, p.OffersCode,
		strings.Join(p.SharedLanguages, ", "), formatDistance(p.DistanceKm), p.Score,
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Warn("gemini request failed", zap.Error(err))
		return "", fmt.Errorf("failed to generate pairing summary: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no content generated")
	}
	return text, nil
}

// FallbackSummary builds the summary shown when no model is configured or
// the model call fails.
func FallbackSummary(p Pairing) string {
	var common []string
	if p.ApplicantCountry != "" && strings.EqualFold(p.ApplicantCountry, p.MentorCountry) {
		common = append(common, "live in "+strings.ToUpper(p.ApplicantCountry))
	}
	if len(p.SharedLanguages) > 0 {
		common = append(common, "speak "+strings.Join(p.SharedLanguages, ", "))
	}
	if p.WantsCareer && p.OffersCareer {
		common = append(common, "line up on career mentoring")
	}
	if p.WantsCode && p.OffersCode {
		common = append(common, "line up on code mentoring")
	}

	summary := fmt.Sprintf("%s and %s scored %d.", p.ApplicantEmail, p.MentorEmail, p.Score)
	if len(common) > 0 {
		summary += " They " + strings.Join(common, " and ") + "."
	}
	return summary + " Distance: " + formatDistance(p.DistanceKm) + "."
}

func formatDistance(km *float64) string {
	if km == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.0f km", *km)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
