package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/uiuxradar/uiux-radar/internal/ai"
	"github.com/uiuxradar/uiux-radar/internal/job"
	"github.com/uiuxradar/uiux-radar/internal/logger"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Scorer evaluates postings with Gemini and parses the structured score
// bundle out of the response.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	// maxDescriptionRunes bounds the description embedded in the prompt.
	maxDescriptionRunes = 1000

	missingFieldValue = "不明"
	emptyDescription  = "説明なし"
)

func NewScorer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// ScoreJob sends one posting to the model. A transport failure is returned as
// an error; a response that cannot be parsed degrades to the neutral bundle
// instead, so the caller only fails when no response was obtained at all.
func (s *Scorer) ScoreJob(ctx context.Context, raw *job.Raw) (*ai.ScoreBundle, error) {
	if raw == nil {
		return nil, fmt.Errorf("raw posting is required")
	}

	prompt := buildPrompt(raw)

	s.logger.Debug("gemini scoring request",
		zap.String("company", raw.CompanyName),
		zap.String("job_title", raw.JobTitle),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	response, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini scoring response",
		zap.String("company", raw.CompanyName),
		zap.Int("response_length", utf8.RuneCountInString(response)),
		zap.String("response_preview", logger.TruncateForLog(response, s.maxLogLen)),
	)

	return parseBundle(response), nil
}

func buildPrompt(raw *job.Raw) string {
	employmentType := strings.TrimSpace(raw.EmploymentType)
	if employmentType == "" {
		employmentType = missingFieldValue
	}

	location := strings.TrimSpace(raw.Location)
	if location == "" {
		location = missingFieldValue
	}

	description := strings.TrimSpace(raw.Description)
	if description == "" {
		description = emptyDescription
	} else if runes := []rune(description); len(runes) > maxDescriptionRunes {
		description = string(runes[:maxDescriptionRunes])
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{COMPANY_NAME}}", raw.CompanyName)
	prompt = strings.ReplaceAll(prompt, "{{JOB_TITLE}}", raw.JobTitle)
	prompt = strings.ReplaceAll(prompt, "{{EMPLOYMENT_TYPE}}", employmentType)
	prompt = strings.ReplaceAll(prompt, "{{LOCATION}}", location)
	prompt = strings.ReplaceAll(prompt, "{{DESCRIPTION}}", description)
	return prompt
}

// bundlePayload mirrors the JSON object the prompt requests from the model.
type bundlePayload struct {
	DispatchScore   int      `mapstructure:"dispatch_score"`
	UrgencyScore    int      `mapstructure:"urgency_score"`
	SkillMatchScore int      `mapstructure:"skill_match_score"`
	TotalScore      int      `mapstructure:"total_score"`
	Reason          string   `mapstructure:"reason"`
	Tags            []string `mapstructure:"tags"`
}

// parseBundle extracts the score bundle from the raw model output. Unparsable
// content yields the neutral bundle rather than an error.
func parseBundle(raw string) *ai.ScoreBundle {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		bundle := ai.NeutralBundle("解析エラー")
		bundle.Raw = raw
		return bundle
	}

	// Absent keys keep the neutral midpoint; weak typing tolerates scores
	// delivered as strings.
	payload := bundlePayload{
		DispatchScore:   ai.NeutralScore,
		UrgencyScore:    ai.NeutralScore,
		SkillMatchScore: ai.NeutralScore,
		TotalScore:      ai.NeutralScore,
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err == nil {
		err = decoder.Decode(data)
	}
	if err != nil {
		bundle := ai.NeutralBundle("解析エラー")
		bundle.Raw = raw
		return bundle
	}

	tags := payload.Tags
	if tags == nil {
		tags = []string{}
	}

	return &ai.ScoreBundle{
		DispatchScore:   clampScore(payload.DispatchScore),
		UrgencyScore:    clampScore(payload.UrgencyScore),
		SkillMatchScore: clampScore(payload.SkillMatchScore),
		TotalScore:      clampScore(payload.TotalScore),
		Reason:          strings.TrimSpace(payload.Reason),
		Tags:            tags,
		Raw:             raw,
	}
}

// extractJSON strips a surrounding fenced code block when present.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
