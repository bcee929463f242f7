package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/uiuxradar/uiux-radar/internal/ai"
	"github.com/uiuxradar/uiux-radar/internal/job"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testRaw() *job.Raw {
	return &job.Raw{
		Source:         "herp",
		CompanyName:    "株式会社テスト",
		JobTitle:       "UI/UXデザイナー",
		Description:    "Figmaを使ったデザインシステムの構築",
		Location:       "フルリモート",
		EmploymentType: "業務委託",
	}
}

func TestScoreJobParsesFencedJSON(t *testing.T) {
	generator := &stubGenerator{response: "```json\n" + `{
		"dispatch_score": 80,
		"urgency_score": 65,
		"skill_match_score": 90,
		"total_score": 78,
		"reason": "即戦力のUI/UX案件",
		"tags": ["即戦力", "高単価"]
	}` + "\n```"}

	scorer := NewScorer(generator, nil, 0)

	bundle, err := scorer.ScoreJob(context.Background(), testRaw())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if bundle.DispatchScore != 80 || bundle.UrgencyScore != 65 || bundle.SkillMatchScore != 90 {
		t.Fatalf("unexpected component scores: %+v", bundle)
	}
	if bundle.TotalScore != 78 {
		t.Fatalf("expected total score 78, got %d", bundle.TotalScore)
	}
	if bundle.Reason != "即戦力のUI/UX案件" {
		t.Fatalf("unexpected reason: %q", bundle.Reason)
	}
	if len(bundle.Tags) != 2 || bundle.Tags[0] != "即戦力" {
		t.Fatalf("unexpected tags: %v", bundle.Tags)
	}
}

func TestScoreJobCoercesStringScores(t *testing.T) {
	generator := &stubGenerator{response: `{"total_score": "85", "reason": "ok"}`}

	scorer := NewScorer(generator, nil, 0)

	bundle, err := scorer.ScoreJob(context.Background(), testRaw())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if bundle.TotalScore != 85 {
		t.Fatalf("expected coerced total score 85, got %d", bundle.TotalScore)
	}
}

func TestScoreJobClampsOutOfRangeScores(t *testing.T) {
	generator := &stubGenerator{response: `{"total_score": 150, "dispatch_score": -5}`}

	scorer := NewScorer(generator, nil, 0)

	bundle, err := scorer.ScoreJob(context.Background(), testRaw())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if bundle.TotalScore != 100 {
		t.Fatalf("expected total score clamped to 100, got %d", bundle.TotalScore)
	}
	if bundle.DispatchScore != 0 {
		t.Fatalf("expected dispatch score clamped to 0, got %d", bundle.DispatchScore)
	}
}

func TestScoreJobMissingKeysDefaultToNeutral(t *testing.T) {
	generator := &stubGenerator{response: `{"reason": "判断材料が少ない"}`}

	scorer := NewScorer(generator, nil, 0)

	bundle, err := scorer.ScoreJob(context.Background(), testRaw())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if bundle.TotalScore != ai.NeutralScore || bundle.UrgencyScore != ai.NeutralScore {
		t.Fatalf("expected neutral defaults for missing keys, got %+v", bundle)
	}
	if bundle.Tags == nil {
		t.Fatalf("tags must never be nil")
	}
}

func TestScoreJobUnparsableResponseDegradesToNeutral(t *testing.T) {
	generator := &stubGenerator{response: "申し訳ありませんが、JSONを生成できませんでした。"}

	scorer := NewScorer(generator, nil, 0)

	bundle, err := scorer.ScoreJob(context.Background(), testRaw())
	if err != nil {
		t.Fatalf("parse failures must not surface as errors, got: %s", err)
	}
	if bundle.TotalScore != ai.NeutralScore {
		t.Fatalf("expected neutral total score, got %d", bundle.TotalScore)
	}
	if bundle.Reason != "解析エラー" {
		t.Fatalf("unexpected reason: %q", bundle.Reason)
	}
	if bundle.Raw != generator.response {
		t.Fatalf("raw response must be preserved for debugging")
	}
}

func TestScoreJobTransportErrorPropagates(t *testing.T) {
	generator := &stubGenerator{err: errors.New("context deadline exceeded")}

	scorer := NewScorer(generator, nil, 0)

	if _, err := scorer.ScoreJob(context.Background(), testRaw()); err == nil {
		t.Fatalf("expected a transport error")
	}
}

func TestScoreJobRejectsNilPosting(t *testing.T) {
	scorer := NewScorer(&stubGenerator{}, nil, 0)

	if _, err := scorer.ScoreJob(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for a nil posting")
	}
}

func TestBuildPromptInterpolatesFields(t *testing.T) {
	prompt := buildPrompt(testRaw())

	for _, want := range []string{"株式会社テスト", "UI/UXデザイナー", "業務委託", "フルリモート", "デザインシステム"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("prompt still contains placeholders")
	}
}

func TestBuildPromptFillsMissingFields(t *testing.T) {
	prompt := buildPrompt(&job.Raw{CompanyName: "株式会社テスト", JobTitle: "デザイナー"})

	if !strings.Contains(prompt, missingFieldValue) {
		t.Fatalf("expected %q for empty employment type and location", missingFieldValue)
	}
	if !strings.Contains(prompt, emptyDescription) {
		t.Fatalf("expected %q for an empty description", emptyDescription)
	}
}

func TestBuildPromptTruncatesLongDescription(t *testing.T) {
	raw := testRaw()
	raw.Description = strings.Repeat("あ", maxDescriptionRunes+500)

	prompt := buildPrompt(raw)

	if strings.Contains(prompt, strings.Repeat("あ", maxDescriptionRunes+1)) {
		t.Fatalf("description not truncated to %d runes", maxDescriptionRunes)
	}
	if !strings.Contains(prompt, strings.Repeat("あ", maxDescriptionRunes)) {
		t.Fatalf("truncated description missing from prompt")
	}
}

func TestExtractJSONVariants(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
