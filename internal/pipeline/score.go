package pipeline

import (
	"strings"

	"github.com/uiuxradar/uiux-radar/internal/job"
)

const (
	scoreMin = 0
	scoreMax = 100

	// BaseScore is the starting point every posting earns before any
	// keyword adjustments.
	BaseScore = 20
)

// WeightedKeyword is one scoring rule: a phrase and the points it contributes
// when found. Negative points are penalties.
type WeightedKeyword struct {
	Keyword string
	Points  int
}

// ScoreTables holds the weighted keyword tables the rule engine evaluates.
// The tables are read-only; declared order matters for Employment and Remote,
// which use first-match-wins semantics.
type ScoreTables struct {
	Base       int
	Title      []WeightedKeyword
	Skill      []WeightedKeyword
	Employment []WeightedKeyword
	Remote     []WeightedKeyword
	Negative   []WeightedKeyword
}

// DefaultScoreTables returns the production scoring policy.
func DefaultScoreTables() *ScoreTables {
	return &ScoreTables{
		Base: BaseScore,
		Title: []WeightedKeyword{
			{"UIデザイナー", 30},
			{"UXデザイナー", 30},
			{"UI/UXデザイナー", 35},
			{"プロダクトデザイナー", 30},
			{"UXリサーチャー", 25},
			{"デザインマネージャー", 20},
			{"デザインリード", 20},
			{"シニアデザイナー", 15},
			{"デザイナー", 10},
		},
		Skill: []WeightedKeyword{
			{"Figma", 15},
			{"デザインシステム", 12},
			{"UXリサーチ", 10},
			{"ユーザーインタビュー", 8},
			{"プロトタイピング", 8},
			{"ユーザビリティ", 8},
			{"ペルソナ", 5},
			{"カスタマージャーニー", 5},
			{"Adobe XD", 5},
			{"Sketch", 5},
			{"InVision", 3},
			{"Zeplin", 3},
		},
		Employment: []WeightedKeyword{
			{"業務委託", 10},
			{"契約社員", 5},
			{"正社員", 0},
		},
		Remote: []WeightedKeyword{
			{"フルリモート", 8},
			{"full_remote", 8},
			{"リモート可", 5},
			{"hybrid", 3},
			{"在宅勤務", 3},
		},
		Negative: []WeightedKeyword{
			{"バナー", -15},
			{"広告デザイン", -15},
			{"グラフィックデザイナー", -12},
			{"DTP", -10},
			{"印刷", -8},
			{"チラシ", -8},
			{"LP制作", -5},
			{"TypeScript", -5},
			{"フロントエンド実装", -5},
			{"コーディング", -5},
			{"マークアップ", -3},
		},
	}
}

// Score computes the 0-100 rule-based suitability score for one posting.
func (t *ScoreTables) Score(raw *job.Raw) int {
	score := t.Base

	score += matchKeywords(raw.JobTitle, t.Title)

	combined := raw.JobTitle + " " + raw.Description
	score += matchKeywords(combined, t.Skill)
	score += t.employmentBonus(raw.EmploymentType)
	score += t.remoteBonus(raw.Location, raw.Description)
	score += matchKeywords(combined, t.Negative)

	if score < scoreMin {
		return scoreMin
	}
	if score > scoreMax {
		return scoreMax
	}
	return score
}

// matchKeywords sums the points of every keyword found in text, each keyword
// contributing at most once.
func matchKeywords(text string, keywords []WeightedKeyword) int {
	lower := strings.ToLower(text)
	score := 0

	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw.Keyword)) {
			score += kw.Points
		}
	}

	return score
}

// employmentBonus returns the points of the first employment label found in
// the raw employment-type field.
func (t *ScoreTables) employmentBonus(employmentType string) int {
	for _, kw := range t.Employment {
		if strings.Contains(employmentType, kw.Keyword) {
			return kw.Points
		}
	}
	return 0
}

// remoteBonus returns the points of the first remote phrase found in
// location + description. Later entries are not evaluated after a hit.
func (t *ScoreTables) remoteBonus(location, description string) int {
	combined := strings.ToLower(location + " " + description)

	for _, kw := range t.Remote {
		if strings.Contains(combined, strings.ToLower(kw.Keyword)) {
			return kw.Points
		}
	}

	return 0
}
