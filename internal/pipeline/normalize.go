package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/uiuxradar/uiux-radar/internal/job"
)

// unknownEmployment is the sentinel for postings with no recognizable
// employment type.
const unknownEmployment = "不明"

// Compensation bounds in man-yen per year. Extracted pairs outside this range
// are discarded.
const (
	compMin = 100
	compMax = 3000
)

// PatternGroup maps one inferred value to the phrases that imply it. Groups
// are scanned in declared order; the first group with any hit wins.
type PatternGroup struct {
	Value    string
	Patterns []string
}

// CompPattern is one compensation range expression. Monthly figures are
// converted to annual (x12) before validation; the flag is explicit rather
// than inferred from the pattern text.
type CompPattern struct {
	Re      *regexp.Regexp
	Monthly bool
}

// Normalizer canonicalizes raw postings into normalized records using
// priority-ordered pattern tables. All tables are read-only after
// construction; substitute tables in tests as needed.
type Normalizer struct {
	Skills     *Lexicon
	Employment []PatternGroup
	Remote     []PatternGroup
	Category   []PatternGroup
	Comp       []CompPattern
}

// NewNormalizer returns a Normalizer with the production tables.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Skills: DefaultSkillLexicon(),
		Employment: []PatternGroup{
			{Value: "正社員", Patterns: []string{"正社員", "正規雇用", "permanent"}},
			{Value: "契約社員", Patterns: []string{"契約社員", "有期雇用", "contract"}},
			{Value: "業務委託", Patterns: []string{"業務委託", "フリーランス", "freelance", "委託"}},
			{Value: "派遣", Patterns: []string{"派遣", "派遣社員"}},
			{Value: "アルバイト", Patterns: []string{"アルバイト", "パート", "part-time"}},
			{Value: "インターン", Patterns: []string{"インターン", "intern"}},
		},
		Remote: []PatternGroup{
			{Value: job.RemoteFullRemote, Patterns: []string{"フルリモート", "full remote", "fullremote", "完全リモート", "full_remote"}},
			{Value: job.RemoteHybrid, Patterns: []string{"ハイブリッド", "hybrid", "週2出社", "週3出社", "リモート併用", "一部リモート"}},
			{Value: job.RemoteOK, Patterns: []string{"リモート可", "リモートワーク可", "在宅勤務可", "テレワーク可"}},
			{Value: job.RemoteOffice, Patterns: []string{"出社", "オフィス勤務", "常駐", "オンサイト"}},
		},
		// Order is the tie-break: uiux beats graphic beats frontend_like.
		Category: []PatternGroup{
			{Value: job.CategoryUIUX, Patterns: []string{
				"uiデザイナー", "uxデザイナー", "ui/uxデザイナー", "プロダクトデザイナー",
				"uxリサーチャー", "デザインマネージャー", "uiux", "ui/ux",
			}},
			{Value: job.CategoryGraphic, Patterns: []string{
				"グラフィックデザイナー", "グラフィック", "バナー", "広告デザイン",
				"dtp", "印刷", "チラシ", "ポスター", "パッケージデザイン",
			}},
			{Value: job.CategoryFrontendLike, Patterns: []string{
				"フロントエンド", "frontend", "マークアップ", "コーダー",
				"html/css", "webコーダー", "uiエンジニア",
			}},
		},
		Comp: []CompPattern{
			// 年収600万〜900万、年収600〜900万円
			{Re: regexp.MustCompile(`年収\s*(\d{3,4})\s*万?\s*[〜~～ー−-]\s*(\d{3,4})\s*万`)},
			// 600万円〜900万円
			{Re: regexp.MustCompile(`(\d{3,4})\s*万円?\s*[〜~～ー−-]\s*(\d{3,4})\s*万円?`)},
			// 月収50万〜80万、年収換算する
			{Re: regexp.MustCompile(`月収?\s*(\d{2,3})\s*万?\s*[〜~～ー−-]\s*(\d{2,3})\s*万`), Monthly: true},
		},
	}
}

// Normalize turns a raw posting and its already-computed rule score into a
// normalized record. Inference never fails; every field falls back to a
// defined default.
func (n *Normalizer) Normalize(raw *job.Raw, score int) *job.Norm {
	combined := raw.JobTitle + " " + raw.Description

	skills := n.Skills.Match(combined)
	if skills == nil {
		skills = []string{}
	}

	compMinVal, compMaxVal := n.extractCompensation(raw.Description)

	return &job.Norm{
		Source:         raw.Source,
		CompanyName:    strings.TrimSpace(raw.CompanyName),
		JobTitle:       strings.TrimSpace(raw.JobTitle),
		URL:            strings.TrimSpace(raw.URL),
		PostedDate:     raw.PostedDate,
		Description:    strings.TrimSpace(raw.Description),
		Location:       strings.TrimSpace(raw.Location),
		EmploymentType: n.inferEmploymentType(raw.EmploymentType, raw.Description),
		Score:          score,
		Skills:         skills,
		Category:       n.inferCategory(raw.JobTitle, raw.Description),
		RemoteType:     n.inferRemoteType(raw.Location, raw.Description),
		CompMin:        compMinVal,
		CompMax:        compMaxVal,
	}
}

func (n *Normalizer) inferEmploymentType(rawType, description string) string {
	if value, ok := firstMatch(rawType+" "+description, n.Employment); ok {
		return value
	}
	if rawType != "" {
		return rawType
	}
	return unknownEmployment
}

func (n *Normalizer) inferRemoteType(location, description string) string {
	if value, ok := firstMatch(location+" "+description, n.Remote); ok {
		return value
	}
	return job.RemoteUnknown
}

func (n *Normalizer) inferCategory(jobTitle, description string) string {
	if value, ok := firstMatch(jobTitle+" "+description, n.Category); ok {
		return value
	}
	return job.CategoryOther
}

// firstMatch scans the groups in order and returns the value of the first
// group with a case-insensitive substring hit.
func firstMatch(text string, groups []PatternGroup) (string, bool) {
	lower := strings.ToLower(text)

	for _, group := range groups {
		for _, pattern := range group.Patterns {
			if strings.Contains(lower, strings.ToLower(pattern)) {
				return group.Value, true
			}
		}
	}

	return "", false
}

// extractCompensation pulls an annual man-yen range out of the description.
// The first pattern yielding a pair inside [compMin, compMax] wins; no match
// leaves both values absent.
func (n *Normalizer) extractCompensation(description string) (*int, *int) {
	for _, pattern := range n.Comp {
		groups := pattern.Re.FindStringSubmatch(description)
		if groups == nil {
			continue
		}

		low, err := strconv.Atoi(groups[1])
		if err != nil {
			continue
		}
		high, err := strconv.Atoi(groups[2])
		if err != nil {
			continue
		}

		if pattern.Monthly {
			low *= 12
			high *= 12
		}

		if low >= compMin && low <= compMax && high >= compMin && high <= compMax {
			return &low, &high
		}
	}

	return nil, nil
}
