package pipeline

import "strings"

// LexiconEntry maps one canonical skill label to its surface-form variants.
type LexiconEntry struct {
	Label    string
	Variants []string
}

// Lexicon is an ordered canonical-label dictionary. Match results follow the
// declared entry order, not the position of the match in the text.
type Lexicon struct {
	entries []LexiconEntry
}

func NewLexicon(entries []LexiconEntry) *Lexicon {
	return &Lexicon{entries: entries}
}

// Match returns the canonical labels whose variant list has at least one
// case-insensitive substring hit in text. Each label appears at most once;
// remaining variants are not evaluated after the first hit.
func (l *Lexicon) Match(text string) []string {
	lower := strings.ToLower(text)
	var matched []string

	for _, entry := range l.entries {
		for _, variant := range entry.Variants {
			if strings.Contains(lower, strings.ToLower(variant)) {
				matched = append(matched, entry.Label)
				break
			}
		}
	}

	return matched
}

// DefaultSkillLexicon returns the skill dictionary used for canonicalization.
// Entry order defines the order of extracted skills.
func DefaultSkillLexicon() *Lexicon {
	return NewLexicon([]LexiconEntry{
		{Label: "Figma", Variants: []string{"figma", "フィグマ"}},
		{Label: "Adobe XD", Variants: []string{"adobe xd", "adobexd", "xd"}},
		{Label: "Sketch", Variants: []string{"sketch", "スケッチ"}},
		{Label: "デザインシステム", Variants: []string{"デザインシステム", "design system", "designsystem"}},
		{Label: "UXリサーチ", Variants: []string{"uxリサーチ", "ux research", "uxresearch", "ユーザーリサーチ"}},
		{Label: "ユーザーインタビュー", Variants: []string{"ユーザーインタビュー", "user interview", "ユーザインタビュー"}},
		{Label: "プロトタイピング", Variants: []string{"プロトタイピング", "prototyping", "プロトタイプ"}},
		{Label: "ユーザビリティテスト", Variants: []string{"ユーザビリティテスト", "usability test", "ユーザビリティ"}},
		{Label: "ペルソナ", Variants: []string{"ペルソナ", "persona"}},
		{Label: "カスタマージャーニー", Variants: []string{"カスタマージャーニー", "customer journey", "ジャーニーマップ"}},
		{Label: "Webデザイン", Variants: []string{"webデザイン", "ウェブデザイン", "web design"}},
		{Label: "モバイルアプリデザイン", Variants: []string{"アプリデザイン", "モバイルデザイン", "app design", "ios design", "android design"}},
		{Label: "InVision", Variants: []string{"invision", "インビジョン"}},
		{Label: "Zeplin", Variants: []string{"zeplin", "ゼプリン"}},
		{Label: "Photoshop", Variants: []string{"photoshop", "フォトショップ", "フォトショ"}},
		{Label: "Illustrator", Variants: []string{"illustrator", "イラストレーター", "イラレ"}},
	})
}
