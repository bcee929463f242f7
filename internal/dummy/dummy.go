// Package dummy generates sample postings for demos and local runs of the
// pipeline without a scraper.
package dummy

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/uiuxradar/uiux-radar/internal/job"
)

// uiuxRatio is the share of generated postings that are UI/UX roles.
const uiuxRatio = 0.6

var companies = []string{
	"株式会社メルカリ",
	"株式会社サイバーエージェント",
	"LINE株式会社",
	"株式会社ディー・エヌ・エー",
	"株式会社リクルート",
	"株式会社SmartHR",
	"株式会社LayerX",
	"株式会社UPSIDER",
	"Sansan株式会社",
	"freee株式会社",
	"株式会社マネーフォワード",
	"株式会社プレイド",
	"株式会社Speee",
	"株式会社ビズリーチ",
	"株式会社ラクス",
	"株式会社ヤプリ",
	"株式会社カミナシ",
	"株式会社estie",
	"株式会社タイミー",
	"株式会社10X",
	"STORES株式会社",
	"note株式会社",
	"株式会社Luup",
	"株式会社アンドパッド",
	"株式会社hacomono",
}

// hotCompanies post most of their openings within the last 30 days.
var hotCompanies = map[string]bool{
	"株式会社SmartHR":  true,
	"株式会社LayerX":   true,
	"株式会社タイミー":     true,
	"株式会社10X":      true,
	"株式会社hacomono": true,
}

var uiuxTitles = []string{
	"UIデザイナー",
	"UXデザイナー",
	"UI/UXデザイナー",
	"プロダクトデザイナー",
	"シニアUIデザイナー",
	"シニアUXデザイナー",
	"リードプロダクトデザイナー",
	"UXリサーチャー",
	"デザインマネージャー",
	"デザインシステムエンジニア",
}

var otherTitles = []string{
	"フロントエンドエンジニア",
	"バックエンドエンジニア",
	"SRE",
	"データエンジニア",
	"プロダクトマネージャー",
	"カスタマーサクセス",
	"セールス",
	"マーケティング担当",
	"経理担当",
	"人事担当",
}

type skillProbability struct {
	name     string
	prob     float64
	uiuxOnly bool
}

var skillProbabilities = []skillProbability{
	{"Figma", 0.85, true},
	{"Adobe XD", 0.30, true},
	{"Sketch", 0.20, true},
	{"デザインシステム", 0.35, true},
	{"UXリサーチ", 0.25, true},
	{"ユーザーインタビュー", 0.20, true},
	{"プロトタイピング", 0.50, true},
	{"Webデザイン", 0.40, true},
	{"モバイルアプリデザイン", 0.35, true},
	{"HTML/CSS", 0.40, false},
	{"JavaScript", 0.35, false},
	{"React", 0.30, false},
	{"TypeScript", 0.25, false},
}

var locations = []string{
	"東京都渋谷区",
	"東京都港区",
	"東京都千代田区",
	"東京都新宿区",
	"東京都品川区",
	"大阪府大阪市",
	"福岡県福岡市",
	"フルリモート",
}

var sources = []string{"herp", "hrmos"}

var employmentTypes = []string{"正社員", "契約社員", "業務委託"}
var employmentWeights = []float64{0.70, 0.15, 0.15}

var compBases = []int{400, 450, 500, 550, 600, 650, 700, 800, 900, 1000}
var compSpans = []int{100, 150, 200, 300, 400}

// Generator produces reproducible dummy postings from a seeded RNG.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

func New(seed int64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// Generate returns n raw postings with the configured UI/UX ratio and a
// recency skew for hot companies.
func (g *Generator) Generate(n int) []*job.Raw {
	raws := make([]*job.Raw, 0, n)
	for i := 0; i < n; i++ {
		raws = append(raws, g.generateOne(i))
	}
	return raws
}

func (g *Generator) generateOne(id int) *job.Raw {
	isUIUX := g.rng.Float64() < uiuxRatio
	company := companies[g.rng.Intn(len(companies))]

	titles := otherTitles
	if isUIUX {
		titles = uiuxTitles
	}
	title := titles[g.rng.Intn(len(titles))]

	skills := g.pickSkills(isUIUX)

	posted := g.randomDate(hotCompanies[company])

	return &job.Raw{
		Source:         sources[g.rng.Intn(len(sources))],
		CompanyName:    company,
		JobTitle:       title,
		URL:            fmt.Sprintf("https://example.com/jobs/%d", id),
		PostedDate:     &job.Date{Time: posted},
		Description:    g.buildDescription(title, skills),
		Location:       locations[g.rng.Intn(len(locations))],
		EmploymentType: weightedChoice(g.rng, employmentTypes, employmentWeights),
	}
}

// randomDate skews hot companies toward the last 30 days (70% within 14),
// everyone else is uniform over 90 days.
func (g *Generator) randomDate(isHot bool) time.Time {
	var daysAgo int
	if isHot {
		if g.rng.Float64() < 0.7 {
			daysAgo = g.rng.Intn(15)
		} else {
			daysAgo = 15 + g.rng.Intn(16)
		}
	} else {
		daysAgo = g.rng.Intn(91)
	}

	day := g.now.AddDate(0, 0, -daysAgo)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func (g *Generator) pickSkills(isUIUX bool) []string {
	var skills []string
	for _, sp := range skillProbabilities {
		if sp.uiuxOnly && !isUIUX {
			continue
		}
		if g.rng.Float64() < sp.prob {
			skills = append(skills, sp.name)
		}
	}
	return skills
}

// buildDescription assembles a short posting body mentioning the top skills
// and, most of the time, a compensation range the normalizer can extract.
func (g *Generator) buildDescription(title string, skills []string) string {
	skillText := "各種ツール"
	if len(skills) > 0 {
		listed := skills
		if len(listed) > 3 {
			listed = listed[:3]
		}
		skillText = strings.Join(listed, "、")
	}

	description := fmt.Sprintf("%sとして、%sを活用したプロダクト開発に携わっていただきます。", title, skillText)

	if g.rng.Float64() >= 0.15 {
		low := compBases[g.rng.Intn(len(compBases))]
		high := low + compSpans[g.rng.Intn(len(compSpans))]
		description += fmt.Sprintf("想定年収%d万〜%d万円。", low, high)
	}

	return description
}

func weightedChoice(rng *rand.Rand, values []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return values[i]
		}
	}
	return values[len(values)-1]
}
