package job

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Category labels assigned by the normalizer. Exactly one applies per job.
const (
	CategoryUIUX         = "uiux"
	CategoryGraphic      = "graphic"
	CategoryFrontendLike = "frontend_like"
	CategoryOther        = "other"
)

// Remote work modes inferred from location and description.
const (
	RemoteFullRemote = "full_remote"
	RemoteHybrid     = "hybrid"
	RemoteOK         = "remote_ok"
	RemoteOffice     = "office"
	RemoteUnknown    = "unknown"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as an ISO-8601 date string.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 date. The empty string yields nil.
func ParseDate(s string) (*Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s, err)
	}
	return &Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Raw is one ingested posting exactly as the scraper produced it.
type Raw struct {
	Source         string `json:"source"`
	CompanyName    string `json:"company_name"`
	JobTitle       string `json:"job_title"`
	URL            string `json:"url"`
	PostedDate     *Date  `json:"posted_or_updated_at"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
}

// Norm is the scored, normalized representation of a Raw posting.
type Norm struct {
	Source         string   `json:"source"`
	CompanyName    string   `json:"company_name"`
	JobTitle       string   `json:"job_title"`
	URL            string   `json:"url"`
	PostedDate     *Date    `json:"posted_date"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	Score          int      `json:"score"`
	Skills         []string `json:"skills"`
	Category       string   `json:"category"`
	RemoteType     string   `json:"remote_type"`
	CompMin        *int     `json:"comp_min"`
	CompMax        *int     `json:"comp_max"`

	*LLMFields
}

// LLMFields carries the model rescoring bundle. The embedded pointer is nil
// until rescoring runs, keeping the llm_* keys out of the output entirely.
type LLMFields struct {
	LLMScore           int      `json:"llm_score"`
	LLMDispatchScore   int      `json:"llm_dispatch_score"`
	LLMUrgencyScore    int      `json:"llm_urgency_score"`
	LLMSkillMatchScore int      `json:"llm_skill_match_score"`
	LLMReason          string   `json:"llm_reason"`
	LLMTags            []string `json:"llm_tags"`
}

// Jobs is a batch of normalized postings.
type Jobs struct {
	Items []*Norm
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

// SortByScore orders the batch by descending score. Ties keep their relative
// input order.
func (j *Jobs) SortByScore() {
	sort.SliceStable(j.Items, func(a, b int) bool {
		return j.Items[a].Score > j.Items[b].Score
	})
}

// Top truncates the batch to its first n items. n <= 0 leaves it untouched.
func (j *Jobs) Top(n int) {
	if n > 0 && n < len(j.Items) {
		j.Items = j.Items[:n]
	}
}

// PostedOn reports jobs posted on the given calendar date, best score first.
func (j *Jobs) PostedOn(day time.Time) *Jobs {
	return j.filterByDate(func(posted time.Time) bool {
		return posted.Year() == day.Year() && posted.YearDay() == day.YearDay()
	})
}

// PostedWithin reports jobs posted in the last days days relative to now,
// best score first.
func (j *Jobs) PostedWithin(now time.Time, days int) *Jobs {
	cutoff := now.AddDate(0, 0, -days)
	return j.filterByDate(func(posted time.Time) bool {
		return !posted.Before(time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC))
	})
}

func (j *Jobs) filterByDate(keep func(time.Time) bool) *Jobs {
	out := &Jobs{}
	for _, item := range j.Items {
		if item.PostedDate == nil {
			continue
		}
		if keep(item.PostedDate.Time) {
			out.Items = append(out.Items, item)
		}
	}
	out.SortByScore()
	return out
}

// CategoryCounts tallies the batch by category label.
func (j *Jobs) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, item := range j.Items {
		counts[item.Category]++
	}
	return counts
}

// ScoreStats returns average, maximum and minimum score over the batch.
func (j *Jobs) ScoreStats() (avg float64, maxScore, minScore int) {
	if len(j.Items) == 0 {
		return 0, 0, 0
	}
	sum := 0
	maxScore = j.Items[0].Score
	minScore = j.Items[0].Score
	for _, item := range j.Items {
		sum += item.Score
		if item.Score > maxScore {
			maxScore = item.Score
		}
		if item.Score < minScore {
			minScore = item.Score
		}
	}
	return float64(sum) / float64(len(j.Items)), maxScore, minScore
}
