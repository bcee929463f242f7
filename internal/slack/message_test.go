package slack

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/uiuxradar/uiux-radar/internal/job"
)

func sampleJobs(n int) *job.Jobs {
	jobs := &job.Jobs{}
	for i := 0; i < n; i++ {
		jobs.Items = append(jobs.Items, &job.Norm{
			CompanyName:    fmt.Sprintf("会社%d", i+1),
			JobTitle:       "UI/UXデザイナー",
			URL:            fmt.Sprintf("https://example.com/%d", i+1),
			EmploymentType: "業務委託",
			RemoteType:     job.RemoteFullRemote,
			Score:          90 - i*10,
		})
	}
	return jobs
}

func TestBuildAlertEmptyBatch(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)

	payload := BuildAlert(&job.Jobs{}, now)

	// header, summary, divider, empty notice, divider, footer
	if len(payload.Blocks) != 6 {
		t.Fatalf("expected 6 blocks, got %d", len(payload.Blocks))
	}

	text := RenderText(payload)
	if !strings.Contains(text, "本日掲載の新着求人はありません") {
		t.Fatalf("missing empty notice:\n%s", text)
	}
	if !strings.Contains(text, "08/31 09:00") {
		t.Fatalf("missing timestamp:\n%s", text)
	}
}

func TestBuildAlertListsJobsWithButtons(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)

	payload := BuildAlert(sampleJobs(2), now)

	var sections []Block
	for _, block := range payload.Blocks {
		if block["type"] == "section" && block["accessory"] != nil {
			sections = append(sections, block)
		}
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 job sections with buttons, got %d", len(sections))
	}

	first, ok := sections[0]["accessory"].(map[string]any)
	if !ok {
		t.Fatalf("accessory is not an object")
	}
	if first["url"] != "https://example.com/1" {
		t.Fatalf("unexpected button url: %v", first["url"])
	}
	// score 90 gets the primary style
	if first["style"] != "primary" {
		t.Fatalf("expected primary style for a high score, got %v", first["style"])
	}
}

func TestBuildAlertTruncatesListToFive(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)

	payload := BuildAlert(sampleJobs(8), now)

	text := RenderText(payload)
	if !strings.Contains(text, "他 3件") {
		t.Fatalf("missing truncation context:\n%s", text)
	}

	jobSections := 0
	for _, block := range payload.Blocks {
		if block["type"] == "section" && block["accessory"] != nil {
			jobSections++
		}
	}
	if jobSections != maxListedJobs {
		t.Fatalf("expected %d listed jobs, got %d", maxListedJobs, jobSections)
	}
}

func TestBuildAlertLowScoreButtonNotPrimary(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)
	jobs := &job.Jobs{Items: []*job.Norm{{
		CompanyName: "会社A",
		JobTitle:    "デザイナー",
		URL:         "https://example.com/a",
		Score:       40,
	}}}

	payload := BuildAlert(jobs, now)

	for _, block := range payload.Blocks {
		accessory, ok := block["accessory"].(map[string]any)
		if !ok {
			continue
		}
		if _, styled := accessory["style"]; styled {
			t.Fatalf("scores below 60 must not get the primary style")
		}
	}
}

func TestBuildReportEmptyWindow(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)

	payload := BuildReport(&job.Jobs{}, 7, now)

	if len(payload.Blocks) != 2 {
		t.Fatalf("expected header plus notice, got %d blocks", len(payload.Blocks))
	}

	text := RenderText(payload)
	if !strings.Contains(text, "直近7日間の対象求人はありません") {
		t.Fatalf("missing empty notice:\n%s", text)
	}
}

func TestBuildReportSummarizesStats(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)

	jobs := sampleJobs(3)
	jobs.Items[0].Category = job.CategoryUIUX
	jobs.Items[1].Category = job.CategoryUIUX
	jobs.Items[2].Category = job.CategoryGraphic

	payload := BuildReport(jobs, 7, now)

	text := RenderText(payload)
	for _, want := range []string{"直近7日間: 3件", "平均スコア 80.0 / 最高 90", "`uiux` 2件", "`graphic` 1件", "2026/08/31"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in report:\n%s", want, text)
		}
	}
}

func TestScoreBadgeTiers(t *testing.T) {
	cases := []struct {
		score    int
		expected string
	}{
		{95, "🔥🔥🔥"},
		{80, "🔥🔥🔥"},
		{79, "🔥🔥"},
		{60, "🔥🔥"},
		{59, "🔥"},
		{0, "🔥"},
	}

	for _, tc := range cases {
		if got := scoreBadge(tc.score); got != tc.expected {
			t.Fatalf("score %d: expected %q, got %q", tc.score, tc.expected, got)
		}
	}
}

func TestRenderTextSkipsUnknownBlocks(t *testing.T) {
	payload := &Payload{Blocks: []Block{
		Header("見出し"),
		{"type": "image", "image_url": "https://example.com/x.png"},
		Section("本文"),
	}}

	text := RenderText(payload)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 || lines[0] != "見出し" || lines[1] != "本文" {
		t.Fatalf("unexpected rendering: %q", text)
	}
}
