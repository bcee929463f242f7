package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/uiuxradar/uiux-radar/internal/job"
)

// maxListedJobs bounds how many postings appear in a notification; the rest
// are summarized in a context line.
const maxListedJobs = 5

func scoreBadge(score int) string {
	switch {
	case score >= 80:
		return "🔥🔥🔥"
	case score >= 60:
		return "🔥🔥"
	default:
		return "🔥"
	}
}

// BuildAlert renders the same-day approach alert for postings published today.
func BuildAlert(jobs *job.Jobs, now time.Time) *Payload {
	payload := &Payload{
		Text: "🚨 即日アプローチアラート",
		Blocks: []Block{
			Header(fmt.Sprintf("🚨 即日アプローチアラート (%s)", now.Format("01/02 15:04"))),
			Section(fmt.Sprintf("*🔥 本日掲載: %d件*\n競合より先にアプローチしましょう！", jobs.Len())),
			Divider(),
		},
	}

	if jobs.Len() == 0 {
		payload.Blocks = append(payload.Blocks, Section("本日掲載の新着求人はありません。"))
	} else {
		payload.Blocks = append(payload.Blocks, jobListBlocks(jobs)...)
	}

	payload.Blocks = append(payload.Blocks,
		Divider(),
		Context("💡 _即日アプローチで競合に差をつけよう！_"),
	)

	return payload
}

// BuildReport renders the periodic report for postings of the last days days.
func BuildReport(jobs *job.Jobs, days int, now time.Time) *Payload {
	payload := &Payload{
		Text: "📊 UI/UX求人レポート",
		Blocks: []Block{
			Header(fmt.Sprintf("📊 UI/UX求人レポート (%s)", now.Format("2006/01/02"))),
		},
	}

	if jobs.Len() == 0 {
		payload.Blocks = append(payload.Blocks,
			Section(fmt.Sprintf("直近%d日間の対象求人はありません。", days)))
		return payload
	}

	avg, maxScore, _ := jobs.ScoreStats()
	summary := []string{
		fmt.Sprintf("*直近%d日間: %d件*", days, jobs.Len()),
		fmt.Sprintf("平均スコア %.1f / 最高 %d", avg, maxScore),
	}
	for category, count := range jobs.CategoryCounts() {
		summary = append(summary, fmt.Sprintf("`%s` %d件", category, count))
	}

	payload.Blocks = append(payload.Blocks,
		Section(strings.Join(summary, "\n")),
		Divider(),
	)
	payload.Blocks = append(payload.Blocks, jobListBlocks(jobs)...)

	return payload
}

// jobListBlocks renders the top postings, one section per job with a detail
// button, plus a context line when the list was truncated.
func jobListBlocks(jobs *job.Jobs) []Block {
	var blocks []Block

	for i, item := range jobs.Items {
		if i >= maxListedJobs {
			break
		}

		lines := []string{
			fmt.Sprintf("%s *%d. %s* `%d点`", scoreBadge(item.Score), i+1, item.CompanyName, item.Score),
			">" + item.JobTitle,
		}

		var meta []string
		if item.EmploymentType != "" {
			meta = append(meta, item.EmploymentType)
		}
		if item.RemoteType != "" && item.RemoteType != job.RemoteUnknown {
			meta = append(meta, item.RemoteType)
		}
		if len(meta) > 0 {
			lines = append(lines, fmt.Sprintf("_%s_", strings.Join(meta, " / ")))
		}

		markdown := strings.Join(lines, "\n")
		if item.URL != "" {
			blocks = append(blocks, SectionWithButton(markdown, "詳細", item.URL, item.Score >= 60))
		} else {
			blocks = append(blocks, Section(markdown))
		}
	}

	if rest := jobs.Len() - maxListedJobs; rest > 0 {
		blocks = append(blocks, Context(fmt.Sprintf("📋 他 %d件", rest)))
	}

	return blocks
}

// RenderText renders the payload as plain text for dry runs and stdout
// reports.
func RenderText(payload *Payload) string {
	var lines []string

	for _, block := range payload.Blocks {
		switch block["type"] {
		case "divider":
			lines = append(lines, strings.Repeat("─", 29))
		case "header":
			if text, ok := block["text"].(map[string]any); ok {
				lines = append(lines, fmt.Sprintf("%v", text["text"]))
			}
		case "section":
			if text, ok := block["text"].(map[string]any); ok {
				lines = append(lines, fmt.Sprintf("%v", text["text"]))
			}
		case "context":
			if elements, ok := block["elements"].([]map[string]any); ok {
				for _, element := range elements {
					lines = append(lines, fmt.Sprintf("%v", element["text"]))
				}
			}
		}
	}

	return strings.Join(lines, "\n")
}
