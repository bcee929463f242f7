package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/uiuxradar/uiux-radar/internal/job"
	"github.com/uiuxradar/uiux-radar/internal/logger"
	"github.com/uiuxradar/uiux-radar/internal/slack"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize recent postings, optionally delivered to Slack",
	Run: func(cmd *cobra.Command, _ []string) {
		report(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("data", "", "normalized postings JSONL file (default is the pipeline output path)")
	reportCmd.Flags().Int("days", 7, "report window in days")
	reportCmd.Flags().Int("top", 10, "number of postings to keep in the report")
	reportCmd.Flags().Bool("slack", false, "send the report to the configured Slack webhook")
}

func report(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	data, _ := cmd.Flags().GetString("data")
	if data == "" {
		data = config.Output
	}

	jobs, err := job.ReadFile(data)
	if err != nil {
		logger.Fatal("reading normalized postings",
			zap.Error(err),
			zap.String("hint", "run the pipeline first to produce "+data),
		)
	}

	days, _ := cmd.Flags().GetInt("days")
	topN, _ := cmd.Flags().GetInt("top")

	now := time.Now()
	recent := jobs.PostedWithin(now, days)
	recent.Top(topN)

	logger.Info("postings in report window",
		zap.Int("days", days),
		zap.Int("count", recent.Len()),
		zap.Int("total", jobs.Len()),
	)

	payload := slack.BuildReport(recent, days, now)

	if toSlack, _ := cmd.Flags().GetBool("slack"); toSlack {
		if err := sendToSlack(config, logger, payload); err != nil {
			logger.Fatal("sending report", zap.Error(err))
		}
		logger.Info("report sent", zap.Int("postings", recent.Len()))
		return
	}

	fmt.Println(slack.RenderText(payload))
}
