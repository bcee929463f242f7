package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/uiuxradar/uiux-radar/internal/job"
	"github.com/uiuxradar/uiux-radar/internal/logger"
	"github.com/uiuxradar/uiux-radar/internal/secrets"
	"github.com/uiuxradar/uiux-radar/internal/slack"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Send a same-day approach alert for postings published today",
	Run: func(cmd *cobra.Command, _ []string) {
		alert(cmd)
	},
}

func init() {
	rootCmd.AddCommand(alertCmd)

	alertCmd.Flags().String("data", "", "normalized postings JSONL file (default is the pipeline output path)")
	alertCmd.Flags().Bool("dry-run", false, "print the alert instead of sending it")
}

func alert(cmd *cobra.Command) {
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

	now := time.Now()
	today := jobs.PostedOn(now)
	logger.Info("postings published today", zap.Int("count", today.Len()), zap.Int("total", jobs.Len()))

	payload := slack.BuildAlert(today, now)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Println(slack.RenderText(payload))
		return
	}

	if err := sendToSlack(config, logger, payload); err != nil {
		logger.Fatal("sending alert", zap.Error(err))
	}

	logger.Info("alert sent", zap.Int("postings", today.Len()))
}

func sendToSlack(config *Config, logger *zap.Logger, payload *slack.Payload) error {
	var webhookFile string
	if config.Slack != nil {
		webhookFile = config.Slack.WebhookURLFile
	}

	webhookURL, err := secrets.Load(secrets.Source{
		Name: "slack webhook url",
		File: webhookFile,
		Env:  "SLACK_WEBHOOK_URL",
	})
	if err != nil {
		return fmt.Errorf("%w (set slack.webhook-url-file or SLACK_WEBHOOK_URL)", err)
	}

	return slack.New(webhookURL, logger).Send(context.Background(), payload)
}
