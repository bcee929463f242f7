package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/uiuxradar/uiux-radar/internal/ai"
	"github.com/uiuxradar/uiux-radar/internal/ai/gemini"
	"github.com/uiuxradar/uiux-radar/internal/job"
	"github.com/uiuxradar/uiux-radar/internal/logger"
	"github.com/uiuxradar/uiux-radar/internal/pipeline"
	"github.com/uiuxradar/uiux-radar/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const topSummaryCount = 5

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Normalize and score raw postings into the outreach list",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "input JSONL file with raw postings")
	runCmd.Flags().StringP("output", "o", "", "output JSONL file for normalized postings")
	runCmd.Flags().Int("top", 0, "keep only the top N postings by score")
	runCmd.Flags().BoolP("quiet", "q", false, "suppress the processing summary")
	runCmd.Flags().Bool("llm", false, "enable model rescoring")
	runCmd.Flags().Int("llm-limit", 0, "maximum number of postings sent for model rescoring")

	viper.BindPFlag("input", runCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
	viper.BindPFlag("top", runCmd.Flags().Lookup("top"))
}

// run is the main pipeline command.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the uiux-radar pipeline", zap.String("version", version))

	raws, err := job.ReadRawFile(config.Input, logger)
	if err != nil {
		logger.Fatal("reading raw postings",
			zap.Error(err),
			zap.String("hint", "run the generate command first or point --input at a scraper export"),
		)
	}

	logger.Info("loaded raw postings", zap.Int("count", len(raws)), zap.String("input", config.Input))

	pipe := pipeline.New(logger)

	if llmRequested(cmd, config) {
		scorer, limit, err := prepareScorer(ctx, cmd, config, logger)
		if err != nil {
			// Rescoring is an enhancement; degrade to rule scores only.
			logger.Warn("model rescoring disabled", zap.Error(err))
		} else {
			logger.Info("model rescoring enabled", zap.Int("limit", limit))
			pipe.WithScorer(scorer, limit)
		}
	}

	jobs := pipe.Run(ctx, raws)
	jobs.Top(config.Top)

	if err := jobs.ToFile(config.Output); err != nil {
		logger.Fatal("writing normalized postings", zap.Error(err))
	}

	logger.Info("saved normalized postings", zap.Int("count", jobs.Len()), zap.String("output", config.Output))

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		logSummary(logger, jobs)
	}
}

func llmRequested(cmd *cobra.Command, config *Config) bool {
	if flag, _ := cmd.Flags().GetBool("llm"); flag {
		return true
	}
	return config.LLM != nil && config.LLM.Enabled
}

func prepareScorer(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (ai.Scorer, int, error) {
	llm := config.LLM
	if llm == nil {
		llm = &LLMConfig{Limit: viper.GetInt("llm.limit")}
	}

	provider := strings.TrimSpace(strings.ToLower(llm.Provider))
	if provider != "" && provider != "gemini" {
		return nil, 0, fmt.Errorf("unsupported llm provider: %s", llm.Provider)
	}

	geminiCfg := llm.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{APIKeyFile: viper.GetString("llm.gemini.api-key-file")}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: geminiCfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w (set llm.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model)
	if err != nil {
		return nil, 0, err
	}

	scorerLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	limit := llm.Limit
	if flagLimit, _ := cmd.Flags().GetInt("llm-limit"); flagLimit > 0 {
		limit = flagLimit
	}

	return gemini.NewScorer(generator, scorerLogger, geminiCfg.MaxLogLength), limit, nil
}

func logSummary(logger *zap.Logger, jobs *job.Jobs) {
	if jobs.Len() == 0 {
		logger.Info("no postings processed")
		return
	}

	avg, maxScore, minScore := jobs.ScoreStats()
	logger.Info("processing summary",
		zap.Int("total", jobs.Len()),
		zap.Float64("avg_score", avg),
		zap.Int("max_score", maxScore),
		zap.Int("min_score", minScore),
		zap.Any("categories", jobs.CategoryCounts()),
	)

	for i, item := range jobs.Items {
		if i >= topSummaryCount {
			break
		}
		logger.Info("top posting",
			zap.Int("rank", i+1),
			zap.Int("score", item.Score),
			zap.String("company", item.CompanyName),
			zap.String("job_title", item.JobTitle),
		)
	}
}
