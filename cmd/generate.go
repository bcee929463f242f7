package cmd

import (
	"log"
	"os"
	"time"

	"github.com/uiuxradar/uiux-radar/internal/dummy"
	"github.com/uiuxradar/uiux-radar/internal/job"
	"github.com/uiuxradar/uiux-radar/internal/logger"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate dummy raw postings for local pipeline runs",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "", "output JSONL file (default is the pipeline input path)")
	generateCmd.Flags().IntP("count", "n", 100, "number of postings to generate")
	generateCmd.Flags().Int64("seed", 42, "random seed, fixed by default for reproducible output")
	generateCmd.Flags().BoolP("yes", "y", false, "overwrite an existing output file without asking")
}

func generate(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = viper.GetString("input")
	}

	if !confirmOverwrite(cmd, output, logger) {
		logger.Info("exiting", zap.String("reason", "output file kept"))
		return
	}

	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")

	raws := dummy.New(seed, time.Now()).Generate(count)

	if err := job.WriteRawFile(output, raws); err != nil {
		logger.Fatal("writing dummy postings", zap.Error(err))
	}

	logger.Info("generated dummy postings",
		zap.Int("count", len(raws)),
		zap.Int64("seed", seed),
		zap.String("output", output),
	)
}

func confirmOverwrite(cmd *cobra.Command, path string, logger *zap.Logger) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}

	if _, err := os.Stat(path); err != nil {
		return true
	}

	prompt := promptui.Select{
		Label: "Output file " + path + " exists, overwrite?",
		Items: []string{"Yes", "No"},
	}

	_, answer, err := prompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	return answer == "Yes"
}
