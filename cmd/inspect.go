package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/corpus"
	"github.com/spigell/job-recommender/internal/logger"
)

const symmetryTolerance = 1e-6

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load the artifacts and report corpus and similarity matrix statistics",
	Run: func(_ *cobra.Command, _ []string) {
		runInspect()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	_, artifacts, err := loadEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the engine", zap.Error(err))
	}

	st := corpus.Stats(artifacts.Matrix, symmetryTolerance)
	logger.Info("corpus",
		zap.Int("jobs", artifacts.Corpus.Len()),
		zap.Int("duplicate_urls", artifacts.Corpus.DuplicateURLs()),
	)
	logger.Info("similarity matrix",
		zap.Int("dimension", st.Dim),
		zap.Float64("min", st.Min),
		zap.Float64("max", st.Max),
		zap.Float64("mean", st.Mean),
		zap.Bool("symmetric", st.Symmetric),
	)

	if !st.Symmetric {
		logger.Warn("similarity matrix is not symmetric", zap.Float64("tolerance", symmetryTolerance))
	}
}
