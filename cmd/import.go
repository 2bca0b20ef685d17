package cmd

import (
	"context"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/corpus"
	"github.com/spigell/job-recommender/internal/logger"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy JSON corpus and similarity artifacts into a SQLite database",
	Run: func(cmd *cobra.Command, _ []string) {
		runImport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("to", "", "destination SQLite database (default is artifacts.database)")
}

func runImport(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	dst, _ := cmd.Flags().GetString("to")
	if strings.TrimSpace(dst) == "" {
		dst = config.Artifacts.Database
	}
	if strings.TrimSpace(dst) == "" {
		logger.Fatal("destination database is required", zap.String("hint", "pass --to or set artifacts.database"))
	}

	artifacts, err := corpus.LoadJSON(ctx, config.Artifacts.Corpus, config.Artifacts.Similarity)
	if err != nil {
		logger.Fatal("loading json artifacts", zap.Error(err))
	}

	if err := corpus.SaveSQLite(ctx, dst, artifacts); err != nil {
		logger.Fatal("writing sqlite artifacts", zap.Error(err))
	}

	logger.Info("imported artifacts",
		zap.String("database", dst),
		zap.Int("jobs", artifacts.Corpus.Len()),
	)
}
