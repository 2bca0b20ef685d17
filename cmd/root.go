package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/corpus"
	"github.com/spigell/job-recommender/internal/recommend"
)

const (
	app       = "job-recommender"
	envPrefix = "JOB_RECOMMENDER"
)

type Config struct {
	Artifacts *ArtifactsConfig `mapstructure:"artifacts"`
	Recommend *RecommendConfig `mapstructure:"recommend"`
	Debug     bool             `mapstructure:"debug"`
	JSON      bool             `mapstructure:"json"`
}

type ArtifactsConfig struct {
	Source     string `mapstructure:"source"`
	Corpus     string `mapstructure:"corpus"`
	Similarity string `mapstructure:"similarity"`
	Database   string `mapstructure:"database"`
}

type RecommendConfig struct {
	TopN int `mapstructure:"top-n"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-recommender suggests job postings similar to a title and location",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-recommender.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("source", corpus.SourceJSON, "artifact source: json or sqlite")
	rootCmd.PersistentFlags().String("corpus", "", "path to the job corpus JSON file")
	rootCmd.PersistentFlags().String("similarity", "", "path to the similarity matrix JSON file")
	rootCmd.PersistentFlags().String("database", "", "path to the SQLite artifacts database")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("artifacts.source", rootCmd.PersistentFlags().Lookup("source"))
	viper.BindPFlag("artifacts.corpus", rootCmd.PersistentFlags().Lookup("corpus"))
	viper.BindPFlag("artifacts.similarity", rootCmd.PersistentFlags().Lookup("similarity"))
	viper.BindPFlag("artifacts.database", rootCmd.PersistentFlags().Lookup("database"))

	viper.SetDefault("recommend.top-n", recommend.DefaultTopN)
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A missing default config is fine: flags and env can carry everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.AllSettings())
}

func decodeConfig(settings map[string]any) (*Config, error) {
	config := &Config{
		Artifacts: &ArtifactsConfig{},
		Recommend: &RecommendConfig{TopN: recommend.DefaultTopN},
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return config, nil
}

func (c *ArtifactsConfig) source() corpus.Source {
	return corpus.Source{
		Kind:       c.Source,
		CorpusPath: c.Corpus,
		MatrixPath: c.Similarity,
		Database:   c.Database,
	}
}

// loadEngine loads the artifacts once and freezes them into an engine.
func loadEngine(ctx context.Context, config *Config, logger *zap.Logger) (*recommend.Engine, *corpus.Artifacts, error) {
	src := config.Artifacts.source()
	logger.Debug("loading artifacts",
		zap.String("source", src.Kind),
		zap.String("corpus", src.CorpusPath),
		zap.String("similarity", src.MatrixPath),
		zap.String("database", src.Database),
	)

	artifacts, err := corpus.Load(ctx, src)
	if err != nil {
		return nil, nil, fmt.Errorf("loading artifacts: %w", err)
	}

	engine, err := recommend.New(artifacts, logger)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("artifacts loaded", zap.Int("jobs", engine.Size()))

	return engine, artifacts, nil
}
