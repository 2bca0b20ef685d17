package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/logger"
	"github.com/spigell/job-recommender/internal/recommend"
)

const (
	outputText = "text"
	outputJSON = "json"

	PromptDone     = "done"
	maxItemLength  = 60
	noMatchMessage = "No matching jobs found for the given job title and location."
)

var errEmptyInput = errors.New("value must not be empty")

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend job postings similar to a title and location",
	Run: func(cmd *cobra.Command, _ []string) {
		runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("title", "t", "", "job title to search for")
	recommendCmd.Flags().StringP("location", "l", "", "location to search in")
	recommendCmd.Flags().IntP("top", "n", 0, fmt.Sprintf("number of recommendations (%d-%d)", recommend.MinTopN, recommend.MaxTopN))
	recommendCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	recommendCmd.Flags().Bool("no-prompt", false, "never ask for missing input or browse results interactively")

	viper.BindPFlag("recommend.top-n", recommendCmd.Flags().Lookup("top"))
}

func runRecommend(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-recommender", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	noPrompt, _ := cmd.Flags().GetBool("no-prompt")
	output, _ := cmd.Flags().GetString("output")
	if output != outputText && output != outputJSON {
		logger.Fatal("unsupported output format", zap.String("output", output))
	}

	title, _ := cmd.Flags().GetString("title")
	location, _ := cmd.Flags().GetString("location")

	title, err = resolveInput("Enter job title", title, noPrompt)
	if err != nil {
		logger.Fatal("reading job title", zap.Error(err))
	}

	location, err = resolveInput("Enter location", location, noPrompt)
	if err != nil {
		logger.Fatal("reading location", zap.Error(err))
	}

	engine, _, err := loadEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the engine", zap.Error(err))
	}

	result, err := engine.Recommend(recommend.Query{
		Title:    title,
		Location: location,
		TopN:     config.Recommend.TopN,
	})
	if err != nil {
		logger.Fatal("recommending", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	if output == outputJSON {
		if err := writeJSON(out, result); err != nil {
			logger.Fatal("writing result", zap.Error(err))
		}
		return
	}

	writeText(out, result)

	if noPrompt || result.NoMatch() {
		return
	}

	if err := browse(out, result); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}

// resolveInput returns value, asking the user for it when it is blank.
func resolveInput(label, value string, noPrompt bool) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}

	if noPrompt {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), errEmptyInput)
	}

	prompt := promptui.Prompt{
		Label:    label,
		Validate: validateNotEmpty,
	}

	return prompt.Run()
}

func validateNotEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return errEmptyInput
	}
	return nil
}

func writeJSON(w io.Writer, result *recommend.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if result.NoMatch() {
		return enc.Encode(map[string]any{"match": false, "jobs": nil})
	}

	return enc.Encode(map[string]any{
		"match":      true,
		"pass":       result.Pass,
		"candidates": result.Candidates,
		"jobs":       result.Jobs,
	})
}

func writeText(w io.Writer, result *recommend.Result) {
	if result.NoMatch() {
		fmt.Fprintln(w, noMatchMessage)
		return
	}

	fmt.Fprintf(w, "Recommendations for '%s' in '%s':\n", result.Query.Title, result.Query.Location)
	for i, job := range result.Jobs {
		fmt.Fprintf(w, "\nRecommendation %d\n", i+1)
		writeJob(w, job)
	}
}

func writeJob(w io.Writer, job recommend.Job) {
	fmt.Fprintf(w, "  Title:    %s\n", job.Title)
	fmt.Fprintf(w, "  Company:  %s\n", job.Company)
	fmt.Fprintf(w, "  Location: %s\n", job.Location)
	fmt.Fprintf(w, "  URL:      %s\n", job.URL)
}

// browse lets the user reopen a recommendation until they choose done.
func browse(w io.Writer, result *recommend.Result) error {
	if fi, err := os.Stdin.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return nil
	}

	items := make([]string, 0, len(result.Jobs)+1)
	for i, job := range result.Jobs {
		items = append(items, fmt.Sprintf("%d. %s / %s", i+1,
			shorten(job.Title, maxItemLength),
			shorten(job.Company, maxItemLength),
		))
	}
	items = append(items, PromptDone)

	for {
		selectPrompt := promptui.Select{
			Label: "Choose a recommendation and press ENTER",
			Items: items,
		}

		idx, selected, err := selectPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptDone {
			return nil
		}

		job, ok := jobAt(result.Jobs, idx)
		if !ok {
			return fmt.Errorf("invalid selection: %s", selected)
		}

		fmt.Fprintln(w)
		writeJob(w, job)
	}
}

// jobAt returns the job behind a select index.
func jobAt(jobs []recommend.Job, idx int) (recommend.Job, bool) {
	if idx < 0 || idx >= len(jobs) {
		return recommend.Job{}, false
	}
	return jobs[idx], true
}

// shorten cuts s to limit runes for a menu label.
func shorten(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
