package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/lifelines/internal/logging"
	"github.com/ppiankov/lifelines/internal/model"
	"github.com/ppiankov/lifelines/internal/narrate"
	"github.com/ppiankov/lifelines/internal/pipeline"
	"github.com/ppiankov/lifelines/internal/present"
)

var (
	outJSON     string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noRobots    bool
	width       int
	currentYear int
	noTimeline  bool
	narrateOn   bool
	llmProvider string
	llmModel    string
	llmBaseURL  string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape [url]",
	Short: "Scrape a table and render lifespans",
	Long: `Scrape reads the first wikitable on the page, extracts each person's
name and dates from the Name column, and renders:
- a table of name, born, died and age at death
- summary statistics
- a lifespan timeline

Without a URL the configured source (List of prime ministers of Australia)
is used.

Example:
  lifelines scrape
  lifelines scrape --json records.json --no-timeline
  lifelines scrape --narrate --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	addOutputFlags(scrapeCmd)

	scrapeCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	scrapeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent")
	scrapeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read")
	scrapeCmd.Flags().BoolVar(&noCache, "no-cache", false, "ignore the stored page and fetch again")
	scrapeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "do not consult robots.txt")

	scrapeCmd.Flags().BoolVar(&narrateOn, "narrate", false, "add an LLM-written paragraph")
	scrapeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	scrapeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	scrapeCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "OpenAI-compatible API base URL")
}

// addOutputFlags registers the rendering flags shared by scrape and simulate
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outJSON, "json", "", "also write records as JSON to this path")
	cmd.Flags().IntVar(&width, "width", 0, "timeline width in columns")
	cmd.Flags().IntVar(&currentYear, "current-year", 0, "year living subjects' bars end at (default: this year)")
	cmd.Flags().BoolVar(&noTimeline, "no-timeline", false, "skip the timeline chart")
}

// applyOutputFlags copies explicitly set output flags over cfg
func applyOutputFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("json") {
		cfg.Output.JSONPath = outJSON
	}
	if flags.Changed("width") {
		cfg.Output.Width = width
	}
	if flags.Changed("current-year") {
		cfg.Output.CurrentYear = currentYear
	}
	if flags.Changed("no-timeline") {
		cfg.Output.NoTimeline = noTimeline
	}
}

// applyScrapeFlags copies explicitly set scrape flags over cfg
func applyScrapeFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	applyOutputFlags(cmd, cfg)

	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if narrateOn {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	if flags.Changed("llm-base-url") {
		cfg.LLM.BaseURL = llmBaseURL
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	applyScrapeFlags(cmd, cfg)

	url := cfg.Source.URL
	if len(args) == 1 {
		url = args[0]
	}

	logger, err := logging.New(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	stderr := cmd.ErrOrStderr()

	opts := []pipeline.Option{pipeline.WithNoCache(noCache)}
	if narrator := narratorFor(stderr, cfg, logger); narrator != nil {
		opts = append(opts, pipeline.WithNarrator(narrator))
	}

	p, err := pipeline.NewPipeline(cfg, logger, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTP.Timeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(stderr, "Scraping: %s\n", url)
		fmt.Fprintf(stderr, "Cache: %s\n\n", p.CachePath(url))
	}

	report, err := p.Run(ctx, url)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	reportProgress(stderr, report)

	if err := render(cmd.OutOrStdout(), cfg, report.Records, report.Summary); err != nil {
		return err
	}

	if n := report.Narrative; n != nil {
		for _, w := range n.Warnings {
			fmt.Fprintf(stderr, "⚠ %s\n", w)
		}
		if n.Enabled {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", n.Text)
		}
	}

	if cfg.Output.JSONPath != "" {
		if err := present.WriteJSON(report, cfg.Output.JSONPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		fmt.Fprintf(stderr, "✓ Wrote JSON: %s\n", cfg.Output.JSONPath)
	}

	logger.Debug("scrape complete", zap.String("url", url), zap.Int("records", len(report.Records)))
	return nil
}

// narratorFor builds the configured narrator. A provider that cannot be
// set up (e.g. no API key) is reported on w and the scrape runs without one.
func narratorFor(w io.Writer, cfg *model.Config, logger *zap.Logger) *narrate.Narrator {
	if cfg.LLM.Provider == "" {
		return nil
	}
	narrator, err := narrate.NewNarrator(narrate.ConfigFromModel(cfg), logger)
	if err != nil {
		fmt.Fprintf(w, "⚠ narration disabled: %v\n", err)
		return nil
	}
	return narrator
}

// reportProgress prints the stage counts and every row-level problem
func reportProgress(w io.Writer, report *model.Report) {
	source := "fetched"
	if report.FromCache {
		source = "from cache"
	}
	fmt.Fprintf(w, "✓ Loaded page (%s)\n", source)
	fmt.Fprintf(w, "✓ %d records (%d duplicate rows collapsed, %d header rows dropped)\n",
		len(report.Records), report.DuplicatesRemoved, report.HeaderRowsDropped)

	if len(report.Issues) > 0 {
		fmt.Fprintf(w, "⚠ %d rows with problems:\n", len(report.Issues))
		for _, issue := range report.Issues {
			fmt.Fprintf(w, "  - [%s] %q: %s\n", issue.Kind, issue.Text, issue.Detail)
		}
	}
	for _, c := range report.Conflicts {
		fmt.Fprintf(w, "⚠ %d differing records named %q kept\n", len(c.Records), c.Name)
	}
}

// render writes the table, summary and timeline for records
func render(w io.Writer, cfg *model.Config, records []model.PersonRecord, summary model.Summary) error {
	year := cfg.Output.CurrentYear
	if year == 0 {
		year = time.Now().Year()
	}
	return present.New(w, cfg.Output.Width).Render(records, summary, year, !cfg.Output.NoTimeline)
}
