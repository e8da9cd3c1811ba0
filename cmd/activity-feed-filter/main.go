package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnema/activity-feed-filter/internal/config"
	"github.com/bnema/activity-feed-filter/internal/engine"
	"github.com/bnema/activity-feed-filter/internal/extract"
	"github.com/bnema/activity-feed-filter/internal/feed"
	"github.com/bnema/activity-feed-filter/internal/models"
	"github.com/bnema/activity-feed-filter/internal/urlmatch"
)

var (
	cfgFile string
	verbose bool
	appFs   = afero.NewOsFs()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "activity-feed-filter",
	Short: "Filter unwanted activities out of an AniList activity feed",
	Long: `Decides which entries of an AniList activity feed to keep, using removal
conditions, linked condition groups and string rules from a TOML config.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		cmd.SetContext(feed.WithLogger(cmd.Context(), logger))
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE:  runInit,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config file",
	RunE:  runValidate,
}

var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "List the available removal conditions",
	RunE:  runConditions,
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Decide single activity fixtures",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

var filterCmd = &cobra.Command{
	Use:   "filter FILE",
	Short: "Filter a saved feed page, loading more until the target is reached",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilter,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./configs/feed_filter.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	filterCmd.Flags().Int("page-size", feed.DefaultPageSize, "activities per \"Load More\" batch")
	filterCmd.Flags().String("page-url", "", "URL the page was saved from, checked against run_on")
	filterCmd.Flags().StringP("format", "f", "text", "report format: text, json or yaml")
	filterCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	filterCmd.Flags().Bool("watch", false, "re-run whenever the config file changes")

	rootCmd.AddCommand(initCmd, validateCmd, conditionsCmd, checkCmd, filterCmd)
}

func initConfig() {
	config.Configure(viper.GetViper(), cfgFile)

	if err := config.Read(viper.GetViper()); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
	}
}

// loadConfig validates the settings read at startup. Every validation
// message is printed; an invalid config disables filtering entirely.
func loadConfig(cmd *cobra.Command) (*models.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		printValidationErrors(cmd.ErrOrStderr(), err)
		return nil, err
	}
	return cfg, nil
}

func printValidationErrors(w io.Writer, err error) {
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	fmt.Fprintln(w, "Configuration errors:")
	for _, msg := range verr.Messages {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.DefaultPath
	if cfgFile != "" {
		configPath = cfgFile
	}

	if err := config.WriteDefault(appFs, configPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", configPath)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Config: %s\n", used)
	} else {
		fmt.Fprintln(out, "Config: defaults (no file found)")
	}
	fmt.Fprintln(out, "Configuration OK")

	mode := "normal"
	if cfg.Options.ReverseConditions {
		mode = "reversed"
	}
	fmt.Fprintf(out, "  Mode: %s\n", mode)
	fmt.Fprintf(out, "  Target load count: %d\n", cfg.Options.TargetLoadCount)

	active := engine.ActiveConditions(cfg)
	names := make([]string, len(active))
	for i, c := range active {
		names[i] = c.String()
	}
	if len(names) == 0 {
		names = []string{"none"}
	}
	fmt.Fprintf(out, "  Independent conditions: %s\n", strings.Join(names, ", "))

	for i, group := range cfg.Options.LinkedConditions {
		members := make([]string, len(group))
		for j, c := range group {
			members[j] = c.String()
		}
		fmt.Fprintf(out, "  Linked group %d: %s\n", i+1, strings.Join(members, " + "))
	}

	return nil
}

var conditionDescriptions = map[models.Condition]string{
	models.ConditionUncommented:     "activities without comments",
	models.ConditionUnliked:         "activities without likes",
	models.ConditionText:            "text or message activities without images or videos",
	models.ConditionImages:          "activities with an image that is not a gif",
	models.ConditionGifs:            "activities with a gif",
	models.ConditionVideos:          "activities with a video or YouTube embed",
	models.ConditionContainsStrings: "activities containing the configured strings",
}

func runConditions(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "Available conditions:")
	for _, c := range models.AllConditions() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %s\n", c, conditionDescriptions[c])
	}
	return nil
}

type checkResult struct {
	index    int
	path     string
	entry    models.Entry
	decision engine.Decision
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	p := pool.NewWithResults[checkResult]().
		WithContext(cmd.Context()).
		WithMaxGoroutines(runtime.GOMAXPROCS(0))

	for i, path := range args {
		i, path := i, path
		p.Go(func(ctx context.Context) (checkResult, error) {
			data, err := afero.ReadFile(appFs, path)
			if err != nil {
				return checkResult{}, fmt.Errorf("read %s: %w", path, err)
			}
			entry, err := extract.New().ParseEntry(bytes.NewReader(data))
			if err != nil {
				return checkResult{}, fmt.Errorf("%s: %w", path, err)
			}
			return checkResult{
				index:    i,
				path:     path,
				entry:    entry,
				decision: engine.Explain(entry.Signals, cfg),
			}, nil
		})
	}

	results, err := p.Wait()
	sort.Slice(results, func(a, b int) bool { return results[a].index < results[b].index })

	out := cmd.OutOrStdout()
	for _, r := range results {
		verdict := "keep"
		if r.decision.Remove {
			verdict = "remove"
		}
		fmt.Fprintf(out, "%-6s %s", verdict, r.path)
		if len(r.decision.Reasons) > 0 {
			fmt.Fprintf(out, " (%s)", strings.Join(r.decision.Reasons, ", "))
		}
		fmt.Fprintln(out)
	}

	return err
}

type filterOptions struct {
	source   string
	pageSize int
	format   string
	output   string
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pageURL, _ := cmd.Flags().GetString("page-url")
	watch, _ := cmd.Flags().GetBool("watch")
	opts := filterOptions{source: args[0]}
	opts.pageSize, _ = cmd.Flags().GetInt("page-size")
	opts.format, _ = cmd.Flags().GetString("format")
	opts.output, _ = cmd.Flags().GetString("output")

	if !validFormat(opts.format) {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if pageURL != "" && !urlmatch.Allowed(pageURL, cfg.RunOn) {
		fmt.Fprintf(cmd.OutOrStdout(), "Page %s is not enabled in run_on, nothing filtered\n", pageURL)
		return nil
	}

	ctx := cmd.Context()
	ctrl := feed.NewController(cfg)

	if err := filterOnce(ctx, cmd.OutOrStdout(), ctrl, opts); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	if viper.ConfigFileUsed() == "" {
		return fmt.Errorf("--watch needs a config file")
	}

	logger := feed.LoggerFromContext(ctx)

	// Buffered so a burst of writes results in a single re-run
	changes := make(chan struct{}, 1)
	viper.OnConfigChange(func(e fsnotify.Event) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	viper.WatchConfig()
	logger.Info("watching config", "file", viper.ConfigFileUsed())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			next, err := config.Load(viper.GetViper())
			if err != nil {
				printValidationErrors(cmd.ErrOrStderr(), err)
				logger.Warn("config change ignored", "error", err)
				continue
			}
			ctrl.SetConfig(next)
			if err := filterOnce(ctx, cmd.OutOrStdout(), ctrl, opts); err != nil {
				return err
			}
		}
	}
}

func filterOnce(ctx context.Context, out io.Writer, ctrl *feed.Controller, opts filterOptions) error {
	logger := feed.LoggerFromContext(ctx)

	data, err := afero.ReadFile(appFs, opts.source)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.source, err)
	}

	parser := extract.New()
	entries, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	pStats := parser.Stats()
	logger.Debug("feed parsed", "entries", pStats.Total, "text", pStats.Text,
		"images", pStats.Images, "gifs", pStats.Gifs, "videos", pStats.Videos)

	loadsBefore := ctrl.Stats().Loads
	pager := feed.NewStaticPager(entries, opts.pageSize)

	results, err := ctrl.Run(ctx, pager)
	cancelled := errors.Is(err, context.Canceled)
	if err != nil && !cancelled {
		return err
	}
	if cancelled {
		logger.Info("loading cancelled", "kept", ctrl.LoadCount())
	}

	report := newReport(opts.source, ctrl.Config(), results)
	report.Loads = ctrl.Stats().Loads - loadsBefore
	report.PagesLeft = pager.Remaining()
	report.Cancelled = cancelled

	if opts.output == "" {
		return writeReport(out, report, opts.format)
	}
	if err := writeReportFile(appFs, opts.output, report, opts.format); err != nil {
		return err
	}
	fmt.Fprintf(out, "Report written to %s\n", opts.output)
	return nil
}
