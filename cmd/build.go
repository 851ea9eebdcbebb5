package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docbundle/internal/bundle"
	"github.com/ziadkadry99/docbundle/internal/config"
	"github.com/ziadkadry99/docbundle/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundle the Markdown directory into a single HTML file",
	Long: `Renders every Markdown file of the docs directory and writes them, newest
first by default, into one self-contained HTML file.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("docs", "", "override the Markdown directory")
	buildCmd.Flags().String("output", "", "override the output HTML file")
	buildCmd.Flags().String("title", "", "override the document title")
	buildCmd.Flags().String("order", "", "section order: asc or desc")
	buildCmd.Flags().String("today", "", "date the calendar is pre-rendered for (YYYY-MM-DD)")
	buildCmd.Flags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyBuildFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	todayFlag, _ := cmd.Flags().GetString("today")
	day, err := today(todayFlag)
	if err != nil {
		return err
	}

	reporter := progress.Nop
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		reporter = progress.NewReporter(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("building bundle",
		zap.String("docs", cfg.DocsDir),
		zap.String("output", cfg.Output),
		zap.String("order", string(cfg.Order)),
	)

	b := bundle.NewBundler(cfg,
		bundle.WithLogger(logger),
		bundle.WithReporter(reporter),
		bundle.WithToday(day),
		bundle.WithVersion(Version),
	)
	res, err := b.Build(ctx)
	if err != nil {
		return fmt.Errorf("building bundle: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Bundle written: %s (%d sections, %s)\n", res.Output, res.Sections, humanize.Bytes(uint64(res.Bytes)))
	return nil
}

func applyBuildFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("docs"); v != "" {
		cfg.DocsDir = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output = v
	}
	if v, _ := cmd.Flags().GetString("title"); v != "" {
		cfg.Title = v
	}
	if v, _ := cmd.Flags().GetString("order"); v != "" {
		cfg.Order = config.Order(v)
	}
}
