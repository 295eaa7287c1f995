package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mediapress/internal/config"
	"mediapress/internal/encoding"
	"mediapress/internal/logging"
	"mediapress/internal/pipeline"
	"mediapress/internal/preflight"
	"mediapress/internal/runlock"
	"mediapress/internal/services"
)

type compressOptions struct {
	output       string
	quality      float64
	force        bool
	root         string
	jsonOutput   bool
	videoProfile string
	crf          int
	preset       string
	mobile       bool
}

func newCompressCommand(ctx *commandContext) *cobra.Command {
	var opts compressOptions

	cmd := &cobra.Command{
		Use:   "compress [files...]",
		Short: "Compress media under the input root into the output directory",
		Long: `Compress every image and video under the input root, or only the named
files, writing results into the output directory with the same relative
layout. Files whose output already exists are skipped unless --force is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := applyCompressFlags(cmd, &cfg, opts); err != nil {
				return err
			}
			return runCompress(cmd, ctx, &cfg, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default from config, \"compress\")")
	cmd.Flags().Float64VarP(&opts.quality, "quality", "q", 0, "JPEG quality 0-100 (default from config, 70)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Re-encode files whose output already exists")
	cmd.Flags().StringVar(&opts.root, "root", "", "Input root (default is the working directory)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the batch summary as JSON")
	cmd.Flags().StringVar(&opts.videoProfile, "video-profile", "", "Video profile: baseline, compat, or custom")
	cmd.Flags().IntVar(&opts.crf, "crf", 0, "Video CRF (0-63)")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "Encoder preset for baseline/custom profiles")
	cmd.Flags().BoolVar(&opts.mobile, "mobile", false, "Compat profile: target mobile playback (tagged HEVC)")

	return cmd
}

// applyCompressFlags overrides config values with explicitly set flags and
// re-validates the result.
func applyCompressFlags(cmd *cobra.Command, cfg *config.Config, opts compressOptions) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Paths.OutputDir = opts.output
	}
	if flags.Changed("quality") {
		cfg.Image.Quality = opts.quality
	}
	if flags.Changed("video-profile") {
		cfg.Video.Profile = opts.videoProfile
	}
	if flags.Changed("crf") {
		cfg.Video.CRF = opts.crf
	}
	if flags.Changed("preset") {
		cfg.Video.Preset = opts.preset
	}
	if flags.Changed("mobile") {
		cfg.Video.MobileSupport = opts.mobile
	}
	if err := cfg.Finalize(); err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "apply flags", "invalid option", err)
	}
	return nil
}

func runCompress(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, opts compressOptions, inputs []string) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrFileSystem, "cli", "prepare directories", "output or log directory", err)
	}
	logger, closeLog, err := ctx.newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	runCtx := cmd.Context()

	tools := encoding.NewExecToolchain(cfg.FFmpegBinary(), cfg.FFprobeBinary())
	progress := &progressReporter{}
	runner := pipeline.NewRunner(pipeline.NewRunConfig(cfg, opts.root, opts.force), tools, logger,
		pipeline.WithProgress(func(ev pipeline.Progress) { progress.update(ev) }))

	plan, err := runner.Plan(runCtx, inputs)
	if err != nil {
		return err
	}

	checks := preflight.RunAll(runCtx, cfg, preflight.Options{OutputDir: plan.OutputRoot, NeedVideo: plan.HasVideo()})
	for _, warning := range preflight.Warnings(checks) {
		logging.WarnWithContext(logger, "optional dependency unavailable", "preflight_warning",
			logging.String("check", warning.Name),
			logging.String("detail", warning.Detail),
			logging.String(logging.FieldErrorHint, "install ffprobe to enable automatic downscaling"),
			logging.String(logging.FieldImpact, "videos are encoded at their source size"),
		)
	}
	if err := preflight.Err(checks); err != nil {
		return err
	}

	lock, err := runlock.Acquire(plan.OutputRoot)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release run lock failed", logging.Error(err))
		}
	}()

	progress = newProgressReporter(cmd.ErrOrStderr(), len(plan.Candidates), !opts.jsonOutput)
	summary := runner.Execute(runCtx, plan)
	progress.finish()

	if opts.jsonOutput {
		if err := writeJSON(cmd, newSummaryView(summary)); err != nil {
			return err
		}
	} else {
		renderSummary(cmd.OutOrStdout(), summary, shouldColorize(cmd.OutOrStdout()))
	}

	if summary.Interrupted {
		if err := runCtx.Err(); err != nil {
			return err
		}
	}
	if summary.Stats.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Stats.Failed, summary.Stats.Total)
	}
	return nil
}

func renderSummary(out io.Writer, summary pipeline.Summary, colorize bool) {
	rows := make([][]string, 0, len(summary.Files))
	for _, f := range summary.Files {
		rows = append(rows, []string{
			f.RelPath,
			f.Kind.String(),
			colorizeOutcome(string(f.Outcome), colorize),
			sizeCell(f, func(s pipeline.FileResult) int64 { return s.Stats.OriginalSize }),
			sizeCell(f, func(s pipeline.FileResult) int64 { return s.Stats.CompressedSize }),
			reductionCell(f),
			detailCell(f),
		})
	}

	printer := message.NewPrinter(language.English)
	stats := summary.Stats
	footer := []string{
		printer.Sprintf("%d files", stats.Total),
		"",
		printer.Sprintf("%d encoded", stats.Encoded),
		humanize.IBytes(uint64(stats.TotalInputBytes)),
		humanize.IBytes(uint64(stats.TotalOutputBytes)),
		fmt.Sprintf("%.1f%%", stats.ReductionPercent()),
		printer.Sprintf("%d skipped, %d unsupported, %d failed", stats.Skipped, stats.Unsupported, stats.Failed),
	}

	if len(rows) == 0 {
		fmt.Fprintln(out, "No files found.")
		return
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Kind", "Result", "Original", "Compressed", "Saved", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
		footer,
	))
	fmt.Fprintln(out, printer.Sprintf("Output: %s (%d bytes saved in %s)", summary.OutputRoot, max(stats.SpaceSaved(), 0), summary.Elapsed.Round(10*time.Millisecond)))
	if summary.Interrupted {
		fmt.Fprintln(out, "Interrupted; rerun to continue (finished files are skipped).")
	}
}

func sizeCell(f pipeline.FileResult, pick func(pipeline.FileResult) int64) string {
	if f.Outcome != pipeline.OutcomeEncoded {
		return "-"
	}
	return humanize.IBytes(uint64(pick(f)))
}

func reductionCell(f pipeline.FileResult) string {
	if f.Outcome != pipeline.OutcomeEncoded {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", f.Stats.ReductionPercent)
}

func detailCell(f pipeline.FileResult) string {
	switch {
	case f.Err != nil:
		return f.Err.Error()
	case f.Reason != "":
		return f.Reason
	case f.Output != "":
		return filepath.Base(f.Output)
	default:
		return ""
	}
}
