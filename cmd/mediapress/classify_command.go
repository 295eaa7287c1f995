package main

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"mediapress/internal/encoding"
	"mediapress/internal/media"
	"mediapress/internal/media/ffprobe"
	"mediapress/internal/pipeline"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var (
		root   string
		output string
		force  bool
		probe  bool
	)

	cmd := &cobra.Command{
		Use:   "classify [files...]",
		Short: "Preview how each file would be handled without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Paths.OutputDir = output
				if err := cfg.Finalize(); err != nil {
					return err
				}
			}
			logger, closeLog, err := ctx.newLogger(&cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			// Reads hit the disk; directory creation lands in memory.
			dry := afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs())
			tools := encoding.NewExecToolchain(cfg.FFmpegBinary(), cfg.FFprobeBinary())
			runner := pipeline.NewRunner(pipeline.NewRunConfig(&cfg, root, force), tools, logger, pipeline.WithFs(dry))

			plan, err := runner.Plan(cmd.Context(), args)
			if err != nil {
				return err
			}
			entries := runner.Preview(plan)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No files found.")
				return nil
			}

			colorize := shouldColorize(cmd.OutOrStdout())
			headers := []string{"File", "Kind", "Action", "Output"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}
			if probe {
				headers = append(headers, "Source", "Resize")
				aligns = append(aligns, alignRight, alignLeft)
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				outputCell := entry.Output
				switch {
				case entry.Err != nil:
					outputCell = entry.Err.Error()
				case entry.Reason != "":
					outputCell = entry.Reason
				}
				row := []string{entry.RelPath, entry.Kind.String(), colorizeOutcome(entry.Action, colorize), outputCell}
				if probe {
					row = append(row, probeCells(cmd, cfg.FFprobeBinary(), entry)...)
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Input root (default is the working directory)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Preview as if --force were passed to compress")
	cmd.Flags().BoolVar(&probe, "probe", false, "Inspect videos with ffprobe and show the resize decision")
	return cmd
}

func probeCells(cmd *cobra.Command, ffprobeBinary string, entry pipeline.PreviewEntry) []string {
	if entry.Kind != media.Video || entry.AbsPath == "" {
		return []string{"", ""}
	}
	result, err := ffprobe.Inspect(cmd.Context(), ffprobeBinary, entry.AbsPath)
	if err != nil {
		return []string{"probe failed", "no"}
	}
	width, height := result.VideoSize()
	if width == 0 || height == 0 {
		return []string{"no video stream", "no"}
	}
	source := fmt.Sprintf("%dx%d", width, height)
	if duration := result.DurationSeconds(); duration > 0 {
		source += fmt.Sprintf(" %.0fs", duration)
	}
	if audio := result.AudioStreamCount(); audio > 0 {
		source += fmt.Sprintf(" +%d audio", audio)
	}
	filter := encoding.ResizeFilter(&encoding.Dimensions{Width: width, Height: height})
	if filter == "" {
		return []string{source, "no"}
	}
	return []string{source, strings.TrimPrefix(filter, "scale=")}
}
