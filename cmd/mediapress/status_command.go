package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediapress/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and dependency status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			configMessage := ctx.configPath
			if !ctx.configExists {
				configMessage += " (not found, using defaults)"
			}
			lines = append(lines,
				renderStatusLine("Config file", statusInfo, configMessage, colorize),
				renderStatusLine("Output directory", statusInfo, cfg.Paths.OutputDir, colorize),
				renderStatusLine("Video profile", statusInfo, fmt.Sprintf("%s (platform %s, mobile %s)", cfg.Video.Profile, cfg.Video.Platform, yesNo(cfg.Video.MobileSupport)), colorize),
				renderStatusLine("JPEG quality", statusInfo, fmt.Sprintf("%.1f", cfg.Image.Quality), colorize),
				"",
			)

			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{
				OutputDir: cfg.Paths.OutputDir,
				NeedVideo: true,
			})
			for _, result := range results {
				kind := statusOK
				switch {
				case result.Passed:
				case result.Optional:
					kind = statusWarn
				default:
					kind = statusError
				}
				lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}
