package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vcrobe/neonjsx/console"
	"github.com/vcrobe/neonjsx/internal/sim"
	"github.com/vcrobe/neonjsx/visual"
)

var errDegraded = errors.New("at least one trace degraded")

var failOnDegrade bool

var replayCmd = &cobra.Command{
	Use:   "replay <trace.yaml>...",
	Short: "Replay one or more traces and print the monitor's verdict",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := console.NewLogger(logLevel)

		degraded := false
		for _, path := range args {
			tr, err := sim.LoadTrace(path)
			if err != nil {
				return err
			}
			rep, err := sim.Replay(cmd.Context(), tr, cfg, logger)
			if err != nil {
				return fmt.Errorf("replaying %s: %w", path, err)
			}
			printReport(cmd.OutOrStdout(), rep)
			degraded = degraded || rep.Metrics.Degraded
		}

		if failOnDegrade && degraded {
			return errDegraded
		}
		return nil
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the effective monitor configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	replayCmd.Flags().BoolVar(&failOnDegrade, "fail-on-degrade", false, "exit non-zero when any trace degrades")
}

func loadConfig() (visual.Config, error) {
	if configPath == "" {
		return visual.DefaultConfig(), nil
	}
	return visual.LoadConfig(configPath)
}

func printReport(w io.Writer, rep sim.Report) {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	gray := color.New(color.FgHiBlack)

	cyan.Fprintf(w, "▶ %s\n", rep.Name)

	class := "normal"
	if rep.LowPower {
		class = "low-power"
	}
	fmt.Fprintf(w, "    device:  %s ", class)
	gray.Fprintf(w, "(jank ≥ %d, fps < %g, long tasks > %gms)\n",
		rep.Limits.JankFrames, rep.Limits.MinFPS, rep.Limits.LongTaskMs)

	if rep.Status != "" {
		fmt.Fprintf(w, "    status:  %s\n", rep.Status)
	}
	fmt.Fprintf(w, "    frames:  %d replayed", rep.Replayed)
	if rep.Remaining > 0 {
		gray.Fprintf(w, ", %d unused", rep.Remaining)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "    verdict: ")
	switch {
	case !rep.Metrics.Completed:
		gray.Fprintln(w, "not measured")
	case rep.Metrics.Degraded:
		red.Fprintf(w, "degraded (fps %d, jank %d)\n", int64(math.Round(rep.Metrics.FPS)), rep.Metrics.Jank)
	default:
		green.Fprintf(w, "ok (fps %d, jank %d)\n", int64(math.Round(rep.Metrics.FPS)), rep.Metrics.Jank)
	}

	if rep.Prompted {
		yellow.Fprintln(w, "    prompt:  shown")
	}
	fmt.Fprintf(w, "    mode:    %s\n", rep.Mode)
}
