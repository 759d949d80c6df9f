package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/mosaicnetworks/echo/src/echo"
	"github.com/spf13/cobra"
)

var sweepOpts = echo.SweepOptions{
	Runs:      100,
	FirstSeed: 1,
	Workers:   4,
}

// NewSweepCmd produces a SweepCmd which runs the wave under many seeds
func NewSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Run the wave once per seed and summarise the outcomes",
		PreRunE: loadConfig,
		RunE:    sweep,
	}

	AddSweepFlags(cmd)

	return cmd
}

//AddSweepFlags adds flags to the sweep command
func AddSweepFlags(cmd *cobra.Command) {
	cmd.Flags().String("datadir", _config.Echo.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.Echo.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().StringP("graph", "g", _config.Echo.GraphFile, "Graph description, relative to datadir")
	cmd.Flags().String("selector", _config.Echo.Selector, "Delivery order: random, fifo, lifo, echo-first")
	cmd.Flags().String("late-echo", _config.Echo.LateEcho, "Handling of ECHOs received after joining the wave: absorb, ignore")
	cmd.Flags().IntVar(&sweepOpts.Runs, "runs", sweepOpts.Runs, "Number of runs")
	cmd.Flags().Int64Var(&sweepOpts.FirstSeed, "first-seed", sweepOpts.FirstSeed, "Seed of the first run")
	cmd.Flags().IntVar(&sweepOpts.Workers, "workers", sweepOpts.Workers, "Runs executed in parallel")
}

func sweep(cmd *cobra.Command, args []string) error {
	report, err := echo.Sweep(context.Background(), &_config.Echo, sweepOpts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%d runs, steps in [%d, %d]\n", report.Runs, report.MinSteps, report.MaxSteps)

	outcomes := make([]string, 0, len(report.Outcomes))
	for o := range report.Outcomes {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		fmt.Fprintf(out, "%s: %d\n", o, report.Outcomes[o])
	}

	fmt.Fprintf(out, "distinct spanning trees: %d\n", len(report.Trees))

	return nil
}
