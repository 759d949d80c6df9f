package commands

import (
	"fmt"

	"github.com/mosaicnetworks/echo/src/trace"
	"github.com/spf13/cobra"
)

// NewTraceCmd produces a TraceCmd which prints the execution trace persisted
// by the last run with --store
func NewTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trace",
		Short:   "Print the execution trace stored in the database",
		PreRunE: loadConfig,
		RunE:    printTrace,
	}

	AddTraceFlags(cmd)

	return cmd
}

//AddTraceFlags adds flags to the trace command
func AddTraceFlags(cmd *cobra.Command) {
	cmd.Flags().String("datadir", _config.Echo.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("db", _config.Echo.DatabaseDir, "Database directory")
}

func printTrace(cmd *cobra.Command, args []string) error {
	store, err := trace.NewBadgerStore(_config.Echo.DatabaseDir, _config.Echo.Logger())
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := store.Events()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, trace.ExecutionLogHeader)
	for _, e := range events {
		fmt.Fprintln(out, e.String())
	}

	return nil
}
