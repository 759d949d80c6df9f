package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/spf13/cobra"
)

var genOpts = graph.GeneratorOptions{
	Size:  5,
	Extra: 0,
	Seed:  1,
}

// NewGenCmd produces a GenCmd which writes a generated graph description
func NewGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     fmt.Sprintf("gen [%s]", strings.Join(graph.Shapes, "|")),
		Short:   "Write a generated graph description",
		Args:    cobra.ExactArgs(1),
		PreRunE: loadConfig,
		RunE:    gen,
	}

	AddGenFlags(cmd)

	return cmd
}

//AddGenFlags adds flags to the gen command
func AddGenFlags(cmd *cobra.Command) {
	cmd.Flags().String("datadir", _config.Echo.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().StringP("graph", "g", _config.Echo.GraphFile, "Graph description, relative to datadir")
	cmd.Flags().IntVar(&genOpts.Size, "size", genOpts.Size, "Number of nodes; side length for grids")
	cmd.Flags().IntVar(&genOpts.Extra, "extra", genOpts.Extra, "Links added to the random spanning tree")
	cmd.Flags().Int64Var(&genOpts.Seed, "graph-seed", genOpts.Seed, "Seed of the random shape")
}

func gen(cmd *cobra.Command, args []string) error {
	topology, err := graph.Generate(args[0], genOpts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(_config.Echo.DataDir, 0700); err != nil {
		return fmt.Errorf("Creating data directory: %s", err)
	}

	jsonGraph := graph.NewJSONGraph(_config.Echo.DataDir, _config.Echo.GraphFile)

	if err := jsonGraph.Write(topology); err != nil {
		return fmt.Errorf("Writing graph: %s", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s graph with %d nodes and %d links saved to: %s\n",
		args[0], topology.Len(), topology.Links(), jsonGraph.Path())

	return nil
}
