package main

import (
	"os"

	cmd "github.com/mosaicnetworks/echo/cmd/echo/commands"
)

func main() {
	rootCmd := cmd.RootCmd

	rootCmd.AddCommand(
		cmd.VersionCmd,
		cmd.NewGenCmd(),
		cmd.NewRunCmd(),
		cmd.NewTraceCmd(),
		cmd.NewSweepCmd(),
	)

	//Do not print usage when error occurs
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
