package commands

import (
	"github.com/spf13/cobra"
)

var (
	_config = NewDefaultCLIConfig()
)

//RootCmd is the root command for Echo
var RootCmd = &cobra.Command{
	Use:              "echo",
	Short:            "Echo wave simulator",
	TraverseChildren: true,
}
