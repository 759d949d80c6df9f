package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mosaicnetworks/echo/src/echo"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/service"
	"github.com/mosaicnetworks/echo/src/telemetry"
	"github.com/mosaicnetworks/echo/src/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//NewRunCmd returns the command that runs a wave
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run an Echo wave over the graph in the data directory",
		PreRunE: loadConfig,
		RunE:    runEcho,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runEcho(cmd *cobra.Command, args []string) error {
	telemetry.SetBuildInfo(version.Version)

	engine := echo.NewEcho(&_config.Echo)

	if err := engine.Init(); err != nil {
		_config.Echo.Logger().Error("Cannot initialize engine:", err)
		return err
	}
	defer engine.Close()

	if _config.Echo.ServiceAddr != "" {
		serviceServer := service.NewService(_config.Echo.ServiceAddr, engine, _config.Echo.Logger())
		go serviceServer.Serve()
	}

	result, err := engine.Run()
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result)

	if _config.Wait && _config.Echo.ServiceAddr != "" {
		_config.Echo.Logger().WithField("service", _config.Echo.ServiceAddr).Info("Waiting for interrupt")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
	}

	return nil
}

func printResult(w io.Writer, result *echo.Result) {
	fmt.Fprintf(w, "Wave terminated after %d deliveries (seed %d)\n", result.Steps, result.Seed)
	printSubtree(w, result, result.Initiator, 0)
}

func printSubtree(w io.Writer, result *echo.Result, id graph.NodeID, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
	fmt.Fprintln(w, id)

	for _, child := range result.Children(id) {
		printSubtree(w, result, child, depth+1)
	}
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("datadir", _config.Echo.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.Echo.LogLevel, "debug, info, warn, error, fatal, panic")

	// Graph
	cmd.Flags().StringP("graph", "g", _config.Echo.GraphFile, "Graph description, relative to datadir")

	// Execution log
	cmd.Flags().String("exec-log", _config.Echo.ExecLog, "Execution log file, relative to datadir; empty to disable")

	// Scheduling
	cmd.Flags().String("selector", _config.Echo.Selector, "Delivery order: random, fifo, lifo, echo-first")
	cmd.Flags().Int64("seed", _config.Echo.Seed, "Seed of the random selector; 0 picks one from the clock")
	cmd.Flags().String("late-echo", _config.Echo.LateEcho, "Handling of ECHOs received after joining the wave: absorb, ignore")

	// Store
	cmd.Flags().Bool("store", _config.Echo.Store, "Persist the execution trace in badgerDB")
	cmd.Flags().String("db", _config.Echo.DatabaseDir, "Database directory")

	// Service
	cmd.Flags().StringP("service-listen", "s", _config.Echo.ServiceAddr, "Listen IP:Port for HTTP service")
	cmd.Flags().Bool("wait", _config.Wait, "Keep the HTTP service up after the wave")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.Echo.SetDataDir(_config.Echo.DataDir)

	logFields := logrus.Fields{
		"echo.DataDir":     _config.Echo.DataDir,
		"echo.GraphFile":   _config.Echo.GraphFile,
		"echo.ExecLog":     _config.Echo.ExecLog,
		"echo.Selector":    _config.Echo.Selector,
		"echo.Seed":        _config.Echo.Seed,
		"echo.LateEcho":    _config.Echo.LateEcho,
		"echo.Store":       _config.Echo.Store,
		"echo.ServiceAddr": _config.Echo.ServiceAddr,
		"echo.LogLevel":    _config.Echo.LogLevel,
	}

	if _config.Echo.Store {
		logFields["echo.DatabaseDir"] = _config.Echo.DatabaseDir
	}

	_config.Echo.Logger().WithFields(logFields).Debug("Config")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/echo.toml (.json, .yaml also work)
	viper.SetConfigName("echo")               // name of config file (without extension)
	viper.AddConfigPath(_config.Echo.DataDir) // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Echo.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Echo.Logger().Debugf("No config file found in: %s", _config.Echo.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}
