package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mosaicnetworks/echo/src/common"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/net"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultGraphFile is the default name of the graph description.
	DefaultGraphFile = graph.DefaultGraphFile

	// DefaultExecLogFile is the default name of the execution log.
	DefaultExecLogFile = "execution_log.txt"

	// DefaultBadgerFile is the default name of the folder containing the Badger
	// database
	DefaultBadgerFile = "badger_db"
)

// Default configuration values.
const (
	DefaultLogLevel    = "info"
	DefaultSelector    = net.RandomSelection
	DefaultSeed        = 0
	DefaultLateEcho    = "absorb"
	DefaultStore       = false
	DefaultServiceAddr = ""
)

// Config contains all the configuration properties of a simulation.
type Config struct {
	// DataDir is the top-level directory containing the graph description, the
	// execution log, and the database.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// GraphFile is the graph description, relative to DataDir unless absolute.
	GraphFile string `mapstructure:"graph"`

	// ExecLog is the execution log file, relative to DataDir unless absolute.
	// Empty disables the execution log.
	ExecLog string `mapstructure:"exec-log"`

	// Selector names the delivery order policy: random, fifo, lifo, or
	// echo-first.
	Selector string `mapstructure:"selector"`

	// Seed seeds the random selector. Zero picks a seed from the clock, which
	// is logged so that a run can be replayed.
	Seed int64 `mapstructure:"seed"`

	// LateEcho is the policy for ECHOs that arrive after a node has joined the
	// wave: absorb or ignore.
	LateEcho string `mapstructure:"late-echo"`

	// Store activates persistent storage of the execution trace.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db"`

	// ServiceAddr is the address:port of the optional HTTP service. Empty
	// disables it.
	ServiceAddr string `mapstructure:"service-listen"`

	// Topology, when set, is used instead of loading GraphFile.
	Topology *graph.Topology

	// DeliverySelector, when set, is used instead of the policy named by
	// Selector.
	DeliverySelector net.Selector

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:     DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		GraphFile:   DefaultGraphFile,
		ExecLog:     DefaultExecLogFile,
		Selector:    DefaultSelector,
		Seed:        DefaultSeed,
		LateEcho:    DefaultLateEcho,
		Store:       DefaultStore,
		DatabaseDir: DefaultDatabaseDir(),
		ServiceAddr: DefaultServiceAddr,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests. The execution log is disabled.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.ExecLog = ""
	config.logger = common.NewTestLogger(t, level)
	return config
}

// SetDataDir sets the top-level directory, and updates the database directory
// if it is currently set to the default value. If the database directory is
// not currently the default, it means the user has explicitely set it to
// something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// ExecLogPath returns the full path of the execution log, or an empty string if
// it is disabled.
func (c *Config) ExecLogPath() string {
	if c.ExecLog == "" || filepath.IsAbs(c.ExecLog) {
		return c.ExecLog
	}
	return filepath.Join(c.DataDir, c.ExecLog)
}

// Logger returns a formatted logrus Entry, with prefix set to "echo".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
	}
	return c.logger.WithField("prefix", "echo")
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level config based
// on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Echo")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Echo")
		} else {
			return filepath.Join(home, ".echo")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
