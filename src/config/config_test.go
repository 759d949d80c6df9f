package config

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetDataDir(t *testing.T) {
	config := NewDefaultConfig()
	config.SetDataDir("/tmp/echo")

	expected := filepath.Join("/tmp/echo", DefaultBadgerFile)
	if config.DatabaseDir != expected {
		t.Fatalf("DatabaseDir should follow DataDir: %s, not %s", expected, config.DatabaseDir)
	}

	config.DatabaseDir = "/var/db"
	config.SetDataDir("/tmp/other")
	if config.DatabaseDir != "/var/db" {
		t.Fatalf("an explicit DatabaseDir should not be overridden, got %s", config.DatabaseDir)
	}
}

func TestExecLogPath(t *testing.T) {
	config := NewDefaultConfig()
	config.SetDataDir("/tmp/echo")

	if p := config.ExecLogPath(); p != filepath.Join("/tmp/echo", DefaultExecLogFile) {
		t.Fatalf("relative exec logs live in the datadir, got %s", p)
	}

	config.ExecLog = "/var/log/echo.txt"
	if p := config.ExecLogPath(); p != "/var/log/echo.txt" {
		t.Fatalf("absolute exec logs are used as is, got %s", p)
	}

	config.ExecLog = ""
	if p := config.ExecLogPath(); p != "" {
		t.Fatalf("an empty exec log stays disabled, got %s", p)
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"bananas": logrus.DebugLevel,
	}
	for s, l := range cases {
		if LogLevel(s) != l {
			t.Fatalf("LogLevel(%s) should be %s, not %s", s, l, LogLevel(s))
		}
	}
}

func TestTestConfig(t *testing.T) {
	config := NewTestConfig(t, logrus.InfoLevel)
	if config.ExecLog != "" {
		t.Fatalf("test configs should not write an execution log")
	}
	if config.Logger().Logger.Level != logrus.InfoLevel {
		t.Fatalf("test logger should use the requested level")
	}
}
