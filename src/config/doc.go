// Package config defines the configuration of an Echo simulation.
//
// Regardless of how a simulation is started, directly from Go code or from the
// command line, it uses the Config object defined in this package. On top of
// these options, the simulation relies on a data directory, defined by
// Config.DataDir, where it expects or creates a few files:
//
//  graph.json // the graph description (cf. graph package).
//  execution_log.txt // one line per scheduled or delivered message and per node completion.
//  badger_db/ // (optional, with --store) the persisted execution trace.
//  echo.toml // (optional) configuration file read by the CLI.
package config
