// Package echo wires a topology, a scheduler and the node roles into a
// runnable Echo wave.
//
// Usage:
//
//  conf := config.NewDefaultConfig()
//  conf.SetDataDir("/path/to/datadir")
//
//  engine := echo.NewEcho(conf)
//  if err := engine.Init(); err != nil {
//      // invalid graph or configuration; the wave never starts
//  }
//  defer engine.Close()
//
//  result, err := engine.Run()
//  if common.IsDeadlock(err) {
//      // pending messages ran out before every node terminated
//  }
//
// Run starts the initiator and then delivers one pending message at a time
// until every node has terminated. It never retries: a protocol violation or a
// deadlock is returned to the caller.
package echo
