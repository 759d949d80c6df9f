// Package trace records what happens during a wave.
//
// The scheduler and the roles report four kinds of Event to a Recorder:
// a message was scheduled, a message was delivered, a node completed its local
// echo, and a node finished the algorithm. A Journal numbers events and fans
// them out to any number of recorders: the LogRecorder that renders the
// human-readable execution log, an InmemStore or BadgerStore that keeps the
// events for later inspection, and the telemetry counters.
package trace
