package state

import (
	"sync/atomic"
)

// State captures the progress of a node through the wave: Unreached, Active,
// Waiting, or Terminated.
type State uint32

const (
	// Unreached is the initial state of every node. A participant stays
	// Unreached until its first ECHO; the initiator until Start.
	Unreached State = iota

	// Active is the state of the initiator between Start and its last reply.
	Active

	// Waiting is the state of a participant that has a parent and is waiting
	// for its other neighbors to reply.
	Waiting

	// Terminated is the state of a node that has heard from every neighbor and,
	// for a participant, acknowledged its parent. It is final.
	Terminated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Unreached:
		return "Unreached"
	case Active:
		return "Active"
	case Waiting:
		return "Waiting"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Manager wraps a State with get and set methods. Reads are atomic so that the
// state of a node may be observed from another goroutine while the simulation
// runs.
type Manager struct {
	state State
}

// GetState returns the current state.
func (b *Manager) GetState() State {
	stateAddr := (*uint32)(&b.state)
	return State(atomic.LoadUint32(stateAddr))
}

// SetState sets the state.
func (b *Manager) SetState(s State) {
	stateAddr := (*uint32)(&b.state)
	atomic.StoreUint32(stateAddr, uint32(s))
}
