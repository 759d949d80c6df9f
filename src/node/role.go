package node

import (
	"github.com/mosaicnetworks/echo/src/common"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/net"
	"github.com/mosaicnetworks/echo/src/node/state"
	"github.com/mosaicnetworks/echo/src/trace"
	"github.com/sirupsen/logrus"
)

// Outbox accepts the messages a role sends. net.Scheduler implements it.
type Outbox interface {
	Schedule(net.Message) error
}

// Role is the contract shared by Initiator and Participant.
type Role interface {
	net.Receiver

	// ID returns the node this role runs on.
	ID() graph.NodeID

	// Send schedules one message of the given kind to every addressee.
	Send(kind net.Kind, addressees []graph.NodeID) error

	// IsTerminated reports whether the node has finished. Once true, it stays
	// true.
	IsTerminated() bool

	// State returns the current state of the node.
	State() state.State

	// Parent returns the parent of the node in the spanning tree. The
	// initiator, and a participant that has not been reached, have none.
	Parent() (graph.NodeID, bool)
}

// Options carries the collaborators shared by every role of a simulation.
type Options struct {
	Outbox   Outbox
	Recorder trace.Recorder
	LateEcho LateEcho
	Logger   *logrus.Entry
}

// base holds what both roles have in common.
type base struct {
	id        graph.NodeID
	neighbors []graph.NodeID
	outbox    Outbox
	recorder  trace.Recorder
	lateEcho  LateEcho

	// heard records the neighbors that have replied over their link. Each
	// neighbor sends exactly one message per link.
	heard        map[graph.NodeID]bool
	acksReceived int

	state  state.Manager
	logger *logrus.Entry
}

func newBase(id graph.NodeID, neighbors []graph.NodeID, opts Options) base {
	recorder := opts.Recorder
	if recorder == nil {
		recorder = trace.Nop
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return base{
		id:        id,
		neighbors: append([]graph.NodeID(nil), neighbors...),
		outbox:    opts.Outbox,
		recorder:  recorder,
		lateEcho:  opts.LateEcho,
		heard:     make(map[graph.NodeID]bool, len(neighbors)),
		logger:    logger.WithField("node", id),
	}
}

// ID implements Role.
func (b *base) ID() graph.NodeID {
	return b.id
}

// State implements Role.
func (b *base) State() state.State {
	return b.state.GetState()
}

// Neighbors returns a copy of the neighbor list.
func (b *base) Neighbors() []graph.NodeID {
	return append([]graph.NodeID(nil), b.neighbors...)
}

// AcksReceived returns the number of replies received so far.
func (b *base) AcksReceived() int {
	return b.acksReceived
}

// Send implements Role.
func (b *base) Send(kind net.Kind, addressees []graph.NodeID) error {
	for _, a := range addressees {
		if err := b.outbox.Schedule(net.NewMessage(kind, b.id, a)); err != nil {
			return err
		}
	}
	return nil
}

func (b *base) isNeighbor(id graph.NodeID) bool {
	for _, n := range b.neighbors {
		if n == id {
			return true
		}
	}
	return false
}

// hear accounts for one reply from sender.
func (b *base) hear(sender graph.NodeID) error {
	if b.heard[sender] {
		return b.violation(common.DuplicateReply, sender)
	}
	b.heard[sender] = true
	b.acksReceived++
	return nil
}

func (b *base) violation(t common.ProtocolErrType, sender graph.NodeID) error {
	err := common.NewProtocolErr(string(b.id), t, string(sender))
	b.logger.WithError(err).Error("Protocol violation")
	return err
}

func (b *base) record(t trace.EventType) error {
	return b.recorder.Record(trace.NewNodeEvent(t, b.id))
}
