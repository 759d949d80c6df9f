package node

import (
	"github.com/mosaicnetworks/echo/src/common"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/net"
	"github.com/mosaicnetworks/echo/src/node/state"
	"github.com/mosaicnetworks/echo/src/trace"
	"github.com/sirupsen/logrus"
)

// Initiator starts the wave and detects its termination.
type Initiator struct {
	base
	started bool
}

// NewInitiator ...
func NewInitiator(id graph.NodeID, neighbors []graph.NodeID, opts Options) *Initiator {
	return &Initiator{
		base: newBase(id, neighbors, opts),
	}
}

// Start sends ECHO to every neighbor. It must be called exactly once, before
// any delivery. An initiator without neighbors terminates immediately.
func (i *Initiator) Start() error {
	if i.started {
		return i.violation(common.AlreadyStarted, i.id)
	}
	i.started = true
	i.state.SetState(state.Active)

	i.logger.WithField("neighbors", len(i.neighbors)).Debug("Start")

	if len(i.neighbors) == 0 {
		return i.finish()
	}

	return i.Send(net.Echo, i.neighbors)
}

// Receive implements net.Receiver. Every neighbor replies exactly once, with
// an ACK if the initiator is its parent, with an ECHO otherwise.
func (i *Initiator) Receive(kind net.Kind, sender graph.NodeID) error {
	i.logger.WithFields(logrus.Fields{
		"kind":   kind,
		"sender": sender,
	}).Debug("Receive")

	if !i.isNeighbor(sender) {
		return i.violation(common.UnknownSender, sender)
	}
	if !i.started {
		return i.violation(common.NotStarted, sender)
	}
	if kind == net.Echo && i.lateEcho == Ignore {
		return i.violation(common.UnexpectedEcho, sender)
	}

	if err := i.hear(sender); err != nil {
		return err
	}

	if i.acksReceived == len(i.neighbors) {
		return i.finish()
	}

	return nil
}

func (i *Initiator) finish() error {
	i.state.SetState(state.Terminated)

	i.logger.WithField("acks", i.acksReceived).Info("Wave complete")

	if err := i.record(trace.EchoComplete); err != nil {
		return err
	}
	return i.record(trace.Finished)
}

// IsTerminated implements Role.
func (i *Initiator) IsTerminated() bool {
	return i.started && i.acksReceived == len(i.neighbors)
}

// Parent implements Role. The initiator is the root.
func (i *Initiator) Parent() (graph.NodeID, bool) {
	return "", false
}
