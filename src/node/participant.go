package node

import (
	"github.com/mosaicnetworks/echo/src/common"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/net"
	"github.com/mosaicnetworks/echo/src/node/state"
	"github.com/mosaicnetworks/echo/src/trace"
	"github.com/sirupsen/logrus"
)

// Participant is any node other than the initiator.
type Participant struct {
	base

	parent       graph.NodeID
	echoReceived bool
	acksSent     int
}

// NewParticipant ...
func NewParticipant(id graph.NodeID, neighbors []graph.NodeID, opts Options) *Participant {
	return &Participant{
		base: newBase(id, neighbors, opts),
	}
}

// Receive implements net.Receiver.
func (p *Participant) Receive(kind net.Kind, sender graph.NodeID) error {
	p.logger.WithFields(logrus.Fields{
		"kind":   kind,
		"sender": sender,
	}).Debug("Receive")

	if !p.isNeighbor(sender) {
		return p.violation(common.UnknownSender, sender)
	}

	switch kind {
	case net.Echo:
		return p.handleEcho(sender)
	case net.Ack:
		return p.handleAck(sender)
	default:
		return p.violation(common.UnexpectedAck, sender)
	}
}

func (p *Participant) handleEcho(sender graph.NodeID) error {
	if !p.echoReceived {
		p.echoReceived = true
		p.parent = sender
		p.heard[sender] = true
		p.state.SetState(state.Waiting)

		children := graph.ExcludeNode(p.neighbors, p.parent)

		p.logger.WithFields(logrus.Fields{
			"parent":   p.parent,
			"children": len(children),
		}).Debug("Joined wave")

		if len(children) == 0 {
			return p.finish()
		}
		return p.Send(net.Echo, children)
	}

	if p.heard[sender] {
		return p.violation(common.DuplicateReply, sender)
	}

	if p.lateEcho == Ignore {
		p.logger.WithField("sender", sender).Debug("Ignoring late ECHO")
		return nil
	}

	return p.reply(sender)
}

func (p *Participant) handleAck(sender graph.NodeID) error {
	if !p.echoReceived || sender == p.parent {
		return p.violation(common.UnexpectedAck, sender)
	}
	return p.reply(sender)
}

func (p *Participant) reply(sender graph.NodeID) error {
	if err := p.hear(sender); err != nil {
		return err
	}

	expected := p.ExpectedAcks()
	if p.acksReceived > expected {
		return p.violation(common.UnexpectedAck, sender)
	}
	if p.acksReceived == expected {
		return p.finish()
	}
	return nil
}

// finish acknowledges the parent, exactly once.
func (p *Participant) finish() error {
	if err := p.record(trace.EchoComplete); err != nil {
		return err
	}

	if err := p.Send(net.Ack, []graph.NodeID{p.parent}); err != nil {
		return err
	}
	p.acksSent++
	p.state.SetState(state.Terminated)

	p.logger.WithField("parent", p.parent).Debug("Terminated")

	return p.record(trace.Finished)
}

// ExpectedAcks is the number of replies the participant waits for: one per
// neighbor other than its parent.
func (p *Participant) ExpectedAcks() int {
	if p.echoReceived {
		return len(p.neighbors) - 1
	}
	return len(p.neighbors)
}

// AcksSent returns the number of ACKs sent to the parent.
func (p *Participant) AcksSent() int {
	return p.acksSent
}

// IsTerminated implements Role.
func (p *Participant) IsTerminated() bool {
	return p.echoReceived && p.acksReceived == p.ExpectedAcks()
}

// Parent implements Role.
func (p *Participant) Parent() (graph.NodeID, bool) {
	return p.parent, p.echoReceived
}
