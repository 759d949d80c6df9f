package trace

import (
	"bytes"
	"fmt"

	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/ugorji/go/codec"
)

// EventType distinguishes the observable steps of a wave.
type EventType uint32

const (
	// Scheduled means a message entered the pending set.
	Scheduled EventType = iota
	// Delivered means a message left the pending set and reached its receiver.
	Delivered
	// EchoComplete means a node heard back from every neighbor it waits for.
	EchoComplete
	// Finished means a node terminated.
	Finished
)

// String ...
func (t EventType) String() string {
	switch t {
	case Scheduled:
		return "scheduled"
	case Delivered:
		return "delivered"
	case EchoComplete:
		return "echo-complete"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is one entry of the execution trace. Message events carry Kind, Sender
// and Receiver; node events carry Node.
type Event struct {
	Seq      int
	Type     EventType
	Kind     string       `json:",omitempty"`
	Sender   graph.NodeID `json:",omitempty"`
	Receiver graph.NodeID `json:",omitempty"`
	Node     graph.NodeID `json:",omitempty"`
}

// NewMessageEvent creates a Scheduled or Delivered event.
func NewMessageEvent(t EventType, kind string, sender, receiver graph.NodeID) Event {
	return Event{
		Type:     t,
		Kind:     kind,
		Sender:   sender,
		Receiver: receiver,
	}
}

// NewNodeEvent creates an EchoComplete or Finished event.
func NewNodeEvent(t EventType, node graph.NodeID) Event {
	return Event{
		Type: t,
		Node: node,
	}
}

// String renders the event as an execution log line.
func (e Event) String() string {
	switch e.Type {
	case Scheduled:
		return fmt.Sprintf("Enqueued message %s from %s to %s", e.Kind, e.Sender, e.Receiver)
	case Delivered:
		return fmt.Sprintf("Node %s received '%s' from %s", e.Receiver, e.Kind, e.Sender)
	case EchoComplete:
		return fmt.Sprintf("Node %s: Echo complete.", e.Node)
	case Finished:
		return fmt.Sprintf("Node %s: Algorithm finished.", e.Node)
	default:
		return fmt.Sprintf("Unknown event %d", e.Type)
	}
}

//Marshal - json encoding of Event
func (e *Event) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(e); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (e *Event) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(e)
}
