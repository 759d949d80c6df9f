package net

import (
	"fmt"

	"github.com/mosaicnetworks/echo/src/graph"
)

// Kind is the type of a protocol message.
type Kind uint32

const (
	// Echo explores the graph away from the initiator.
	Echo Kind = iota
	// Ack travels back towards the initiator along the spanning tree.
	Ack
)

// String ...
func (k Kind) String() string {
	switch k {
	case Echo:
		return "ECHO"
	case Ack:
		return "ACK"
	default:
		return "UNKNOWN"
	}
}

// Message is an immutable protocol message.
type Message struct {
	Kind     Kind
	Sender   graph.NodeID
	Receiver graph.NodeID
}

// NewMessage ...
func NewMessage(kind Kind, sender, receiver graph.NodeID) Message {
	return Message{
		Kind:     kind,
		Sender:   sender,
		Receiver: receiver,
	}
}

// String ...
func (m Message) String() string {
	return fmt.Sprintf("%s %s->%s", m.Kind, m.Sender, m.Receiver)
}
