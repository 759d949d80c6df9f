package common

import (
	"fmt"
	"sort"
	"strings"
)

// ProtocolErrType enumerates the protocol violations a role can detect.
type ProtocolErrType uint32

const (
	// UnknownSender means a message came from a node that is not a neighbor.
	UnknownSender ProtocolErrType = iota
	// UnexpectedEcho means an ECHO arrived where the protocol forbids one.
	UnexpectedEcho
	// UnexpectedAck means an ACK arrived where the protocol forbids one.
	UnexpectedAck
	// DuplicateReply means a neighbor replied twice over the same link.
	DuplicateReply
	// NotStarted means the initiator received a message before Start.
	NotStarted
	// AlreadyStarted means Start was called twice.
	AlreadyStarted
	// UnknownNode means a message was addressed to or from a node the
	// scheduler does not know.
	UnknownNode
)

var protocolErrMessages = map[ProtocolErrType]string{
	UnknownSender:  "Unknown Sender",
	UnexpectedEcho: "Unexpected Echo",
	UnexpectedAck:  "Unexpected Ack",
	DuplicateReply: "Duplicate Reply",
	NotStarted:     "Not Started",
	AlreadyStarted: "Already Started",
	UnknownNode:    "Unknown Node",
}

// String returns the human readable name of the error type.
func (t ProtocolErrType) String() string {
	if m, ok := protocolErrMessages[t]; ok {
		return m
	}
	return "Unknown"
}

// ProtocolErr signals a logic defect in a role or in the scheduler. It is never
// recoverable.
type ProtocolErr struct {
	node    string
	errType ProtocolErrType
	sender  string
}

// NewProtocolErr creates a ProtocolErr raised by node upon a message from
// sender.
func NewProtocolErr(node string, errType ProtocolErrType, sender string) ProtocolErr {
	return ProtocolErr{
		node:    node,
		errType: errType,
		sender:  sender,
	}
}

// Error implements the error interface.
func (e ProtocolErr) Error() string {
	return fmt.Sprintf("protocol violation at %s, from %s, %s", e.node, e.sender, e.errType)
}

// IsProtocol checks that an error is a ProtocolErr of the given type.
func IsProtocol(err error, t ProtocolErrType) bool {
	protocolErr, ok := err.(ProtocolErr)
	return ok && protocolErr.errType == t
}

// DeadlockErr is returned when no message is pending but some nodes have not
// terminated.
type DeadlockErr struct {
	Steps        int
	Unterminated []string
}

// NewDeadlockErr creates a DeadlockErr. The node list is sorted.
func NewDeadlockErr(steps int, unterminated []string) DeadlockErr {
	nodes := append([]string(nil), unterminated...)
	sort.Strings(nodes)
	return DeadlockErr{
		Steps:        steps,
		Unterminated: nodes,
	}
}

// Error implements the error interface.
func (e DeadlockErr) Error() string {
	return fmt.Sprintf("deadlock after %d steps, unterminated: %s",
		e.Steps, strings.Join(e.Unterminated, ","))
}

// IsDeadlock checks that an error is a DeadlockErr.
func IsDeadlock(err error) bool {
	_, ok := err.(DeadlockErr)
	return ok
}
