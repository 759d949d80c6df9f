package common

import "fmt"

// ConfigErrType enumerates the ways a graph description can be unfit for a
// wave.
type ConfigErrType uint32

const (
	// EmptyGraph means the description contains no node at all.
	EmptyGraph ConfigErrType = iota
	// NoInitiator means no node has the initiator role.
	NoInitiator
	// MultipleInitiators means more than one node has the initiator role.
	MultipleInitiators
	// UnknownRole means a role string is neither initiator nor participant.
	UnknownRole
	// UnknownNeighbor means a neighbor list references a node that does not
	// exist.
	UnknownNeighbor
	// SelfLink means a node lists itself as a neighbor.
	SelfLink
	// DuplicateNeighbor means a node lists the same neighbor twice.
	DuplicateNeighbor
	// AsymmetricLink means A lists B but B does not list A.
	AsymmetricLink
	// Disconnected means a node cannot be reached from the initiator.
	Disconnected
)

var configErrMessages = map[ConfigErrType]string{
	EmptyGraph:         "Empty Graph",
	NoInitiator:        "No Initiator",
	MultipleInitiators: "Multiple Initiators",
	UnknownRole:        "Unknown Role",
	UnknownNeighbor:    "Unknown Neighbor",
	SelfLink:           "Self Link",
	DuplicateNeighbor:  "Duplicate Neighbor",
	AsymmetricLink:     "Asymmetric Link",
	Disconnected:       "Disconnected",
}

// String returns the human readable name of the error type.
func (t ConfigErrType) String() string {
	if m, ok := configErrMessages[t]; ok {
		return m
	}
	return "Unknown"
}

// ConfigErr is returned when a topology is rejected before the wave starts.
type ConfigErr struct {
	node    string
	errType ConfigErrType
	detail  string
}

// NewConfigErr creates a ConfigErr about a given node. detail may be empty.
func NewConfigErr(node string, errType ConfigErrType, detail string) ConfigErr {
	return ConfigErr{
		node:    node,
		errType: errType,
		detail:  detail,
	}
}

// Node returns the node the error refers to, if any.
func (e ConfigErr) Node() string {
	return e.node
}

// Error implements the error interface.
func (e ConfigErr) Error() string {
	m := fmt.Sprintf("graph, %s, %s", e.node, e.errType)
	if e.detail != "" {
		m += ": " + e.detail
	}
	return m
}

// IsConfig checks that an error is a ConfigErr of the given type.
func IsConfig(err error, t ConfigErrType) bool {
	configErr, ok := err.(ConfigErr)
	return ok && configErr.errType == t
}
