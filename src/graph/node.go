package graph

import (
	"strings"

	"github.com/mosaicnetworks/echo/src/common"
)

// NodeID identifies a node. It is unique within a topology.
type NodeID string

// String ...
func (id NodeID) String() string {
	return string(id)
}

// Role is the part a node plays in the wave.
type Role uint32

const (
	// Participant is the default role. A participant joins the wave when it
	// receives its first ECHO.
	Participant Role = iota
	// Initiator starts the wave. There is exactly one per topology.
	Initiator
)

// String returns the role as it appears in a graph description.
func (r Role) String() string {
	switch r {
	case Participant:
		return "participant"
	case Initiator:
		return "initiator"
	default:
		return "unknown"
	}
}

// ParseRole parses the role field of a graph description. An empty string is a
// participant.
func ParseRole(node string, s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "participant":
		return Participant, nil
	case "initiator":
		return Initiator, nil
	default:
		return Participant, common.NewConfigErr(node, common.UnknownRole, s)
	}
}

// NodeInfo is the static description of one node.
type NodeInfo struct {
	Role      Role
	Neighbors []NodeID
}

// ExcludeNode returns ids without the given node, preserving order.
func ExcludeNode(ids []NodeID, node NodeID) []NodeID {
	others := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if id != node {
			others = append(others, id)
		}
	}
	return others
}
