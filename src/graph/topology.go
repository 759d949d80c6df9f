package graph

import (
	"fmt"
	"sort"

	"github.com/mosaicnetworks/echo/src/common"
)

// Topology is a validated, read-only graph with a single initiator.
type Topology struct {
	nodes     map[NodeID]NodeInfo
	ids       []NodeID
	initiator NodeID
}

// NewTopology validates nodes and returns the corresponding Topology. The map
// and its neighbor slices are copied.
func NewTopology(nodes map[NodeID]NodeInfo) (*Topology, error) {
	t := &Topology{
		nodes: make(map[NodeID]NodeInfo, len(nodes)),
		ids:   make([]NodeID, 0, len(nodes)),
	}

	for id, info := range nodes {
		t.nodes[id] = NodeInfo{
			Role:      info.Role,
			Neighbors: append([]NodeID(nil), info.Neighbors...),
		}
		t.ids = append(t.ids, id)
	}

	sort.Slice(t.ids, func(i, j int) bool { return t.ids[i] < t.ids[j] })

	if err := t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Topology) validate() error {
	if len(t.ids) == 0 {
		return common.NewConfigErr("", common.EmptyGraph, "")
	}

	initiators := []NodeID{}
	for _, id := range t.ids {
		if t.nodes[id].Role == Initiator {
			initiators = append(initiators, id)
		}
	}
	switch len(initiators) {
	case 0:
		return common.NewConfigErr("", common.NoInitiator, "")
	case 1:
		t.initiator = initiators[0]
	default:
		return common.NewConfigErr(string(initiators[1]), common.MultipleInitiators,
			fmt.Sprintf("%s is already the initiator", initiators[0]))
	}

	for _, id := range t.ids {
		seen := make(map[NodeID]bool)
		for _, n := range t.nodes[id].Neighbors {
			if n == id {
				return common.NewConfigErr(string(id), common.SelfLink, "")
			}
			if _, ok := t.nodes[n]; !ok {
				return common.NewConfigErr(string(id), common.UnknownNeighbor, string(n))
			}
			if seen[n] {
				return common.NewConfigErr(string(id), common.DuplicateNeighbor, string(n))
			}
			seen[n] = true
		}
	}

	for _, id := range t.ids {
		for _, n := range t.nodes[id].Neighbors {
			if !t.HasLink(n, id) {
				return common.NewConfigErr(string(id), common.AsymmetricLink,
					fmt.Sprintf("%s does not list %s", n, id))
			}
		}
	}

	reached := t.reachable(t.initiator)
	for _, id := range t.ids {
		if !reached[id] {
			return common.NewConfigErr(string(id), common.Disconnected,
				fmt.Sprintf("not reachable from %s", t.initiator))
		}
	}

	return nil
}

func (t *Topology) reachable(from NodeID) map[NodeID]bool {
	reached := map[NodeID]bool{from: true}
	queue := []NodeID{from}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, n := range t.nodes[id].Neighbors {
			if !reached[n] {
				reached[n] = true
				queue = append(queue, n)
			}
		}
	}
	return reached
}

// Len returns the number of nodes.
func (t *Topology) Len() int {
	return len(t.ids)
}

// IDs returns all node ids in sorted order.
func (t *Topology) IDs() []NodeID {
	return append([]NodeID(nil), t.ids...)
}

// Initiator returns the id of the initiator.
func (t *Topology) Initiator() NodeID {
	return t.initiator
}

// Role returns the role of a node.
func (t *Topology) Role(id NodeID) (Role, bool) {
	info, ok := t.nodes[id]
	return info.Role, ok
}

// Neighbors returns the neighbors of a node in description order.
func (t *Topology) Neighbors(id NodeID) []NodeID {
	return append([]NodeID(nil), t.nodes[id].Neighbors...)
}

// HasLink reports whether a lists b as a neighbor.
func (t *Topology) HasLink(a, b NodeID) bool {
	for _, n := range t.nodes[a].Neighbors {
		if n == b {
			return true
		}
	}
	return false
}

// Links returns the number of undirected links.
func (t *Topology) Links() int {
	degrees := 0
	for _, id := range t.ids {
		degrees += len(t.nodes[id].Neighbors)
	}
	return degrees / 2
}

// IsTree reports whether the topology has no cycle.
func (t *Topology) IsTree() bool {
	return t.Links() == t.Len()-1
}
