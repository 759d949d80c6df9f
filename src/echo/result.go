package echo

import (
	"fmt"
	"sort"

	"github.com/mosaicnetworks/echo/src/graph"
)

// Result summarises a run.
type Result struct {
	Initiator graph.NodeID
	Seed      int64
	Steps     int
	Scheduled int
	Delivered int
	Pending   int

	// Parents maps every reached participant to its parent in the spanning
	// tree.
	Parents map[graph.NodeID]graph.NodeID

	// States maps every node to its final state.
	States map[graph.NodeID]string
}

// Children returns the children of a node in the spanning tree, sorted.
func (r *Result) Children(id graph.NodeID) []graph.NodeID {
	children := []graph.NodeID{}
	for child, parent := range r.Parents {
		if parent == id {
			children = append(children, child)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
	return children
}

// Depth returns the distance from a node to the initiator along parent
// pointers.
func (r *Result) Depth(id graph.NodeID) (int, error) {
	depth := 0
	for id != r.Initiator {
		parent, ok := r.Parents[id]
		if !ok {
			return 0, fmt.Errorf("%s has no parent", id)
		}
		id = parent
		depth++
		if depth > len(r.Parents) {
			return 0, fmt.Errorf("parent pointers of %s form a cycle", id)
		}
	}
	return depth, nil
}

// ValidateTree checks that the parent pointers form a spanning tree of t
// rooted at the initiator, using only links of t.
func (r *Result) ValidateTree(t *graph.Topology) error {
	if _, ok := r.Parents[r.Initiator]; ok {
		return fmt.Errorf("initiator %s has a parent", r.Initiator)
	}

	for _, id := range t.IDs() {
		if id == r.Initiator {
			continue
		}
		parent, ok := r.Parents[id]
		if !ok {
			return fmt.Errorf("%s has no parent", id)
		}
		if !t.HasLink(id, parent) {
			return fmt.Errorf("%s has parent %s but they are not neighbors", id, parent)
		}
		if _, err := r.Depth(id); err != nil {
			return err
		}
	}

	return nil
}
