package graph

import (
	"fmt"
	"math/rand"
)

// Shapes accepted by Generate.
const (
	ShapeStar     = "star"
	ShapePath     = "path"
	ShapeRing     = "ring"
	ShapeComplete = "complete"
	ShapeGrid     = "grid"
	ShapeRandom   = "random"
)

// Shapes lists the names accepted by Generate.
var Shapes = []string{ShapeStar, ShapePath, ShapeRing, ShapeComplete, ShapeGrid, ShapeRandom}

// GeneratorOptions parameterise Generate. Size is the number of nodes, except
// for grids where it is the side length. Extra is the number of links added to
// a random spanning tree.
type GeneratorOptions struct {
	Size  int
	Extra int
	Seed  int64
}

// Generate builds a topology of the given shape. Node 0 is the initiator.
func Generate(shape string, opts GeneratorOptions) (*Topology, error) {
	if opts.Size < 1 {
		return nil, fmt.Errorf("size must be at least 1, got %d", opts.Size)
	}

	switch shape {
	case ShapeStar:
		return Star(opts.Size)
	case ShapePath:
		return Path(opts.Size)
	case ShapeRing:
		return Ring(opts.Size)
	case ShapeComplete:
		return Complete(opts.Size)
	case ShapeGrid:
		return Grid(opts.Size, opts.Size)
	case ShapeRandom:
		return Random(opts.Size, opts.Extra, opts.Seed)
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}

// NodeName returns the id Generate gives to node i.
func NodeName(i int) NodeID {
	if i == 0 {
		return "I"
	}
	return NodeID(fmt.Sprintf("P%d", i))
}

type builder struct {
	nodes map[NodeID]NodeInfo
}

func newBuilder(n int) *builder {
	b := &builder{nodes: make(map[NodeID]NodeInfo, n)}
	for i := 0; i < n; i++ {
		role := Participant
		if i == 0 {
			role = Initiator
		}
		b.nodes[NodeName(i)] = NodeInfo{Role: role}
	}
	return b
}

func (b *builder) link(i, j int) {
	a, c := NodeName(i), NodeName(j)
	ia, ic := b.nodes[a], b.nodes[c]
	ia.Neighbors = append(ia.Neighbors, c)
	ic.Neighbors = append(ic.Neighbors, a)
	b.nodes[a], b.nodes[c] = ia, ic
}

func (b *builder) linked(i, j int) bool {
	c := NodeName(j)
	for _, n := range b.nodes[NodeName(i)].Neighbors {
		if n == c {
			return true
		}
	}
	return false
}

// Star links the initiator to n-1 leaves.
func Star(n int) (*Topology, error) {
	b := newBuilder(n)
	for i := 1; i < n; i++ {
		b.link(0, i)
	}
	return NewTopology(b.nodes)
}

// Path links n nodes in a line starting at the initiator.
func Path(n int) (*Topology, error) {
	b := newBuilder(n)
	for i := 1; i < n; i++ {
		b.link(i-1, i)
	}
	return NewTopology(b.nodes)
}

// Ring is a Path whose ends are joined. Below three nodes it is a Path.
func Ring(n int) (*Topology, error) {
	b := newBuilder(n)
	for i := 1; i < n; i++ {
		b.link(i-1, i)
	}
	if n > 2 {
		b.link(n-1, 0)
	}
	return NewTopology(b.nodes)
}

// Complete links every pair of nodes.
func Complete(n int) (*Topology, error) {
	b := newBuilder(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			b.link(i, j)
		}
	}
	return NewTopology(b.nodes)
}

// Grid is a rows x cols lattice with the initiator in a corner.
func Grid(rows, cols int) (*Topology, error) {
	b := newBuilder(rows * cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if c+1 < cols {
				b.link(i, i+1)
			}
			if r+1 < rows {
				b.link(i, i+cols)
			}
		}
	}
	return NewTopology(b.nodes)
}

// Random builds a random spanning tree over n nodes and adds up to extra
// distinct links on top of it. The same seed gives the same topology.
func Random(n int, extra int, seed int64) (*Topology, error) {
	rnd := rand.New(rand.NewSource(seed))
	b := newBuilder(n)

	for i := 1; i < n; i++ {
		b.link(rnd.Intn(i), i)
	}

	max := n*(n-1)/2 - (n - 1)
	if extra > max {
		extra = max
	}
	for added := 0; added < extra; {
		i, j := rnd.Intn(n), rnd.Intn(n)
		if i == j || b.linked(i, j) {
			continue
		}
		b.link(i, j)
		added++
	}

	return NewTopology(b.nodes)
}
