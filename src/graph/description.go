package graph

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// NodeDescription is one entry of a graph description file.
type NodeDescription struct {
	Role      string   `json:"role,omitempty"`
	Neighbors []string `json:"neighbors"`
}

// Description is the on-disk form of a topology, keyed by node name.
type Description map[string]NodeDescription

// Topology parses roles and validates the description.
func (d Description) Topology() (*Topology, error) {
	nodes := make(map[NodeID]NodeInfo, len(d))
	for name, desc := range d {
		role, err := ParseRole(name, desc.Role)
		if err != nil {
			return nil, err
		}
		neighbors := make([]NodeID, 0, len(desc.Neighbors))
		for _, n := range desc.Neighbors {
			neighbors = append(neighbors, NodeID(n))
		}
		nodes[NodeID(name)] = NodeInfo{
			Role:      role,
			Neighbors: neighbors,
		}
	}
	return NewTopology(nodes)
}

// Description converts a topology back to its on-disk form. Participants are
// written without a role field.
func (t *Topology) Description() Description {
	d := make(Description, len(t.ids))
	for _, id := range t.ids {
		info := t.nodes[id]
		desc := NodeDescription{
			Neighbors: make([]string, 0, len(info.Neighbors)),
		}
		if info.Role == Initiator {
			desc.Role = Initiator.String()
		}
		for _, n := range info.Neighbors {
			desc.Neighbors = append(desc.Neighbors, string(n))
		}
		d[string(id)] = desc
	}
	return d
}

//Marshal - json encoding of Description, with sorted keys
func (d Description) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	jh.Indent = 2
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(d); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (d *Description) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(d)
}
