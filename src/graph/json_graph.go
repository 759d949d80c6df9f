package graph

import (
	"io/ioutil"
	"path/filepath"
	"sync"

	"github.com/mosaicnetworks/echo/src/common"
)

// DefaultGraphFile is the name of the graph description in the data
// directory.
const DefaultGraphFile = "graph.json"

// JSONGraph is used to load and persist a graph description on disk in the
// form of a JSON file. This allows human operators to edit the file.
type JSONGraph struct {
	l    sync.Mutex
	path string
}

// NewJSONGraph creates a new JSONGraph for the file name in directory base. An
// absolute name is used as is.
func NewJSONGraph(base string, name string) *JSONGraph {
	if name == "" {
		name = DefaultGraphFile
	}

	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(base, name)
	}

	return &JSONGraph{
		path: path,
	}
}

// Path returns the full path of the underlying file.
func (j *JSONGraph) Path() string {
	return j.path
}

// Topology parses the underlying JSON file and returns the corresponding,
// validated Topology.
func (j *JSONGraph) Topology() (*Topology, error) {
	j.l.Lock()
	defer j.l.Unlock()

	// Read the file
	buf, err := ioutil.ReadFile(j.path)
	if err != nil {
		return nil, err
	}

	// Check for no nodes
	if len(buf) == 0 {
		return nil, common.NewConfigErr("", common.EmptyGraph, j.path)
	}

	// Decode the description
	var desc Description
	if err := desc.Unmarshal(buf); err != nil {
		return nil, err
	}

	return desc.Topology()
}

// Write persists a Topology to the JSON file.
func (j *JSONGraph) Write(t *Topology) error {
	j.l.Lock()
	defer j.l.Unlock()

	buf, err := t.Description().Marshal()
	if err != nil {
		return err
	}

	// Write out as JSON
	return ioutil.WriteFile(j.path, buf, 0644)
}
