package dctopo

// file desc-topo.go holds a pointer-free, serializable description of a
// generated topology, and functions for writing and reading it, so that
// external renderers, layout engines, and simulation front ends can consume
// a synthesized network without linking against the generators.

import (
	"encoding/json"
	"os"
	"path"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// An EdgeDesc describes one directed edge of a generated graph.  Capacity is
// present on every edge when the producing topology carried a capacity rule,
// and on none otherwise.
type EdgeDesc struct {
	From     int      `json:"from" yaml:"from"`
	To       int      `json:"to" yaml:"to"`
	Capacity *float64 `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// A TopoDesc is a completely flattened description of a generated topology.
// Name is the descriptor of the topology that produced it, Nodes the total
// switch count (ids are 1..Nodes), Layers the per-layer identifier ranges in
// leaf-to-core order, and Edges every directed edge in canonical order.
type TopoDesc struct {
	Name   string       `json:"name" yaml:"name"`
	Nodes  int          `json:"nodes" yaml:"nodes"`
	Layers []LayerRange `json:"layers" yaml:"layers"`
	Edges  []EdgeDesc   `json:"edges" yaml:"edges"`
}

// BuildTopoDesc generates the topology's graph and transforms it into a
// TopoDesc.  Edges appear sorted by source id, then destination id.
func BuildTopoDesc(topo Topology) *TopoDesc {
	tg := topo.GenGraph()

	td := new(TopoDesc)
	td.Name = topo.Descriptor()
	td.Nodes = tg.NodeCount()
	td.Layers = topo.LayerRanges()
	td.Edges = make([]EdgeDesc, 0, len(tg.links))

	for _, lnk := range tg.Links() {
		ed := EdgeDesc{From: lnk.From, To: lnk.To}
		capacity, present := tg.Capacity(lnk.From, lnk.To)
		if present {
			ed.Capacity = &capacity
		}
		td.Edges = append(td.Edges, ed)
	}

	slices.SortFunc(td.Edges, func(a, b EdgeDesc) int {
		if a.From != b.From {
			return a.From - b.From
		}
		return a.To - b.To
	})

	return td
}

// WriteToFile stores the TopoDesc struct to the file whose name is given.
// Serialization to json or to yaml is selected based on the extension of this name.
func (td *TopoDesc) WriteToFile(filename string) error {
	pathExt := path.Ext(filename)
	var bytes []byte
	var merr error = nil

	if pathExt == ".yaml" || pathExt == ".YAML" || pathExt == ".yml" {
		bytes, merr = yaml.Marshal(*td)
	} else if pathExt == ".json" || pathExt == ".JSON" {
		bytes, merr = json.MarshalIndent(*td, "", "\t")
	}

	if merr != nil {
		panic(merr)
	}

	f, cerr := os.Create(filename)
	if cerr != nil {
		panic(cerr)
	}
	_, werr := f.WriteString(string(bytes[:]))
	if werr != nil {
		panic(werr)
	}
	err := f.Close()
	if err != nil {
		panic(err)
	}

	return werr
}

// ReadTopoDesc deserializes a byte slice holding a representation of a
// TopoDesc struct.  If the input argument of dict (those bytes) is empty,
// the file whose name is given is read to acquire them.  A deserialized
// representation is returned, or an error if one is generated from a file
// read or the deserialization.
func ReadTopoDesc(filename string, useYAML bool, dict []byte) (*TopoDesc, error) {
	var err error

	// if the dict slice of bytes is empty we get them from the file whose name is an argument
	if len(dict) == 0 {
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	example := TopoDesc{}

	if useYAML {
		err = yaml.Unmarshal(dict, &example)
	} else {
		err = json.Unmarshal(dict, &example)
	}

	if err != nil {
		return nil, err
	}

	return &example, nil
}
