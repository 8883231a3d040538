package assets

import (
	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/wiring"
)

// Builtin builds the templates in code.
var Builtin Source = builtin{}

type builtin struct{}

func (builtin) Load(name string) (*shadergraph.Tree, error) {
	switch name {
	case MappingGroup:
		return mappingTemplate(), nil
	case MapsLoaderGroup:
		return loaderTemplate(), nil
	case BSDFGroup:
		return bsdfTemplate(), nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "node group %q not found in bundled assets", name)
}

func mappingTemplate() *shadergraph.Tree {
	t := shadergraph.NewTree(MappingGroup)
	var outs []string
	for _, r := range wiring.MappingRules {
		outs = append(outs, r.Output)
	}
	mustAdd(t, shadergraph.Node{Name: "Group Input", Type: shadergraph.TypeGroupInput})
	mustAdd(t, shadergraph.Node{Name: "Mapping", Type: shadergraph.TypeOther,
		Inputs: shadergraph.Sockets("Vector"), Outputs: shadergraph.Sockets("Vector")})
	mustAdd(t, shadergraph.Node{Name: "Group Output", Type: shadergraph.TypeGroupOutput,
		Inputs: shadergraph.Sockets(outs...)})
	return t
}

func loaderTemplate() *shadergraph.Tree {
	t := shadergraph.NewTree(MapsLoaderGroup)
	var ins, outs []string
	for _, r := range wiring.MappingRules {
		ins = append(ins, r.Input)
	}
	for _, r := range wiring.BSDFRules {
		outs = append(outs, r.Output)
	}
	mustAdd(t, shadergraph.Node{Name: "Group Input", Type: shadergraph.TypeGroupInput,
		Outputs: shadergraph.Sockets(ins...)})
	seen := make(map[string]bool)
	for _, r := range wiring.BSDFRules {
		if seen[r.ImageNode] {
			continue
		}
		seen[r.ImageNode] = true
		n := mustAdd(t, shadergraph.Node{
			Name:    r.ImageNode,
			Label:   r.ImageNode,
			Type:    shadergraph.TypeImage,
			Inputs:  shadergraph.Sockets("Vector"),
			Outputs: shadergraph.Sockets("Color", "Alpha"),
		})
		// Image nodes sample the shared mapping vector.
		link(t, "Group Input", "Vector", n.Name, "Vector")
	}
	mustAdd(t, shadergraph.Node{Name: "Group Output", Type: shadergraph.TypeGroupOutput,
		Inputs: shadergraph.Sockets(outs...)})
	for _, r := range wiring.BSDFRules {
		link(t, r.ImageNode, "Color", "Group Output", r.Output)
	}
	return t
}

func bsdfTemplate() *shadergraph.Tree {
	t := shadergraph.NewTree(BSDFGroup)
	var ins []string
	for _, r := range wiring.BSDFRules {
		ins = append(ins, r.Input)
	}
	mustAdd(t, shadergraph.Node{Name: "Group Input", Type: shadergraph.TypeGroupInput,
		Outputs: shadergraph.Sockets(ins...)})
	mustAdd(t, shadergraph.Node{Name: "Principled BSDF", Type: shadergraph.TypeBSDF,
		Inputs: shadergraph.Sockets(ins...), Outputs: shadergraph.Sockets("BSDF")})
	mustAdd(t, shadergraph.Node{Name: "Group Output", Type: shadergraph.TypeGroupOutput,
		Inputs: shadergraph.Sockets("BSDF")})
	for _, s := range ins {
		link(t, "Group Input", s, "Principled BSDF", s)
	}
	link(t, "Principled BSDF", "BSDF", "Group Output", "BSDF")
	return t
}

// The templates are static; a failure here is a programming error.
func mustAdd(t *shadergraph.Tree, n shadergraph.Node) *shadergraph.Node {
	node, err := t.AddNode(n)
	if err != nil {
		panic(err)
	}
	return node
}

func link(t *shadergraph.Tree, from, fromSocket, to, toSocket string) {
	if err := t.Link(from, fromSocket, to, toSocket); err != nil {
		panic(err)
	}
}

// LibrarySource loads templates by copying them out of another library,
// such as the groups section of a scene file.
type LibrarySource struct {
	Lib *shadergraph.Library
}

// Load returns a deep copy of the named group.
func (s LibrarySource) Load(name string) (*shadergraph.Tree, error) {
	if s.Lib == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "node group %q not found", name)
	}
	t, ok := s.Lib.Get(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "node group %q not found", name)
	}
	return t.Clone(name), nil
}
