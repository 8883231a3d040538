package scenefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

// Document is a scene plus the tool settings stored with it.
type Document struct {
	Scene *shadergraph.Scene
	Tools settings.Values
}

type document struct {
	Editor    *editor          `json:"editor,omitempty"`
	Materials []material       `json:"materials"`
	Groups    []tree           `json:"groups"`
	Tools     *settings.Values `json:"tool_settings,omitempty"`
}

type editor struct {
	SpaceType  string           `json:"space_type"`
	TreeType   string           `json:"tree_type"`
	Material   string           `json:"material,omitempty"`
	ViewCenter shadergraph.Vec2 `json:"view_center"`
}

type material struct {
	Name     string `json:"name"`
	UseNodes bool   `json:"use_nodes"`
	Tree     tree   `json:"tree"`
}

type tree struct {
	Name   string             `json:"name,omitempty"`
	Linked bool               `json:"linked,omitempty"`
	Active string             `json:"active,omitempty"`
	Nodes  []node             `json:"nodes"`
	Links  []shadergraph.Link `json:"links"`
}

type node struct {
	Name     string               `json:"name"`
	Label    string               `json:"label,omitempty"`
	Type     string               `json:"type"`
	Inputs   []shadergraph.Socket `json:"inputs,omitempty"`
	Outputs  []shadergraph.Socket `json:"outputs,omitempty"`
	Group    string               `json:"group,omitempty"`
	Image    *shadergraph.Image   `json:"image,omitempty"`
	Sampler  *shadergraph.Sampler `json:"sampler,omitempty"`
	Location shadergraph.Vec2     `json:"location"`
	Selected bool                 `json:"selected,omitempty"`
}

// Write encodes doc as indented JSON.
func Write(doc *Document, w io.Writer) error {
	s := doc.Scene
	out := document{Tools: &doc.Tools, Materials: []material{}, Groups: []tree{}}
	if ed := s.Editor; ed != nil {
		out.Editor = &editor{SpaceType: ed.SpaceType, TreeType: ed.TreeType, ViewCenter: ed.ViewCenter}
		if ed.Material != nil {
			out.Editor.Material = ed.Material.Name
		}
	}
	for _, m := range s.Materials {
		mt := material{Name: m.Name, UseNodes: m.UseNodes}
		if m.Tree != nil {
			mt.Tree = exportTree(m.Tree, false)
		}
		out.Materials = append(out.Materials, mt)
	}
	if s.Groups != nil {
		for _, g := range s.Groups.Trees() {
			out.Groups = append(out.Groups, exportTree(g, true))
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func exportTree(t *shadergraph.Tree, named bool) tree {
	out := tree{Linked: t.Linked, Nodes: []node{}, Links: t.Links()}
	if named {
		out.Name = t.Name
	}
	if a, ok := t.Active(); ok {
		out.Active = a.Name
	}
	if out.Links == nil {
		out.Links = []shadergraph.Link{}
	}
	for _, n := range t.Nodes() {
		nd := node{
			Name:     n.Name,
			Label:    n.Label,
			Type:     string(n.Type),
			Inputs:   n.Inputs,
			Outputs:  n.Outputs,
			Group:    n.Group,
			Image:    n.Image,
			Location: n.Location,
			Selected: n.Selected,
		}
		if n.Sampler != (shadergraph.Sampler{}) {
			s := n.Sampler
			nd.Sampler = &s
		}
		out.Nodes = append(out.Nodes, nd)
	}
	return out
}

// WriteFile writes doc to path.
func WriteFile(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
