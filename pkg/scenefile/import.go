package scenefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

var knownTypes = map[string]shadergraph.NodeType{
	string(shadergraph.TypeImage):       shadergraph.TypeImage,
	string(shadergraph.TypeGroup):       shadergraph.TypeGroup,
	string(shadergraph.TypeBSDF):        shadergraph.TypeBSDF,
	string(shadergraph.TypeGroupInput):  shadergraph.TypeGroupInput,
	string(shadergraph.TypeGroupOutput): shadergraph.TypeGroupOutput,
	string(shadergraph.TypeOther):       shadergraph.TypeOther,
}

// Read decodes a scene document from r.
func Read(r io.Reader) (*Document, error) {
	var in document
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	scene := &shadergraph.Scene{Groups: shadergraph.NewLibrary()}
	images := make(map[string]*shadergraph.Image)

	for i, m := range in.Materials {
		if m.Name == "" {
			return nil, fmt.Errorf("material %d: missing name", i)
		}
		if _, dup := scene.Material(m.Name); dup {
			return nil, fmt.Errorf("material %q: duplicate name", m.Name)
		}
		t, err := importTree(m.Name, m.Tree, scene, images)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", m.Name, err)
		}
		scene.Materials = append(scene.Materials, &shadergraph.Material{Name: m.Name, UseNodes: m.UseNodes, Tree: t})
	}
	for i, g := range in.Groups {
		if g.Name == "" {
			return nil, fmt.Errorf("group %d: missing name", i)
		}
		t, err := importTree(g.Name, g, scene, images)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		t.Linked = g.Linked
		if err := scene.Groups.Add(t); err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
	}

	scene.Editor = &shadergraph.Editor{SpaceType: shadergraph.SpaceNodeEditor, TreeType: shadergraph.TreeTypeShader}
	if ed := in.Editor; ed != nil {
		scene.Editor.SpaceType = ed.SpaceType
		scene.Editor.TreeType = ed.TreeType
		scene.Editor.ViewCenter = ed.ViewCenter
		if ed.Material != "" {
			m, ok := scene.Material(ed.Material)
			if !ok {
				return nil, fmt.Errorf("editor: unknown material %q", ed.Material)
			}
			scene.Editor.Material = m
		}
	}
	if scene.Editor.Material == nil && in.Editor == nil && len(scene.Materials) > 0 {
		scene.Editor.Material = scene.Materials[0]
	}

	tools := settings.Defaults()
	if in.Tools != nil {
		tools = settings.NewWith(*in.Tools).Values()
	}
	return &Document{Scene: scene, Tools: tools}, nil
}

func importTree(name string, in tree, scene *shadergraph.Scene, images map[string]*shadergraph.Image) (*shadergraph.Tree, error) {
	t := shadergraph.NewTree(name)
	for _, n := range in.Nodes {
		typ, ok := knownTypes[n.Type]
		if !ok {
			typ = shadergraph.TypeOther
		}
		nd := shadergraph.Node{
			Name:     n.Name,
			Label:    n.Label,
			Type:     typ,
			Inputs:   n.Inputs,
			Outputs:  n.Outputs,
			Group:    n.Group,
			Location: n.Location,
			Selected: n.Selected,
		}
		if n.Sampler != nil {
			nd.Sampler = *n.Sampler
		}
		added, err := t.AddNode(nd)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Name, err)
		}
		if n.Image != nil {
			added.Image = sharedImage(n.Image, scene, images)
		}
	}
	for _, l := range in.Links {
		if err := t.Link(l.FromNode, l.FromSocket, l.ToNode, l.ToSocket); err != nil {
			return nil, fmt.Errorf("link %s: %w", l, err)
		}
	}
	if in.Active != "" {
		if err := t.SetActive(in.Active); err != nil {
			return nil, fmt.Errorf("active: %w", err)
		}
	}
	return t, nil
}

func sharedImage(img *shadergraph.Image, scene *shadergraph.Scene, images map[string]*shadergraph.Image) *shadergraph.Image {
	if img.ID != "" {
		if existing, ok := images[img.ID]; ok {
			return existing
		}
	}
	c := *img
	scene.AddImage(&c)
	if c.ID != "" {
		images[c.ID] = &c
	}
	return &c
}

// ReadFile reads a scene document from path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
