package shadergraph

import (
	"math"
	"slices"
)

// Editor space and tree identifiers of the shader node editor.
const (
	SpaceNodeEditor = "NODE_EDITOR"
	TreeTypeShader  = "ShaderNodeTree"
)

// Vec2 is a position in node-editor view space.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Image is an image datablock.
type Image struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Filepath   string `json:"filepath"`
	ColorSpace string `json:"color_space,omitempty"`
}

// Material owns a top-level shader tree.
type Material struct {
	Name     string
	UseNodes bool
	Tree     *Tree
}

// NewMaterial creates a node-based material with an empty tree.
func NewMaterial(name string) *Material {
	return &Material{Name: name, UseNodes: true, Tree: NewTree(name)}
}

// Editor is the state of the node editor an operator is invoked from.
type Editor struct {
	SpaceType  string
	TreeType   string
	Material   *Material
	ViewCenter Vec2
}

// IsShaderEditor reports whether the editor shows a shader node tree.
func (e *Editor) IsShaderEditor() bool {
	return e != nil && e.SpaceType == SpaceNodeEditor && e.TreeType == TreeTypeShader
}

// EditTree returns the active material's tree, or nil if there is no
// node-based material.
func (e *Editor) EditTree() *Tree {
	if e == nil || e.Material == nil || !e.Material.UseNodes {
		return nil
	}
	return e.Material.Tree
}

// Selected returns the selected nodes of the edit tree.
func (e *Editor) Selected() []*Node {
	if t := e.EditTree(); t != nil {
		return t.Selected()
	}
	return nil
}

// ActiveNode returns the active node of the edit tree.
func (e *Editor) ActiveNode() (*Node, bool) {
	if t := e.EditTree(); t != nil {
		return t.Active()
	}
	return nil, false
}

// Scene is the host data an operator can reach.
type Scene struct {
	Editor    *Editor
	Materials []*Material
	Groups    *Library
	Images    []*Image
}

// NewScene creates a scene with a shader editor and an empty library.
func NewScene() *Scene {
	return &Scene{
		Editor: &Editor{SpaceType: SpaceNodeEditor, TreeType: TreeTypeShader},
		Groups: NewLibrary(),
	}
}

// AddMaterial appends m. If the editor has no material yet, m becomes the
// active one.
func (s *Scene) AddMaterial(m *Material) {
	s.Materials = append(s.Materials, m)
	if s.Editor != nil && s.Editor.Material == nil {
		s.Editor.Material = m
	}
}

// Material returns the material called name.
func (s *Scene) Material(name string) (*Material, bool) {
	i := slices.IndexFunc(s.Materials, func(m *Material) bool { return m.Name == name })
	if i < 0 {
		return nil, false
	}
	return s.Materials[i], true
}

// AddImage registers img with the scene.
func (s *Scene) AddImage(img *Image) { s.Images = append(s.Images, img) }
