package scenefile

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

func sampleScene(t *testing.T) *Document {
	t.Helper()
	s := shadergraph.NewScene()
	m := shadergraph.NewMaterial("Wood")
	img := &shadergraph.Image{ID: "img-1", Name: "wood_diff.png", Filepath: "/tex/wood_diff.png", ColorSpace: "sRGB"}
	s.AddImage(img)

	mustAdd := func(tr *shadergraph.Tree, n shadergraph.Node) *shadergraph.Node {
		node, err := tr.AddNode(n)
		if err != nil {
			t.Fatal(err)
		}
		return node
	}
	tex := mustAdd(m.Tree, shadergraph.Node{
		Name: "Image Texture", Label: "wood_diff", Type: shadergraph.TypeImage,
		Outputs:  shadergraph.Sockets("Color"),
		Sampler:  shadergraph.Sampler{Interpolation: "Linear", Projection: "FLAT", Extension: "REPEAT"},
		Location: shadergraph.Vec2{X: -300, Y: 10},
		Selected: true,
	})
	tex.Image = img
	mustAdd(m.Tree, shadergraph.Node{Name: "BSDF", Type: shadergraph.TypeBSDF, Inputs: shadergraph.Sockets("Base Color")})
	if err := m.Tree.Link("Image Texture", "Color", "BSDF", "Base Color"); err != nil {
		t.Fatal(err)
	}
	if err := m.Tree.SetActive("BSDF"); err != nil {
		t.Fatal(err)
	}
	s.AddMaterial(m)

	g := shadergraph.NewTree("K-Tools: Maps Loader")
	g.Linked = true
	inner := mustAdd(g, shadergraph.Node{Name: "Diffuse", Type: shadergraph.TypeImage})
	inner.Image = img
	if err := s.Groups.Add(g); err != nil {
		t.Fatal(err)
	}

	tools := settings.Defaults()
	tools.SearchMode = settings.SearchFullMaterial
	return &Document{Scene: s, Tools: tools}
}

func TestRoundTrip(t *testing.T) {
	doc := sampleScene(t)
	var first bytes.Buffer
	if err := Write(doc, &first); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var second bytes.Buffer
	if err := Write(got, &second); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("round trip differs:\n%s\n---\n%s", first.String(), second.String())
	}

	if got.Tools.SearchMode != settings.SearchFullMaterial {
		t.Errorf("SearchMode = %q", got.Tools.SearchMode)
	}
	if got.Scene.Editor.Material == nil || got.Scene.Editor.Material.Name != "Wood" {
		t.Fatalf("editor material = %+v", got.Scene.Editor.Material)
	}
	tree := got.Scene.Editor.Material.Tree
	if !tree.IsLinked("BSDF", "Base Color") {
		t.Error("link lost")
	}
	if a, ok := tree.Active(); !ok || a.Name != "BSDF" {
		t.Errorf("active = %v", a)
	}
	if sel := tree.Selected(); len(sel) != 1 || sel[0].Name != "Image Texture" {
		t.Errorf("selected = %v", sel)
	}

	grp, ok := got.Scene.Groups.Get("K-Tools: Maps Loader")
	if !ok || !grp.Linked {
		t.Fatalf("group = %+v", grp)
	}
	outer, _ := tree.Node("Image Texture")
	inner, _ := grp.Node("Diffuse")
	if outer.Image != inner.Image {
		t.Error("images with the same ID are not shared")
	}
	if len(got.Scene.Images) != 1 {
		t.Errorf("Images = %d, want 1", len(got.Scene.Images))
	}
}

func TestRead_Defaults(t *testing.T) {
	doc, err := Read(strings.NewReader(`{"materials":[{"name":"M","use_nodes":true,"tree":{"nodes":[]}}]}`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Tools != settings.Defaults() {
		t.Errorf("Tools = %+v", doc.Tools)
	}
	if !doc.Scene.Editor.IsShaderEditor() {
		t.Error("default editor is not a shader editor")
	}
	if doc.Scene.Editor.Material == nil || doc.Scene.Editor.Material.Name != "M" {
		t.Error("first material not active")
	}
}

func TestRead_UnknownNodeType(t *testing.T) {
	doc, err := Read(strings.NewReader(`{"materials":[{"name":"M","tree":{"nodes":[{"name":"n","type":"MIX"}]}}]}`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	n, _ := doc.Scene.Materials[0].Tree.Node("n")
	if n.Type != shadergraph.TypeOther {
		t.Errorf("Type = %q, want OTHER", n.Type)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{"bad json", `{`, nil, "decode"},
		{"missing material name", `{"materials":[{"tree":{}}]}`, nil, "missing name"},
		{"duplicate node", `{"materials":[{"name":"M","tree":{"nodes":[{"name":"a"},{"name":"a"}]}}]}`,
			shadergraph.ErrDuplicateNode, `material "M"`},
		{"unknown link node", `{"materials":[{"name":"M","tree":{"nodes":[{"name":"a"}],"links":[{"from_node":"a","from_socket":"x","to_node":"b","to_socket":"y"}]}}]}`,
			shadergraph.ErrUnknownNode, "link a:x -> b:y"},
		{"unknown socket", `{"groups":[{"name":"G","nodes":[{"name":"a"},{"name":"b"}],"links":[{"from_node":"a","from_socket":"x","to_node":"b","to_socket":"y"}]}]}`,
			shadergraph.ErrUnknownSocket, `group "G"`},
		{"unknown editor material", `{"editor":{"material":"X"},"materials":[]}`, nil, "unknown material"},
		{"bad active", `{"materials":[{"name":"M","tree":{"active":"zz","nodes":[]}}]}`, shadergraph.ErrUnknownNode, "active"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Read: want error")
			}
			if tt.wantErr != nil && !stderrors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := WriteFile(sampleScene(t), path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(doc.Scene.Materials) != 1 {
		t.Errorf("Materials = %d", len(doc.Scene.Materials))
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadFile(missing): want error")
	}
}
