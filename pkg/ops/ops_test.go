package ops

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/assets"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

// materialEnv returns an env whose active material holds the given image
// nodes, searched in FULL_MATERIAL mode.
func materialEnv(t *testing.T, imageNodes ...string) *Env {
	t.Helper()
	scene := shadergraph.NewScene()
	mat := shadergraph.NewMaterial("Wood")
	for _, name := range imageNodes {
		_, err := mat.Tree.AddNode(shadergraph.Node{
			Name:    name,
			Type:    shadergraph.TypeImage,
			Inputs:  shadergraph.Sockets("Vector"),
			Outputs: shadergraph.Sockets("Color", "Alpha"),
		})
		require.NoError(t, err)
	}
	scene.AddMaterial(mat)
	env := NewEnv(scene)
	require.NoError(t, env.Tools.Set(settings.FieldSearchMode, settings.SearchFullMaterial))
	return env
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("img"), 0o644))
	}
}

func node(t *testing.T, tree *shadergraph.Tree, name string) *shadergraph.Node {
	t.Helper()
	n, ok := tree.Node(name)
	require.True(t, ok, "node %q", name)
	return n
}

type failingLoader struct {
	fail map[string]bool
}

func (l failingLoader) Load(ctx context.Context, path string) (*shadergraph.Image, error) {
	if l.fail[filepath.Base(path)] {
		return nil, stderrors.New("corrupt image")
	}
	return &shadergraph.Image{ID: "id-" + filepath.Base(path), Name: filepath.Base(path), Filepath: path}, nil
}

// =============================================================================
// Target tree
// =============================================================================

func TestTargetTree(t *testing.T) {
	env := materialEnv(t, "Albedo")
	mat := env.Scene.Editor.Material
	assert.Same(t, mat.Tree, TargetTree(env))

	require.NoError(t, env.Tools.Set(settings.FieldSearchMode, settings.SearchActiveGroup))
	assert.Nil(t, TargetTree(env), "no active node")

	require.NoError(t, mat.Tree.SetActive("Albedo"))
	assert.Nil(t, TargetTree(env), "active node is not a group")

	grp := shadergraph.NewTree("My Group")
	require.NoError(t, env.Scene.Groups.Add(grp))
	_, err := mat.Tree.AddNode(shadergraph.Node{Name: "G", Type: shadergraph.TypeGroup, Group: "My Group"})
	require.NoError(t, err)
	require.NoError(t, mat.Tree.SetActive("G"))
	assert.Same(t, grp, TargetTree(env))

	env.Scene.Editor.TreeType = "GeometryNodeTree"
	assert.Nil(t, TargetTree(env), "not a shader editor")
}

func TestTargetTree_NoMaterial(t *testing.T) {
	env := NewEnv(shadergraph.NewScene())
	assert.Nil(t, TargetTree(env))

	env = materialEnv(t)
	env.Scene.Editor.Material.UseNodes = false
	assert.Nil(t, TargetTree(env))
}

// =============================================================================
// Load texture set
// =============================================================================

func TestLoadTextureSet(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "wood_albedo.png", "wood_rough.jpg", "wood_nrm.png")
	env := materialEnv(t, "Albedo", "Rough", "Normal", "Normal.001")

	files := []string{"wood_albedo.png", "wood_rough.jpg", "wood_nrm.png", "wood_height.png", "readme.txt"}
	report, err := LoadTextureSet(context.Background(), env, dir, files)
	require.NoError(t, err)

	assert.Len(t, report.Loaded, 3)
	assert.Equal(t, "Loaded 3 textures.", report.Message())
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, SkippedFile{File: "wood_height.png", MapType: "Displacement", Reason: SkipNoTarget}, report.Skipped[0])
	assert.Equal(t, SkipUnknown, report.Skipped[1].Reason)
	assert.Empty(t, report.Failures)

	tree := env.Scene.Editor.Material.Tree
	albedo := node(t, tree, "Albedo")
	require.True(t, albedo.HasImage())
	assert.Equal(t, "wood_albedo.png", albedo.Image.Name)
	assert.Equal(t, "sRGB", albedo.Image.ColorSpace)
	assert.NotEmpty(t, albedo.Image.ID)
	assert.Equal(t, shadergraph.Sampler{Interpolation: "Cubic", Projection: "FLAT", Extension: "REPEAT"}, albedo.Sampler)

	assert.Equal(t, "Non-Color", node(t, tree, "Rough").Image.ColorSpace)
	assert.True(t, node(t, tree, "Normal").HasImage())
	assert.False(t, node(t, tree, "Normal.001").HasImage(), "only the first node per map type is used")
	assert.Len(t, env.Scene.Images, 3)
}

func TestLoadTextureSet_BoxProjectionCopiesBlend(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a_diffuse.png")
	env := materialEnv(t, "Diffuse")
	require.NoError(t, env.Tools.Set(settings.FieldProjection, settings.ProjBox))
	require.NoError(t, env.Tools.Set(settings.FieldProjectionBlend, 0.2))

	_, err := LoadTextureSet(context.Background(), env, dir, []string{"a_diffuse.png"})
	require.NoError(t, err)

	s := node(t, env.Scene.Editor.Material.Tree, "Diffuse").Sampler
	assert.Equal(t, "BOX", s.Projection)
	assert.Equal(t, 0.2, s.ProjectionBlend)
}

func TestLoadTextureSet_FailureContinues(t *testing.T) {
	env := materialEnv(t, "Albedo", "Rough")
	env.Loader = failingLoader{fail: map[string]bool{"x_albedo.png": true}}

	report, err := LoadTextureSet(context.Background(), env, "/tex", []string{"x_albedo.png", "x_rough.png"})
	require.NoError(t, err)
	require.Len(t, report.Failures, 1)
	assert.True(t, errors.Is(report.Failures[0].Err, errors.ErrCodeLoadFailed))
	assert.Len(t, report.Loaded, 1)
	assert.Equal(t, "Loaded 1 textures.", report.Message())
}

func TestLoadTextureSet_InvalidNameContinues(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "wood_diff.png", "wood_normal.png")
	env := materialEnv(t, "Diffuse", "Normal")

	files := []string{"wood_diff.png", "bad\x01_normal.png", "../wood_normal.png", "wood_normal.png"}
	report, err := LoadTextureSet(context.Background(), env, dir, files)
	require.NoError(t, err)

	require.Len(t, report.Loaded, 2)
	assert.Equal(t, "wood_diff.png", report.Loaded[0].File)
	assert.Equal(t, "wood_normal.png", report.Loaded[1].File)
	require.Len(t, report.Failures, 2)
	for i, want := range []string{"bad\x01_normal.png", "../wood_normal.png"} {
		assert.Equal(t, want, report.Failures[i].File)
		assert.True(t, errors.Is(report.Failures[i].Err, errors.ErrCodeInvalidPath))
	}
	assert.Equal(t, "Loaded 2 textures.", report.Message())
}

func TestLoadTextureSet_MissingFile(t *testing.T) {
	env := materialEnv(t, "Albedo")
	report, err := LoadTextureSet(context.Background(), env, t.TempDir(), []string{"gone_albedo.png"})
	require.NoError(t, err)
	require.Len(t, report.Failures, 1)
	assert.True(t, errors.Is(report.Failures[0].Err, errors.ErrCodeFileNotFound))
	assert.Empty(t, report.Loaded)
}

func TestLoadTextureSet_Preconditions(t *testing.T) {
	env := materialEnv(t, "Albedo")
	_, err := LoadTextureSet(context.Background(), env, "/tex", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	require.NoError(t, env.Tools.Set(settings.FieldSearchMode, settings.SearchActiveGroup))
	_, err = LoadTextureSet(context.Background(), env, "/tex", []string{"a.png"})
	assert.True(t, errors.Is(err, errors.ErrCodePreconditionNotMet))
}

func TestLoadTextureSet_CustomKeywords(t *testing.T) {
	env := materialEnv(t, "Gloss")
	env.Prefs.Keywords = nil
	env.Prefs.Add()
	require.NoError(t, env.Prefs.Update("Gloss", "gloss, shine", "COLOR"))
	env.Loader = failingLoader{}

	report, err := LoadTextureSet(context.Background(), env, "/tex", []string{"steel-shine.exr"})
	require.NoError(t, err)
	require.Len(t, report.Loaded, 1)
	assert.Equal(t, "Gloss", report.Loaded[0].MapType)
	assert.Equal(t, "sRGB", report.Loaded[0].Image.ColorSpace)
}

// =============================================================================
// Batch settings
// =============================================================================

func TestApplyBatchSettings(t *testing.T) {
	env := materialEnv(t, "A", "B")
	require.NoError(t, env.Tools.SetSilent(settings.FieldInterpolation, settings.InterpClosest))

	n, err := ApplyBatchSettings(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	tree := env.Scene.Editor.Material.Tree
	assert.Equal(t, "Closest", node(t, tree, "A").Sampler.Interpolation)
	assert.Equal(t, "Closest", node(t, tree, "B").Sampler.Interpolation)
}

func TestApplyBatchSettings_NoImageNodes(t *testing.T) {
	env := materialEnv(t)
	_, err := ApplyBatchSettings(context.Background(), env)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestGetBatchSettings(t *testing.T) {
	env := materialEnv(t, "zz_rough", "wood_diffuse")
	tree := env.Scene.Editor.Material.Tree
	node(t, tree, "wood_diffuse").Sampler = shadergraph.Sampler{
		Interpolation: "Linear", Projection: "BOX", ProjectionBlend: 0.3, Extension: "CLIP",
	}
	node(t, tree, "zz_rough").Sampler = shadergraph.Sampler{Interpolation: "Smart"}

	notified := 0
	env.Tools.Observe(func(settings.Field, settings.Values) { notified++ })
	cancel := BatchUpdate(env)
	defer cancel()

	name, err := GetBatchSettings(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, "wood_diffuse", name)
	assert.Zero(t, notified)

	v := env.Tools.Values()
	assert.Equal(t, "Linear", v.Interpolation)
	assert.Equal(t, "BOX", v.Projection)
	assert.Equal(t, 0.3, v.ProjectionBlend)
	assert.Equal(t, "CLIP", v.Extension)
	assert.Equal(t, "Smart", node(t, tree, "zz_rough").Sampler.Interpolation, "read must not write")
}

func TestGetBatchSettings_NoImageNodes(t *testing.T) {
	env := materialEnv(t)
	_, err := GetBatchSettings(context.Background(), env)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestBatchUpdate(t *testing.T) {
	env := materialEnv(t, "A", "B")
	tree := env.Scene.Editor.Material.Tree
	cancel := BatchUpdate(env)

	require.NoError(t, env.Tools.Set(settings.FieldInterpolation, settings.InterpLinear))
	assert.Equal(t, "Linear", node(t, tree, "A").Sampler.Interpolation)
	assert.Equal(t, "Linear", node(t, tree, "B").Sampler.Interpolation)

	require.NoError(t, env.Tools.Set(settings.FieldProjectionBlend, 0.9))
	assert.Zero(t, node(t, tree, "A").Sampler.ProjectionBlend, "blend ignored while FLAT")

	require.NoError(t, env.Tools.Set(settings.FieldProjection, settings.ProjBox))
	assert.Equal(t, "BOX", node(t, tree, "A").Sampler.Projection)
	assert.Equal(t, 0.9, node(t, tree, "A").Sampler.ProjectionBlend)

	require.NoError(t, env.Tools.Set(settings.FieldProjectionBlend, 0.4))
	assert.Equal(t, 0.4, node(t, tree, "B").Sampler.ProjectionBlend)

	require.NoError(t, env.Tools.Set(settings.FieldExtension, settings.ExtMirror))
	assert.Equal(t, "MIRROR", node(t, tree, "B").Sampler.Extension)

	cancel()
	require.NoError(t, env.Tools.Set(settings.FieldExtension, settings.ExtClip))
	assert.Equal(t, "MIRROR", node(t, tree, "B").Sampler.Extension)
}

// =============================================================================
// Groups and wiring
// =============================================================================

func TestAddGroupNode(t *testing.T) {
	env := materialEnv(t)
	ctx := context.Background()

	a, err := AddGroupNode(ctx, env, GroupLoader)
	require.NoError(t, err)
	b, err := AddGroupNode(ctx, env, GroupLoader)
	require.NoError(t, err)

	assert.Equal(t, "K-Tools: Maps Loader.Wood", a.Group)
	assert.Equal(t, "K-Tools: Maps Loader.Wood.001", b.Group)
	assert.Equal(t, a.Group, a.Name)
	assert.Equal(t, "Maps Loader.Wood", a.Label)
	assert.Equal(t, []string{assets.MapsLoaderGroup, a.Group, b.Group}, env.Scene.Groups.Names())

	assert.Equal(t, shadergraph.Vec2{}, a.Location)
	assert.Equal(t, shadergraph.Vec2{Y: -100}, b.Location)

	tree := env.Scene.Editor.Material.Tree
	sel := tree.Selected()
	require.Len(t, sel, 1)
	assert.Equal(t, b.Name, sel[0].Name)
	active, ok := tree.Active()
	require.True(t, ok)
	assert.Equal(t, b.Name, active.Name)

	m1, err := AddGroupNode(ctx, env, GroupMapping)
	require.NoError(t, err)
	m2, err := AddGroupNode(ctx, env, GroupMapping)
	require.NoError(t, err)
	assert.Equal(t, m1.Group, m2.Group, "mapping groups are shared")
	assert.Equal(t, "K-Tools: Mapping.001", m2.Name)
	assert.Equal(t, "Mapping", m1.Label)
	assert.Len(t, m1.Outputs, 2)
}

func TestAddGroupNode_NoMaterial(t *testing.T) {
	env := NewEnv(shadergraph.NewScene())
	_, err := AddGroupNode(context.Background(), env, GroupBSDF)
	assert.True(t, errors.Is(err, errors.ErrCodePreconditionNotMet))
}

func TestParseGroupKind(t *testing.T) {
	for s, want := range map[string]GroupKind{"mapping": GroupMapping, "Loader": GroupLoader, "bsdf": GroupBSDF} {
		got, err := ParseGroupKind(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseGroupKind("shader")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

// connectedScene builds Mapping, BSDF and a Loader whose template received
// diffuse and roughness textures.
func connectedScene(t *testing.T) (*Env, []string) {
	t.Helper()
	ctx := context.Background()
	env := materialEnv(t)
	env.Loader = failingLoader{}

	m, err := AddGroupNode(ctx, env, GroupMapping)
	require.NoError(t, err)
	b, err := AddGroupNode(ctx, env, GroupBSDF)
	require.NoError(t, err)
	l, err := AddGroupNode(ctx, env, GroupLoader)
	require.NoError(t, err)

	require.NoError(t, env.Tools.Set(settings.FieldSearchMode, settings.SearchActiveGroup))
	report, err := LoadTextureSet(ctx, env, "/tex", []string{"oak_diffuse.png", "oak_roughness.png"})
	require.NoError(t, err)
	require.Len(t, report.Loaded, 2)
	assert.Equal(t, l.Group, report.Tree)

	return env, []string{m.Name, l.Name, b.Name}
}

func TestConnect(t *testing.T) {
	env, names := connectedScene(t)
	tree := env.Scene.Editor.Material.Tree
	require.NoError(t, tree.Select(names...))

	res, err := Connect(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Links())
	assert.Equal(t, "Created 4 link(s) (Mapped→Loader & Loader→BSDF).", res.Message())
	assert.True(t, tree.IsLinked(names[2], "Base Color"))
	assert.True(t, tree.IsLinked(names[2], "Roughness"))
	assert.False(t, tree.IsLinked(names[2], "Normal"))

	again, err := Connect(context.Background(), env)
	require.NoError(t, err)
	assert.Zero(t, again.Links())
	assert.Equal(t, "No new links needed or created.", again.Message())
	assert.Equal(t, 4, tree.LinkCount())
}

func TestConnect_Preconditions(t *testing.T) {
	env, names := connectedScene(t)
	tree := env.Scene.Editor.Material.Tree
	ctx := context.Background()

	tree.DeselectAll()
	require.NoError(t, tree.Select(names[1]))
	_, err := Connect(ctx, env)
	assert.True(t, errors.Is(err, errors.ErrCodePreconditionNotMet))

	extra, err := AddGroupNode(ctx, env, GroupBSDF)
	require.NoError(t, err)
	require.NoError(t, tree.Select(names...))
	require.NoError(t, tree.Select(extra.Name))
	_, err = Connect(ctx, env)
	assert.True(t, errors.Is(err, errors.ErrCodePreconditionNotMet))

	tree.DeselectAll()
	require.NoError(t, tree.Select(names[0], names[2]))
	_, err = Connect(ctx, env)
	assert.True(t, errors.Is(err, errors.ErrCodeMissingRole))
	assert.Zero(t, tree.LinkCount())
}

func TestScan(t *testing.T) {
	env := materialEnv(t, "misc", "wood_normal", "wood_color")
	entries, err := Scan(env)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "wood_color", entries[0].Node.Name)
	assert.Equal(t, "Diffuse", entries[0].Info.MapType)
	assert.Equal(t, 0, entries[0].Priority)
	assert.Equal(t, "wood_normal", entries[1].Node.Name)
	assert.Equal(t, "misc", entries[2].Node.Name)
	assert.Equal(t, 999, entries[2].Priority)
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png")
	img, err := FileLoader{}.Load(context.Background(), filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "a.png", img.Name)
	assert.Len(t, img.ID, 36)

	_, err = FileLoader{}.Load(context.Background(), dir)
	assert.True(t, errors.Is(err, errors.ErrCodeLoadFailed))

	_, err = FileLoader{}.Load(context.Background(), filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
