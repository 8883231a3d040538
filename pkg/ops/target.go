package ops

import (
	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/maptype"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

// TargetTree returns the tree image-node operators act on, or nil.
//
// The editor must be a shader node editor with an active node-based
// material. In FULL_MATERIAL mode the material tree is returned. In
// ACTIVE_GROUP mode the active node must be a group whose template is in
// the scene's library; its template tree is returned.
func TargetTree(env *Env) *shadergraph.Tree {
	ed := env.editor()
	if !ed.IsShaderEditor() {
		return nil
	}
	tree := ed.EditTree()
	if tree == nil {
		return nil
	}
	switch env.tools().SearchMode() {
	case settings.SearchFullMaterial:
		return tree
	case settings.SearchActiveGroup:
		n, ok := tree.Active()
		if !ok || !n.IsGroup() || n.Group == "" || env.Scene.Groups == nil {
			return nil
		}
		g, ok := env.Scene.Groups.Get(n.Group)
		if !ok {
			return nil
		}
		return g
	}
	return nil
}

func requireTarget(env *Env) (*shadergraph.Tree, error) {
	t := TargetTree(env)
	if t == nil {
		return nil, errors.New(errors.ErrCodePreconditionNotMet, "no target node tree found (check search mode)")
	}
	return t, nil
}

func nodeSubject(n *shadergraph.Node) maptype.Subject {
	return maptype.Subject{Name: n.Name, Label: n.Label}
}

// SortedImageNodes returns the image nodes of tree in classifier priority
// order, then by name.
func SortedImageNodes(tree *shadergraph.Tree, table maptype.Table) []*shadergraph.Node {
	return maptype.Sort(tree.ImageNodes(), table, nodeSubject)
}

// ScanEntry describes one image node of a target tree.
type ScanEntry struct {
	Node     *shadergraph.Node
	Info     maptype.Info
	Priority int
}

// Scan returns the image nodes of the target tree, sorted, with their
// classification.
func Scan(env *Env) ([]ScanEntry, error) {
	tree, err := requireTarget(env)
	if err != nil {
		return nil, err
	}
	table := env.prefs().Table()
	nodes := SortedImageNodes(tree, table)
	out := make([]ScanEntry, len(nodes))
	for i, n := range nodes {
		info := table.ClassifySubject(nodeSubject(n))
		out[i] = ScanEntry{Node: n, Info: info, Priority: maptype.Rank(info.MapType)}
	}
	return out, nil
}
