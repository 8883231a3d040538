package ops

import (
	"context"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/wiring"
)

// Connect wires the selected group nodes of the active material:
// Mapping to Loader to BSDF.
func Connect(ctx context.Context, env *Env) (res *wiring.Result, err error) {
	done := track(ctx, "connect")
	defer func() {
		n := 0
		if res != nil {
			n = res.Links()
		}
		done(n, err)
	}()

	ed := env.editor()
	if !ed.IsShaderEditor() {
		return nil, errors.New(errors.ErrCodePreconditionNotMet, "not in a shader node editor")
	}
	tree := ed.EditTree()
	if tree == nil {
		return nil, errors.New(errors.ErrCodePreconditionNotMet, "no active material with nodes")
	}

	selected := tree.Selected()
	sel := make([]wiring.Member, len(selected))
	for i, n := range selected {
		sel[i] = wiring.Member{Name: n.Name, Template: n.Group, Group: n.IsGroup()}
	}

	r := wiring.New(shadergraph.Host{Tree: tree, Groups: env.Scene.Groups}, wiring.WithLogger(env.logger()))
	res, err = r.Resolve(ctx, sel)
	if err != nil {
		return nil, err
	}
	env.logger().Info("connected groups", "links", res.Links(), "categories", res.Categories())
	return res, nil
}
