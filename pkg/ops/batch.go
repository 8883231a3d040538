package ops

import (
	"context"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

func requireImageNodes(tree *shadergraph.Tree) ([]*shadergraph.Node, error) {
	nodes := tree.ImageNodes()
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no image nodes found in %q", tree.Name)
	}
	return nodes, nil
}

// ApplyBatchSettings writes the current tool sampler settings to every
// image node of the target tree and returns how many were updated.
func ApplyBatchSettings(ctx context.Context, env *Env) (n int, err error) {
	done := track(ctx, "apply_batch_settings")
	defer func() { done(n, err) }()

	tree, err := requireTarget(env)
	if err != nil {
		return 0, err
	}
	nodes, err := requireImageNodes(tree)
	if err != nil {
		return 0, err
	}
	v := env.tools().Values()
	for _, node := range nodes {
		applySampler(node, v)
	}
	env.logger().Info("applied batch settings", "tree", tree.Name, "nodes", len(nodes))
	return len(nodes), nil
}

// GetBatchSettings copies the sampler of the first image node, in
// classifier order, into the tool settings without triggering batch
// propagation. It returns the name of the source node.
func GetBatchSettings(ctx context.Context, env *Env) (name string, err error) {
	done := track(ctx, "get_batch_settings")
	defer func() {
		n := 0
		if err == nil {
			n = 1
		}
		done(n, err)
	}()

	tree, err := requireTarget(env)
	if err != nil {
		return "", err
	}
	if _, err := requireImageNodes(tree); err != nil {
		return "", err
	}
	src := SortedImageNodes(tree, env.prefs().Table())[0]
	tools := env.tools()
	for _, a := range settings.FromSampler(src.Sampler) {
		if err := tools.SetSilent(a.Field, a.Value); err != nil {
			env.logger().Warn("ignoring node setting", "node", src.Name, "setting", a.String(), "err", err)
		}
	}
	return src.Name, nil
}

// BatchUpdate installs an observer on the tool settings that propagates a
// changed sampler field to every image node of the current target tree.
// Call the returned function to remove it.
//
// Switching projection to BOX also writes the blend value. A blend change
// only propagates while projection is BOX. Search-mode changes propagate
// nothing.
func BatchUpdate(env *Env) (cancel func()) {
	return env.tools().Observe(func(f settings.Field, v settings.Values) {
		if f == settings.FieldSearchMode {
			return
		}
		if f == settings.FieldProjectionBlend && v.Projection != settings.ProjBox {
			return
		}
		tree := TargetTree(env)
		if tree == nil {
			return
		}
		nodes := tree.ImageNodes()
		if len(nodes) == 0 {
			return
		}
		env.logger().Debug("batch update", "setting", f, "tree", tree.Name, "nodes", len(nodes))
		for _, n := range nodes {
			switch f {
			case settings.FieldInterpolation:
				n.Sampler.Interpolation = v.Interpolation
			case settings.FieldProjection:
				n.Sampler.Projection = v.Projection
				if v.Projection == settings.ProjBox {
					n.Sampler.ProjectionBlend = v.ProjectionBlend
				}
			case settings.FieldProjectionBlend:
				n.Sampler.ProjectionBlend = v.ProjectionBlend
			case settings.FieldExtension:
				n.Sampler.Extension = v.Extension
			}
		}
	})
}
