package ops

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/maptype"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/observability"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/settings"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

// SkipReason explains why a file was not loaded.
type SkipReason string

const (
	SkipUnknown  SkipReason = "no matching keyword"
	SkipNoTarget SkipReason = "no image node for map type"
)

// LoadedFile is a file assigned to an image node.
type LoadedFile struct {
	File    string
	Node    string
	MapType string
	Image   *shadergraph.Image
}

// SkippedFile is a file that was not loaded.
type SkippedFile struct {
	File    string
	MapType string
	Reason  SkipReason
}

// LoadFailure is a file whose load failed.
type LoadFailure struct {
	File string
	Err  error
}

// LoadReport summarises a [LoadTextureSet] call.
type LoadReport struct {
	Tree     string
	Loaded   []LoadedFile
	Skipped  []SkippedFile
	Failures []LoadFailure
}

// Message returns the user-facing summary.
func (r *LoadReport) Message() string {
	return fmt.Sprintf("Loaded %d textures.", len(r.Loaded))
}

// LoadTextureSet loads files from dir into the image nodes of the target
// tree. Each known map type is served by the first image node (in tree
// order) that classifies to it. Files that classify to Unknown, or to a map
// type with no node, are skipped. An invalid filename or a failed load is
// recorded as a failure and the batch continues.
func LoadTextureSet(ctx context.Context, env *Env, dir string, files []string) (report *LoadReport, err error) {
	done := track(ctx, "load_texture_set")
	defer func() {
		n := 0
		if report != nil {
			n = len(report.Loaded)
		}
		done(n, err)
	}()

	tree, err := requireTarget(env)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no files selected")
	}

	prefs := env.prefs()
	table := prefs.Table()
	nodes := nodeMap(tree, table)
	tools := env.tools().Values()
	logger := env.logger()
	loader := env.Loader
	if loader == nil {
		loader = FileLoader{}
	}

	report = &LoadReport{Tree: tree.Name}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := errors.ValidateTextureFilename(f); err != nil {
			report.Failures = append(report.Failures, LoadFailure{File: f, Err: err})
			logger.Error("invalid filename", "file", f, "err", err)
			continue
		}
		info := table.ClassifyFile(f)
		if info.IsUnknown() {
			report.Skipped = append(report.Skipped, SkippedFile{File: f, MapType: info.MapType, Reason: SkipUnknown})
			logger.Debug("skip", "file", f, "reason", SkipUnknown)
			continue
		}
		node, ok := nodes[info.MapType]
		if !ok {
			report.Skipped = append(report.Skipped, SkippedFile{File: f, MapType: info.MapType, Reason: SkipNoTarget})
			logger.Debug("skip", "file", f, "map_type", info.MapType, "reason", SkipNoTarget)
			continue
		}

		path := filepath.Join(dir, f)
		img, err := loader.Load(ctx, path)
		observability.Load().OnImageLoad(ctx, path, err)
		if err != nil {
			if !errors.Is(err, errors.ErrCodeFileNotFound) && !errors.Is(err, errors.ErrCodeLoadFailed) {
				err = errors.Wrap(errors.ErrCodeLoadFailed, err, "load %s", f)
			}
			report.Failures = append(report.Failures, LoadFailure{File: f, Err: err})
			logger.Error("load error", "file", f, "err", err)
			continue
		}

		img.ColorSpace = prefs.ColorSpace(info.DataType)
		node.Image = img
		applySampler(node, tools)
		if env.Scene != nil {
			env.Scene.AddImage(img)
		}
		report.Loaded = append(report.Loaded, LoadedFile{File: f, Node: node.Name, MapType: info.MapType, Image: img})
		logger.Debug("loaded", "file", f, "node", node.Name, "map_type", info.MapType, "color_space", img.ColorSpace)
	}
	logger.Info("loaded texture set", "tree", tree.Name, "loaded", len(report.Loaded),
		"skipped", len(report.Skipped), "failed", len(report.Failures))
	return report, nil
}

// nodeMap maps each known map type to the first image node of tree that
// classifies to it.
func nodeMap(tree *shadergraph.Tree, table maptype.Table) map[string]*shadergraph.Node {
	m := make(map[string]*shadergraph.Node)
	for _, n := range tree.ImageNodes() {
		info := table.ClassifySubject(nodeSubject(n))
		if info.IsUnknown() {
			continue
		}
		if _, taken := m[info.MapType]; !taken {
			m[info.MapType] = n
		}
	}
	return m
}

// applySampler copies the tool sampler values onto n. Projection blend is
// only written for box projection.
func applySampler(n *shadergraph.Node, v settings.Values) {
	n.Sampler.Interpolation = v.Interpolation
	n.Sampler.Projection = v.Projection
	if v.Projection == settings.ProjBox {
		n.Sampler.ProjectionBlend = v.ProjectionBlend
	}
	n.Sampler.Extension = v.Extension
}
