// Package assets provides the bundled K-Tools node-group templates and the
// rules for bringing them into a scene's group library.
//
// Three templates exist: [MappingGroup], [MapsLoaderGroup] and [BSDFGroup].
// Mapping and BSDF are shared by every material. Each material gets its own
// Maps Loader copy (see [AppendUniqueLoader]) because the loader's internal
// image nodes hold that material's textures.
package assets

import (
	"strings"
	"unicode"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/wiring"
)

// Template names.
const (
	MapsLoaderGroup = wiring.LoaderPrefix
	MappingGroup    = wiring.MappingPrefix
	BSDFGroup       = wiring.BSDFPrefix
)

// Names lists the bundled templates.
var Names = []string{MappingGroup, MapsLoaderGroup, BSDFGroup}

// Source loads templates by name. Every call returns a fresh tree.
type Source interface {
	Load(name string) (*shadergraph.Tree, error)
}

// Ensure returns the group called name from lib, loading it from src when
// it is missing or only available as a linked copy. A freshly loaded group
// whose name is taken is stored under the first free ".NNN" name.
func Ensure(lib *shadergraph.Library, src Source, name string) (*shadergraph.Tree, error) {
	if existing, ok := lib.Get(name); ok && !existing.Linked {
		return existing, nil
	}
	t, err := src.Load(name)
	if err != nil {
		return nil, err
	}
	t.Name = lib.FreeName(name)
	t.Linked = false
	if err := lib.Add(t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "add group %q", t.Name)
	}
	return t, nil
}

// LoaderName returns the base name of a material's Maps Loader copy.
func LoaderName(material string) string {
	if material == "" {
		return MapsLoaderGroup
	}
	return MapsLoaderGroup + "." + sanitize(material)
}

// AppendUniqueLoader adds a local copy of the Maps Loader template named for
// material. On a name collision ".001", ".002", ... is appended.
func AppendUniqueLoader(lib *shadergraph.Library, src Source, material string) (*shadergraph.Tree, error) {
	source, err := Ensure(lib, src, MapsLoaderGroup)
	if err != nil {
		return nil, err
	}
	name := lib.FreeName(LoaderName(material))
	t, err := lib.Copy(source.Name, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "copy %q", source.Name)
	}
	return t, nil
}

// Label returns the display label for a group: the text after the last ':'.
func Label(group string) string {
	if i := strings.LastIndex(group, ":"); i >= 0 {
		group = group[i+1:]
	}
	return strings.TrimSpace(group)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, s)
}
