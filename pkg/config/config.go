// Package config persists the user preferences: the keyword list used to
// classify texture maps and the colour-space labels assigned to loaded
// images.
//
// Preferences are stored as TOML by default. A file ending in .yaml or .yml
// is read and written as YAML instead.
//
//	[[keywords]]
//	map_type = "Diffuse"
//	keywords = "diff, albedo, basecolor, color, _ALB, diffuse"
//	data_type = "COLOR"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/maptype"
)

// Default colour-space labels.
const (
	DefaultColorSpaceColor   = "sRGB"
	DefaultColorSpaceUtility = "Non-Color"
)

// FileName is the default preferences file name.
const FileName = "preferences.toml"

// New keyword entries start with these values.
const (
	NewEntryMapType  = "NewMap"
	NewEntryKeywords = "keyword1"
)

// Preferences are the persisted user settings.
type Preferences struct {
	Keywords          []maptype.Entry `toml:"keywords" yaml:"keywords"`
	ColorSpaceColor   string          `toml:"color_space_color" yaml:"color_space_color"`
	ColorSpaceUtility string          `toml:"color_space_utility" yaml:"color_space_utility"`
	ActiveKeyword     int             `toml:"active_keyword" yaml:"active_keyword"`
}

// Default returns preferences populated with the built-in keyword list.
func Default() *Preferences {
	p := &Preferences{
		ColorSpaceColor:   DefaultColorSpaceColor,
		ColorSpaceUtility: DefaultColorSpaceUtility,
		ActiveKeyword:     -1,
	}
	p.RestoreDefaults()
	return p
}

// Table builds the classifier table from the keyword list. An empty list
// yields the built-in table.
func (p *Preferences) Table() maptype.Table { return maptype.BuildTable(p.Keywords) }

// ColorSpace returns the colour-space label for data type d.
func (p *Preferences) ColorSpace(d maptype.DataType) string {
	if d == maptype.Color {
		return p.ColorSpaceColor
	}
	return p.ColorSpaceUtility
}

// Add appends a placeholder entry and makes it active.
func (p *Preferences) Add() maptype.Entry {
	e := maptype.Entry{MapType: NewEntryMapType, Keywords: NewEntryKeywords, DataType: maptype.Utility}
	p.Keywords = append(p.Keywords, e)
	p.ActiveKeyword = len(p.Keywords) - 1
	return e
}

// Remove deletes the active entry. The entry before it becomes active, or
// the first one if the removed entry was first. With no entries left the
// active index is -1.
func (p *Preferences) Remove() (maptype.Entry, error) {
	i := p.ActiveKeyword
	if len(p.Keywords) == 0 || i < 0 || i >= len(p.Keywords) {
		return maptype.Entry{}, errors.New(errors.ErrCodePreconditionNotMet, "no active keyword entry")
	}
	removed := p.Keywords[i]
	p.Keywords = slices.Delete(p.Keywords, i, i+1)
	switch {
	case i > 0:
		p.ActiveKeyword = i - 1
	case len(p.Keywords) > 0:
		p.ActiveKeyword = 0
	default:
		p.ActiveKeyword = -1
	}
	return removed, nil
}

// RestoreDefaults replaces the keyword list with the built-in entries.
func (p *Preferences) RestoreDefaults() {
	p.Keywords = maptype.DefaultEntries()
	if p.ActiveKeyword >= len(p.Keywords) {
		p.ActiveKeyword = len(p.Keywords) - 1
	}
}

// Select makes entry i active.
func (p *Preferences) Select(i int) error {
	if i < 0 || i >= len(p.Keywords) {
		return errors.New(errors.ErrCodeInvalidInput, "keyword index %d out of range [0, %d)", i, len(p.Keywords))
	}
	p.ActiveKeyword = i
	return nil
}

// Update replaces the active entry's fields. Empty arguments keep the
// current value.
func (p *Preferences) Update(mapType, keywords string, dataType maptype.DataType) error {
	i := p.ActiveKeyword
	if i < 0 || i >= len(p.Keywords) {
		return errors.New(errors.ErrCodePreconditionNotMet, "no active keyword entry")
	}
	e := &p.Keywords[i]
	if mapType != "" {
		e.MapType = mapType
	}
	if keywords != "" {
		e.Keywords = keywords
	}
	if dataType != "" {
		e.DataType = maptype.ParseDataType(string(dataType))
	}
	return nil
}

func (p *Preferences) normalize() {
	if p.ColorSpaceColor == "" {
		p.ColorSpaceColor = DefaultColorSpaceColor
	}
	if p.ColorSpaceUtility == "" {
		p.ColorSpaceUtility = DefaultColorSpaceUtility
	}
	for i := range p.Keywords {
		if d := p.Keywords[i].DataType; !d.Valid() {
			p.Keywords[i].DataType = maptype.ParseDataType(string(d))
		}
	}
	if p.ActiveKeyword < -1 || p.ActiveKeyword >= len(p.Keywords) {
		p.ActiveKeyword = len(p.Keywords) - 1
	}
}

// =============================================================================
// Files
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/ktml/preferences.toml, falling back
// to ~/.config/ktml/preferences.toml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate home directory")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ktml", FileName), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads preferences from path. A missing file yields [Default].
func Load(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Decode(data, isYAML(path))
}

// Decode parses preferences from TOML, or YAML when yamlFormat is set.
// A decoded file is authoritative: an empty keyword list stays empty.
func Decode(data []byte, yamlFormat bool) (*Preferences, error) {
	p := &Preferences{ActiveKeyword: -1}
	if yamlFormat {
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml preferences")
		}
	} else {
		if _, err := toml.Decode(string(data), p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml preferences")
		}
	}
	p.normalize()
	return p, nil
}

// Encode serializes p as TOML, or YAML when yamlFormat is set.
func Encode(p *Preferences, yamlFormat bool) ([]byte, error) {
	if yamlFormat {
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml preferences")
		}
		return data, nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode toml preferences")
	}
	return buf.Bytes(), nil
}

// Save writes p to path, creating parent directories.
func Save(path string, p *Preferences) error {
	data, err := Encode(p, isYAML(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
