// Package settings holds the batch tool settings shared by the texture
// operators: which tree to search and the sampler values pushed to image
// nodes.
//
// Assignments go through [Tools.Set], which validates the value and then
// notifies observers, or [Tools.SetSilent], which skips notification. The
// silent path is what "read settings back from a node" uses so that the
// read does not trigger a batch write.
package settings

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

// Field names a tool setting.
type Field string

const (
	FieldSearchMode      Field = "search_mode"
	FieldInterpolation   Field = "interpolation"
	FieldProjection      Field = "projection"
	FieldProjectionBlend Field = "projection_blend"
	FieldExtension       Field = "extension"
)

// Fields lists every settable field in display order.
var Fields = []Field{FieldSearchMode, FieldInterpolation, FieldProjection, FieldProjectionBlend, FieldExtension}

// Search modes.
const (
	SearchActiveGroup  = "ACTIVE_GROUP"
	SearchFullMaterial = "FULL_MATERIAL"
)

// Sampler enum values.
const (
	InterpLinear  = "Linear"
	InterpClosest = "Closest"
	InterpCubic   = "Cubic"
	InterpSmart   = "Smart"

	ProjFlat   = "FLAT"
	ProjBox    = "BOX"
	ProjSphere = "SPHERE"
	ProjTube   = "TUBE"

	ExtRepeat = "REPEAT"
	ExtExtend = "EXTEND"
	ExtClip   = "CLIP"
	ExtMirror = "MIRROR"
)

var (
	searchModes    = []string{SearchActiveGroup, SearchFullMaterial}
	interpolations = []string{InterpLinear, InterpClosest, InterpCubic, InterpSmart}
	projections    = []string{ProjFlat, ProjBox, ProjSphere, ProjTube}
	extensions     = []string{ExtRepeat, ExtExtend, ExtClip, ExtMirror}
)

// Choices returns the accepted values of an enum field, or nil for
// projection_blend and unknown fields.
func Choices(f Field) []string {
	switch f {
	case FieldSearchMode:
		return slices.Clone(searchModes)
	case FieldInterpolation:
		return slices.Clone(interpolations)
	case FieldProjection:
		return slices.Clone(projections)
	case FieldExtension:
		return slices.Clone(extensions)
	}
	return nil
}

// Values is a snapshot of the tool settings.
type Values struct {
	SearchMode      string  `json:"search_mode"`
	Interpolation   string  `json:"interpolation"`
	Projection      string  `json:"projection"`
	ProjectionBlend float64 `json:"projection_blend"`
	Extension       string  `json:"extension"`
}

// Defaults returns the initial settings.
func Defaults() Values {
	return Values{
		SearchMode:      SearchActiveGroup,
		Interpolation:   InterpCubic,
		Projection:      ProjFlat,
		ProjectionBlend: 0.5,
		Extension:       ExtRepeat,
	}
}

// Sampler returns the sampler part of v. ProjectionBlend is carried as-is;
// callers decide whether it applies.
func (v Values) Sampler() shadergraph.Sampler {
	return shadergraph.Sampler{
		Interpolation:   v.Interpolation,
		Projection:      v.Projection,
		ProjectionBlend: v.ProjectionBlend,
		Extension:       v.Extension,
	}
}

// Validate checks every field of v.
func (v Values) Validate() error {
	for _, f := range Fields {
		if _, err := normalize(f, v.get(f)); err != nil {
			return err
		}
	}
	return nil
}

func (v Values) get(f Field) any {
	switch f {
	case FieldSearchMode:
		return v.SearchMode
	case FieldInterpolation:
		return v.Interpolation
	case FieldProjection:
		return v.Projection
	case FieldProjectionBlend:
		return v.ProjectionBlend
	case FieldExtension:
		return v.Extension
	}
	return nil
}

func (v *Values) set(f Field, val any) {
	switch f {
	case FieldSearchMode:
		v.SearchMode = val.(string)
	case FieldInterpolation:
		v.Interpolation = val.(string)
	case FieldProjection:
		v.Projection = val.(string)
	case FieldProjectionBlend:
		v.ProjectionBlend = val.(float64)
	case FieldExtension:
		v.Extension = val.(string)
	}
}

// Observer is called after a notifying assignment.
type Observer func(f Field, v Values)

// Tools is the mutable, observable tool-settings state.
type Tools struct {
	mu        sync.Mutex
	values    Values
	observers map[int]Observer
	nextID    int
}

// New creates tools with [Defaults].
func New() *Tools { return NewWith(Defaults()) }

// NewWith creates tools starting from v. Invalid fields in v fall back to
// their defaults.
func NewWith(v Values) *Tools {
	d := Defaults()
	for _, f := range Fields {
		if val, err := normalize(f, v.get(f)); err == nil {
			d.set(f, val)
		}
	}
	return &Tools{values: d, observers: make(map[int]Observer)}
}

// Values returns a snapshot of the current settings.
func (t *Tools) Values() Values {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.values
}

// SearchMode returns the current search mode.
func (t *Tools) SearchMode() string { return t.Values().SearchMode }

// Observe registers fn and returns a function that unregisters it.
// Observers run in registration order.
func (t *Tools) Observe(fn Observer) (cancel func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.observers[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.observers, id)
			t.mu.Unlock()
		})
	}
}

// Set validates and assigns value, then notifies observers.
func (t *Tools) Set(f Field, value any) error {
	v, err := t.assign(f, value)
	if err != nil {
		return err
	}
	for _, o := range t.snapshotObservers() {
		o(f, v)
	}
	return nil
}

// SetSilent validates and assigns value without notifying observers.
func (t *Tools) SetSilent(f Field, value any) error {
	_, err := t.assign(f, value)
	return err
}

// SetString parses s for f and calls [Tools.Set].
func (t *Tools) SetString(f Field, s string) error {
	if f == FieldProjectionBlend {
		x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "projection_blend must be a number")
		}
		return t.Set(f, x)
	}
	return t.Set(f, s)
}

func (t *Tools) assign(f Field, value any) (Values, error) {
	val, err := normalize(f, value)
	if err != nil {
		return Values{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values.set(f, val)
	return t.values, nil
}

func (t *Tools) snapshotObservers() []Observer {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]int, 0, len(t.observers))
	for id := range t.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Observer, len(ids))
	for i, id := range ids {
		out[i] = t.observers[id]
	}
	return out
}

// normalize validates value for f and returns it in canonical form. Enum
// values match case-insensitively.
func normalize(f Field, value any) (any, error) {
	if f == FieldProjectionBlend {
		var x float64
		switch n := value.(type) {
		case float64:
			x = n
		case float32:
			x = float64(n)
		case int:
			x = float64(n)
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "projection_blend: unsupported value %v", value)
		}
		if x < 0 || x > 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "projection_blend must be within [0, 1] (got %g)", x)
		}
		return x, nil
	}

	choices := Choices(f)
	if choices == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown setting %q", f)
	}
	s, ok := value.(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: expected a string, got %T", f, value)
	}
	for _, c := range choices {
		if strings.EqualFold(c, s) {
			return c, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not one of %s", f, s, strings.Join(choices, ", "))
}

// ParseField resolves a field name, accepting dashes for underscores.
func ParseField(s string) (Field, error) {
	f := Field(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if slices.Contains(Fields, f) {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown setting %q", s)
}

func (f Field) String() string { return string(f) }

// FromSampler returns the sampler values of s as settings assignments in
// field order. Empty strings are left out.
func FromSampler(s shadergraph.Sampler) []Assignment {
	var out []Assignment
	for _, a := range []Assignment{
		{FieldInterpolation, s.Interpolation},
		{FieldProjection, s.Projection},
		{FieldProjectionBlend, s.ProjectionBlend},
		{FieldExtension, s.Extension},
	} {
		if str, ok := a.Value.(string); ok && str == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Assignment is a field and a value.
type Assignment struct {
	Field Field
	Value any
}

func (a Assignment) String() string { return fmt.Sprintf("%s=%v", a.Field, a.Value) }
