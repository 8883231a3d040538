package maptype

import "strings"

// DataType is the colour-space category of a texture map.
type DataType string

const (
	// Color marks perceptual data (albedo, emission) stored in sRGB-like spaces.
	Color DataType = "COLOR"
	// Utility marks linear, non-colour data (normal, roughness, masks).
	Utility DataType = "UTILITY"
)

// ParseDataType converts s to a DataType. Matching ignores case and
// surrounding whitespace. Anything unrecognised, including the empty string,
// yields Utility.
func ParseDataType(s string) DataType {
	if strings.EqualFold(strings.TrimSpace(s), string(Color)) {
		return Color
	}
	return Utility
}

// Valid reports whether d is one of the known data types.
func (d DataType) Valid() bool { return d == Color || d == Utility }

// UnknownMapType is the map type reported when no keyword matches.
const UnknownMapType = "Unknown"

// Info is the result of classifying a name.
type Info struct {
	MapType  string
	DataType DataType
}

// Unknown is the sentinel classification for names that match no keyword.
var Unknown = Info{MapType: UnknownMapType, DataType: Utility}

// IsUnknown reports whether i is the no-match sentinel.
func (i Info) IsUnknown() bool { return i.MapType == UnknownMapType }

// Entry is one configured keyword rule.
//
// Keywords is a comma-separated list as it appears in preferences, for
// example "diff, albedo, basecolor". Several entries may share a MapType.
type Entry struct {
	MapType  string   `toml:"map_type" yaml:"map_type" json:"map_type"`
	Keywords string   `toml:"keywords" yaml:"keywords" json:"keywords"`
	DataType DataType `toml:"data_type" yaml:"data_type" json:"data_type"`
}

// Tokens splits Keywords on commas and returns the trimmed, lowercased,
// non-empty tokens in their original order.
func (e Entry) Tokens() []string {
	var tokens []string
	for _, k := range strings.Split(e.Keywords, ",") {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			tokens = append(tokens, k)
		}
	}
	return tokens
}

type defaultEntry struct {
	mapType  string
	keywords []string
	dataType DataType
}

// defaults holds the built-in naming conventions. Some tokens carry a leading
// underscore; they are kept as shipped even though '_' is a delimiter and such
// tokens can never match a segment.
var defaults = []defaultEntry{
	{"Diffuse", []string{"diff", "albedo", "basecolor", "color", "_ALB", "diffuse"}, Color},
	{"Metalness", []string{"metalness", "Metallic", "metallic", "_MET"}, Utility},
	{"Roughness", []string{"rough", "gloss", "Roughness", "_Rgh", "glossiness"}, Utility},
	{"Alpha", []string{"alpha", "opacity", "mask", "alphamask", "opacitymask"}, Utility},
	{"Normal", []string{"normal", "nrm", "Normal", "NormlGL", "NormalDX", "_NOR"}, Utility},
	{"Displacement", []string{"disp", "height", "Displacement"}, Utility},
	{"Transmission", []string{"transmission", "transmissive", "refraction"}, Utility},
	{"AmbientOcclusion", []string{"AmbientOcclusion", "ao"}, Utility},
	{"Emission", []string{"emission", "emissive", "emit"}, Color},
	{"Subsurface", []string{"scatter", "sss", "subsurface"}, Color},
	{"Packed", []string{"ORM", "ARM"}, Utility},
}

// DefaultEntries returns the built-in keyword rules, one per map type, with
// keywords joined by ", " as they are written to fresh preferences.
func DefaultEntries() []Entry {
	entries := make([]Entry, len(defaults))
	for i, d := range defaults {
		entries[i] = Entry{
			MapType:  d.mapType,
			Keywords: strings.Join(d.keywords, ", "),
			DataType: d.dataType,
		}
	}
	return entries
}

// DefaultMapTypes returns the names of the built-in map types in order.
func DefaultMapTypes() []string {
	names := make([]string, len(defaults))
	for i, d := range defaults {
		names[i] = d.mapType
	}
	return names
}
