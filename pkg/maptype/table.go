package maptype

import (
	"path/filepath"
	"strings"
)

// Table maps a lowercase keyword token to its classification.
type Table map[string]Info

// BuildTable builds a keyword table from entries.
//
// Entries are processed in order and a later entry overwrites an earlier one
// for the same token. Entries whose data type is not exactly Color or Utility
// are treated as Utility; case is normalised when preferences are decoded,
// not here. If entries is empty the built-in defaults are used instead.
func BuildTable(entries []Entry) Table {
	if len(entries) == 0 {
		return defaultTable()
	}
	t := make(Table)
	for _, e := range entries {
		dt := e.DataType
		if !dt.Valid() {
			dt = Utility
		}
		for _, tok := range e.Tokens() {
			t[tok] = Info{MapType: e.MapType, DataType: dt}
		}
	}
	return t
}

func defaultTable() Table {
	t := make(Table)
	for _, d := range defaults {
		for _, k := range d.keywords {
			t[strings.ToLower(strings.TrimSpace(k))] = Info{MapType: d.mapType, DataType: d.dataType}
		}
	}
	return t
}

// Segments lowercases name and splits it on runs of '.', '_', ' ' and '-'.
// Empty segments are dropped.
func Segments(name string) []string {
	return strings.FieldsFunc(strings.ToLower(name), isDelimiter)
}

func isDelimiter(r rune) bool {
	switch r {
	case '.', '_', ' ', '-':
		return true
	}
	return false
}

// Classify returns the classification of the first segment of name present
// in the table, or Unknown if none is.
func (t Table) Classify(name string) Info {
	for _, seg := range Segments(name) {
		if info, ok := t[seg]; ok {
			return info
		}
	}
	return Unknown
}

// ClassifyFile classifies a texture file name. Directory components and the
// final extension are removed first, so "wood_normal.png" is classified as
// "wood_normal". A leading dot does not start an extension.
func (t Table) ClassifyFile(filename string) Info {
	return t.Classify(StripExt(filepath.Base(filename)))
}

// ClassifySubject classifies s by its display name.
func (t Table) ClassifySubject(s Subject) Info {
	return t.Classify(s.Display())
}

// StripExt removes the final extension from a base file name. Leading dots
// are part of the name: StripExt(".hidden") is ".hidden" and
// StripExt("a.b.png") is "a.b".
func StripExt(base string) string {
	lead := len(base) - len(strings.TrimLeft(base, "."))
	if i := strings.LastIndexByte(base[lead:], '.'); i >= 0 {
		return base[:lead+i]
	}
	return base
}

// Keywords returns the table's tokens. The order is not defined.
func (t Table) Keywords() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	return keys
}
