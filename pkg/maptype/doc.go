// Package maptype classifies texture names into standard map roles.
//
// A texture "map type" is the channel a texture feeds (Diffuse, Normal,
// Roughness, ...). Map types are recognised by keywords: a name is split into
// segments on '.', '_', ' ' and '-', and each segment is looked up verbatim in
// a keyword [Table]. The first segment that matches, scanning left to right,
// decides the result. Matching is segment-exact, so the keyword "color" matches
// "wood_color_2k" but not "colorchecker".
//
// # Building a Table
//
// Tables are built from an ordered list of [Entry] values, typically read from
// user preferences. An empty list falls back to [DefaultEntries]:
//
//	table := maptype.BuildTable(prefs.Keywords)
//	info := table.Classify("Tex_BaseColor_01")
//	// info.MapType == "Diffuse", info.DataType == maptype.Color
//
// When two entries declare the same keyword, the entry processed later wins.
// Existing configurations may depend on that, so it is not reported.
//
// # Ordering
//
// [Rank] gives the fixed presentation order of the ten primary map types, and
// [Sort] orders any collection of named items by (rank, name). Items that do
// not classify, or classify to a type outside the priority list such as
// "Packed", sort after every ranked item.
//
// Tables are cheap to build and are meant to be rebuilt for every operation,
// since preferences may change between calls.
package maptype
