package wiring

import "strings"

// Template name prefixes of the bundled node groups. Copies made by the host
// keep the prefix ("K-Tools: Maps Loader.Wood.001").
const (
	LoaderPrefix  = "K-Tools: Maps Loader"
	BSDFPrefix    = "K-Tools: BSDF"
	MappingPrefix = "K-Tools: Mapping"
)

// Role is the part a group instance plays in the wiring.
type Role int

const (
	RoleUnrecognized Role = iota
	RoleMapping
	RoleLoader
	RoleBSDF
)

func (r Role) String() string {
	switch r {
	case RoleMapping:
		return "mapping"
	case RoleLoader:
		return "loader"
	case RoleBSDF:
		return "bsdf"
	}
	return "unrecognized"
}

// RoleOf classifies a template name. The Loader prefix is checked first,
// then BSDF, then Mapping.
func RoleOf(template string) Role {
	switch {
	case strings.HasPrefix(template, LoaderPrefix):
		return RoleLoader
	case strings.HasPrefix(template, BSDFPrefix):
		return RoleBSDF
	case strings.HasPrefix(template, MappingPrefix):
		return RoleMapping
	}
	return RoleUnrecognized
}

// Member is one selected node as the resolver sees it.
type Member struct {
	Name     string // node name in the tree being wired
	Template string // name of the group template, empty if none is assigned
	Group    bool   // whether the node is a group instance
}

// Roles holds the role assignment of a selection. A nil field means no
// selected node took that role.
type Roles struct {
	Mapping *Member
	Loader  *Member
	BSDF    *Member
}

// IdentifyRoles assigns roles to the selection in order. A node contributes
// to at most one role; members without a template are ignored. If two
// members match the same role, the later one wins.
func IdentifyRoles(sel []Member) Roles {
	var r Roles
	for _, m := range sel {
		if m.Template == "" {
			continue
		}
		switch RoleOf(m.Template) {
		case RoleLoader:
			r.Loader = &m
		case RoleBSDF:
			r.BSDF = &m
		case RoleMapping:
			r.Mapping = &m
		}
	}
	return r
}
