package wiring

import (
	"fmt"
	"strings"
)

// Categories reported for the phases that created links.
const (
	CategoryMappingLoader = "Mapped→Loader"
	CategoryLoaderBSDF    = "Loader→BSDF"
)

// Outcome is the decision taken for one socket pairing.
//
// SkippedMissing and SkippedNoImage together form a single "missing socket
// or data" category; callers that only distinguish created, already linked
// and missing should sum the two.
type Outcome int

const (
	// Created means a new link was made.
	Created Outcome = iota
	// SkippedLinked means the destination input was already connected.
	SkippedLinked
	// SkippedMissing means a socket was absent.
	SkippedMissing
	// SkippedNoImage means the gating internal image node was absent or
	// empty. It is a refinement of SkippedMissing ("missing data").
	SkippedNoImage
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case SkippedLinked:
		return "skipped-already-linked"
	case SkippedMissing:
		return "skipped-missing-socket"
	case SkippedNoImage:
		return "skipped-missing-data"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Decision records what happened to one rule.
type Decision struct {
	From, FromSocket string
	To, ToSocket     string
	ImageNode        string // gating image node, Loader to BSDF only
	Outcome          Outcome
}

func (d Decision) fromEndpoint() string { return d.From + ":" + d.FromSocket }
func (d Decision) toEndpoint() string   { return d.To + ":" + d.ToSocket }

// Phase is the outcome of one connection phase.
type Phase struct {
	Name      string
	Created   int
	Decisions []Decision
}

// Result summarises a Resolve call.
type Result struct {
	Roles   Roles
	Mapping Phase
	BSDF    Phase
}

// Links returns the total number of links created.
func (r *Result) Links() int { return r.Mapping.Created + r.BSDF.Created }

// Categories returns the phases that created at least one link, in phase
// order.
func (r *Result) Categories() []string {
	var cats []string
	if r.Mapping.Created > 0 {
		cats = append(cats, CategoryMappingLoader)
	}
	if r.BSDF.Created > 0 {
		cats = append(cats, CategoryLoaderBSDF)
	}
	return cats
}

// NothingToConnect reports whether only the Loader role was found.
func (r *Result) NothingToConnect() bool {
	return r.Roles.Mapping == nil && r.Roles.BSDF == nil
}

// Message returns the single user-facing summary line.
func (r *Result) Message() string {
	switch {
	case r.Links() > 0:
		return fmt.Sprintf("Created %d link(s) (%s).", r.Links(), strings.Join(r.Categories(), " & "))
	case r.NothingToConnect():
		return "Select Loader and Mapping or BSDF node."
	default:
		return "No new links needed or created."
	}
}

// Warning reports whether the summary should be shown as a warning.
func (r *Result) Warning() bool { return r.Links() == 0 && r.NothingToConnect() }

// Missing returns how many pairings were skipped for a missing socket or
// missing image data.
func (r *Result) Missing() int { return r.Count(SkippedMissing) + r.Count(SkippedNoImage) }

// Count returns how many decisions across both phases had outcome o.
func (r *Result) Count(o Outcome) int {
	n := 0
	for _, p := range []Phase{r.Mapping, r.BSDF} {
		for _, d := range p.Decisions {
			if d.Outcome == o {
				n++
			}
		}
	}
	return n
}
