package wiring

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
)

type fakeNode struct {
	inputs, outputs map[string]bool
}

type fakeHost struct {
	nodes  map[string]*fakeNode
	linked map[string]bool            // "node:socket" inputs with a link
	images map[string]map[string]bool // template -> image node -> populated
	links  []string
	fail   map[string]bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		nodes:  map[string]*fakeNode{},
		linked: map[string]bool{},
		images: map[string]map[string]bool{},
		fail:   map[string]bool{},
	}
}

func (h *fakeHost) node(name string, inputs, outputs []string) {
	n := &fakeNode{inputs: map[string]bool{}, outputs: map[string]bool{}}
	for _, s := range inputs {
		n.inputs[s] = true
	}
	for _, s := range outputs {
		n.outputs[s] = true
	}
	h.nodes[name] = n
}

func (h *fakeHost) HasOutput(node, socket string) bool {
	n, ok := h.nodes[node]
	return ok && n.outputs[socket]
}

func (h *fakeHost) HasInput(node, socket string) bool {
	n, ok := h.nodes[node]
	return ok && n.inputs[socket]
}

func (h *fakeHost) IsLinked(node, socket string) bool { return h.linked[node+":"+socket] }

func (h *fakeHost) Link(fromNode, fromSocket, toNode, toSocket string) error {
	if h.fail[toNode+":"+toSocket] {
		return fmt.Errorf("refused")
	}
	h.linked[toNode+":"+toSocket] = true
	h.links = append(h.links, fromNode+":"+fromSocket+" -> "+toNode+":"+toSocket)
	return nil
}

func (h *fakeHost) InternalImage(template, node string) (bool, bool) {
	imgs, ok := h.images[template]
	if !ok {
		return false, false
	}
	populated, found := imgs[node]
	return found, populated
}

func mappingSockets() []string { return []string{"Vector", "Rotation Angle"} }

func bsdfSockets() []string {
	var s []string
	for _, r := range BSDFRules {
		s = append(s, r.Input)
	}
	return s
}

func loaderOutputs() []string {
	var s []string
	for _, r := range BSDFRules {
		s = append(s, r.Output)
	}
	return s
}

// fullHost builds a graph with Mapping, Loader and BSDF instances and a fully
// populated Loader template.
func fullHost() (*fakeHost, []Member) {
	h := newFakeHost()
	h.node("Mapping", nil, mappingSockets())
	h.node("Loader", mappingSockets(), loaderOutputs())
	h.node("BSDF", bsdfSockets(), []string{"BSDF"})
	imgs := map[string]bool{}
	for _, r := range BSDFRules {
		imgs[r.ImageNode] = true
	}
	h.images[LoaderPrefix] = imgs
	sel := []Member{
		{Name: "Mapping", Template: MappingPrefix, Group: true},
		{Name: "Loader", Template: LoaderPrefix, Group: true},
		{Name: "BSDF", Template: BSDFPrefix, Group: true},
	}
	return h, sel
}

func TestRoleOf(t *testing.T) {
	tests := []struct {
		template string
		want     Role
	}{
		{"K-Tools: Maps Loader", RoleLoader},
		{"K-Tools: Maps Loader.Wood.001", RoleLoader},
		{"K-Tools: BSDF", RoleBSDF},
		{"K-Tools: BSDF.002", RoleBSDF},
		{"K-Tools: Mapping", RoleMapping},
		{"K-Tools: Mapping Extra", RoleMapping},
		{"Custom Group", RoleUnrecognized},
		{"", RoleUnrecognized},
		{"k-tools: bsdf", RoleUnrecognized},
	}
	for _, tt := range tests {
		if got := RoleOf(tt.template); got != tt.want {
			t.Errorf("RoleOf(%q) = %v, want %v", tt.template, got, tt.want)
		}
	}
}

func TestIdentifyRoles_LaterWins(t *testing.T) {
	sel := []Member{
		{Name: "L1", Template: LoaderPrefix, Group: true},
		{Name: "L2", Template: LoaderPrefix + ".001", Group: true},
		{Name: "X", Template: "", Group: true},
	}
	r := IdentifyRoles(sel)
	if r.Loader == nil || r.Loader.Name != "L2" {
		t.Fatalf("Loader = %+v, want L2", r.Loader)
	}
	if r.Mapping != nil || r.BSDF != nil {
		t.Errorf("unexpected roles: %+v", r)
	}
}

func TestValidate(t *testing.T) {
	g := func(name string) Member { return Member{Name: name, Template: BSDFPrefix, Group: true} }
	tests := []struct {
		name string
		sel  []Member
		ok   bool
	}{
		{"one", []Member{g("a")}, false},
		{"two", []Member{g("a"), g("b")}, true},
		{"three", []Member{g("a"), g("b"), g("c")}, true},
		{"four", []Member{g("a"), g("b"), g("c"), g("d")}, false},
		{"non-group", []Member{g("a"), {Name: "img"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.sel)
			if tt.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodePreconditionNotMet) {
				t.Fatalf("Validate err = %v, want precondition", err)
			}
		})
	}
}

func TestResolve_FullChain(t *testing.T) {
	h, sel := fullHost()
	res, err := New(h).Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Mapping.Created != 2 {
		t.Errorf("Mapping.Created = %d, want 2", res.Mapping.Created)
	}
	if res.BSDF.Created != 10 {
		t.Errorf("BSDF.Created = %d, want 10", res.BSDF.Created)
	}
	want := "Created 12 link(s) (Mapped→Loader & Loader→BSDF)."
	if got := res.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
	if res.Warning() {
		t.Error("Warning() = true, want false")
	}
}

func TestResolve_Idempotent(t *testing.T) {
	h, sel := fullHost()
	r := New(h)
	if _, err := r.Resolve(context.Background(), sel); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	before := len(h.links)

	res, err := r.Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if res.Links() != 0 {
		t.Errorf("second Links() = %d, want 0", res.Links())
	}
	if len(h.links) != before {
		t.Errorf("links grew from %d to %d", before, len(h.links))
	}
	if got := res.Message(); got != "No new links needed or created." {
		t.Errorf("Message() = %q", got)
	}
	if got := res.Count(SkippedLinked); got != 12 {
		t.Errorf("Count(SkippedLinked) = %d, want 12", got)
	}
}

func TestResolve_NeverOverwrites(t *testing.T) {
	h, sel := fullHost()
	h.linked["BSDF:Base Color"] = true
	h.linked["Loader:Vector"] = true

	res, err := New(h).Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Links() != 10 {
		t.Errorf("Links() = %d, want 10", res.Links())
	}
	for _, l := range h.links {
		if l == "Loader:Base Color -> BSDF:Base Color" || l == "Mapping:Vector -> Loader:Vector" {
			t.Errorf("occupied input was relinked: %s", l)
		}
	}
}

func TestResolve_ImageGating(t *testing.T) {
	h, sel := fullHost()
	h.images[LoaderPrefix] = map[string]bool{
		"Diffuse":   true,
		"Roughness": true,
		"Normal":    false, // present, no image
	}

	res, err := New(h).Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.BSDF.Created != 2 {
		t.Fatalf("BSDF.Created = %d, want 2", res.BSDF.Created)
	}
	for _, d := range res.BSDF.Decisions {
		switch d.ImageNode {
		case "Diffuse", "Roughness":
			if d.Outcome != Created {
				t.Errorf("%s outcome = %v, want created", d.ImageNode, d.Outcome)
			}
		default:
			if d.Outcome != SkippedNoImage {
				t.Errorf("%s outcome = %v, want missing data", d.ImageNode, d.Outcome)
			}
		}
	}
	if got := res.Missing(); got != 8 {
		t.Errorf("Missing() = %d, want 8", got)
	}
}

func TestResolve_LoaderAndBSDFOnly(t *testing.T) {
	h, sel := fullHost()
	sel = sel[1:]

	res, err := New(h).Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Links() != 10 {
		t.Errorf("Links() = %d, want 10", res.Links())
	}
	if got := res.Categories(); !slices.Equal(got, []string{CategoryLoaderBSDF}) {
		t.Errorf("Categories() = %v", got)
	}
	if got := res.Message(); got != "Created 10 link(s) (Loader→BSDF)." {
		t.Errorf("Message() = %q", got)
	}
}

func TestResolve_MappingOnlyCategory(t *testing.T) {
	h, sel := fullHost()
	sel = sel[:2]

	res, err := New(h).Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := res.Categories(); !slices.Equal(got, []string{CategoryMappingLoader}) {
		t.Errorf("Categories() = %v", got)
	}
}

func TestResolve_MissingLoader(t *testing.T) {
	h, sel := fullHost()
	sel = []Member{sel[0], sel[2]}

	_, err := New(h).Resolve(context.Background(), sel)
	if !errors.Is(err, errors.ErrCodeMissingRole) {
		t.Fatalf("err = %v, want missing role", err)
	}
	if len(h.links) != 0 {
		t.Errorf("links created: %v", h.links)
	}
}

func TestResolve_TooManyNodes(t *testing.T) {
	h, sel := fullHost()
	sel = append(sel, Member{Name: "Other", Template: "Other", Group: true})

	_, err := New(h).Resolve(context.Background(), sel)
	if !errors.Is(err, errors.ErrCodePreconditionNotMet) {
		t.Fatalf("err = %v, want precondition", err)
	}
	if len(h.links) != 0 {
		t.Errorf("links created: %v", h.links)
	}
}

func TestResolve_NothingToConnect(t *testing.T) {
	h, _ := fullHost()
	sel := []Member{
		{Name: "Loader", Template: LoaderPrefix, Group: true},
		{Name: "Other", Template: "Some Group", Group: true},
	}
	res, err := New(h).Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Warning() {
		t.Error("Warning() = false, want true")
	}
	if got := res.Message(); got != "Select Loader and Mapping or BSDF node." {
		t.Errorf("Message() = %q", got)
	}
}

func TestResolve_MissingSockets(t *testing.T) {
	h, sel := fullHost()
	h.node("BSDF", []string{"Base Color"}, nil)

	res, err := New(h).Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.BSDF.Created != 1 {
		t.Errorf("BSDF.Created = %d, want 1", res.BSDF.Created)
	}
	if got := res.Count(SkippedMissing); got != 9 {
		t.Errorf("Count(SkippedMissing) = %d, want 9", got)
	}
}

func TestResolve_LinkFailureIsSkipped(t *testing.T) {
	h, sel := fullHost()
	h.fail["BSDF:Alpha"] = true

	res, err := New(h).Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.BSDF.Created != 9 {
		t.Errorf("BSDF.Created = %d, want 9", res.BSDF.Created)
	}
}

func TestWithRules(t *testing.T) {
	h, sel := fullHost()
	r := New(h,
		WithMappingRules([]MappingRule{{Output: "Vector", Input: "Vector"}}),
		WithBSDFRules(nil),
		WithLogger(nil),
	)
	res, err := r.Resolve(context.Background(), sel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Links() != 1 {
		t.Errorf("Links() = %d, want 1", res.Links())
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{Created, "created"},
		{SkippedLinked, "skipped-already-linked"},
		{SkippedMissing, "skipped-missing-socket"},
		{SkippedNoImage, "skipped-missing-data"},
		{Outcome(42), "outcome(42)"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(tt.o), got, tt.want)
		}
	}
}
