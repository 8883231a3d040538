package shadergraph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeName is returned by [Tree.AddNode] when the name is empty.
	ErrInvalidNodeName = errors.New("node name must not be empty")

	// ErrDuplicateNode is returned by [Tree.AddNode] when a node with the same
	// name already exists in the tree.
	ErrDuplicateNode = errors.New("duplicate node name")

	// ErrUnknownNode is returned when a node name does not resolve.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownSocket is returned by [Tree.Link] when a node has no socket
	// with the requested name on the requested side.
	ErrUnknownSocket = errors.New("unknown socket")
)

// NodeType identifies the kind of a node.
type NodeType string

const (
	TypeImage       NodeType = "TEX_IMAGE"
	TypeGroup       NodeType = "GROUP"
	TypeBSDF        NodeType = "BSDF_PRINCIPLED"
	TypeGroupInput  NodeType = "GROUP_INPUT"
	TypeGroupOutput NodeType = "GROUP_OUTPUT"
	TypeOther       NodeType = "OTHER"
)

// Socket is a named connection point on a node.
type Socket struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Sockets builds untyped sockets from names.
func Sockets(names ...string) []Socket {
	s := make([]Socket, len(names))
	for i, n := range names {
		s[i] = Socket{Name: n}
	}
	return s
}

// Sampler holds the sampling and projection settings of an image node.
type Sampler struct {
	Interpolation   string  `json:"interpolation,omitempty"`
	Projection      string  `json:"projection,omitempty"`
	ProjectionBlend float64 `json:"projection_blend,omitempty"`
	Extension       string  `json:"extension,omitempty"`
}

// Node is a vertex of a node tree.
//
// Name is unique within its tree. Label is an optional display text. Group
// names the template tree of a GROUP node. Image and Sampler are only
// meaningful for TEX_IMAGE nodes.
type Node struct {
	Name     string
	Label    string
	Type     NodeType
	Inputs   []Socket
	Outputs  []Socket
	Group    string
	Image    *Image
	Sampler  Sampler
	Location Vec2
	Selected bool
}

// DisplayName returns the label if set, otherwise the name.
func (n *Node) DisplayName() string {
	if n.Label != "" {
		return n.Label
	}
	return n.Name
}

// IsGroup reports whether n is a group instance.
func (n *Node) IsGroup() bool { return n.Type == TypeGroup }

// IsImage reports whether n is an image texture node.
func (n *Node) IsImage() bool { return n.Type == TypeImage }

// HasImage reports whether n holds image data.
func (n *Node) HasImage() bool { return n.Image != nil }

// Input returns the first input socket called name.
func (n *Node) Input(name string) (Socket, bool) { return findSocket(n.Inputs, name) }

// Output returns the first output socket called name.
func (n *Node) Output(name string) (Socket, bool) { return findSocket(n.Outputs, name) }

func findSocket(sockets []Socket, name string) (Socket, bool) {
	for _, s := range sockets {
		if s.Name == name {
			return s, true
		}
	}
	return Socket{}, false
}

func (n *Node) clone() *Node {
	c := *n
	c.Inputs = slices.Clone(n.Inputs)
	c.Outputs = slices.Clone(n.Outputs)
	if n.Image != nil {
		img := *n.Image
		c.Image = &img
	}
	return &c
}

// Link is a directed connection from an output socket to an input socket.
type Link struct {
	FromNode   string `json:"from_node"`
	FromSocket string `json:"from_socket"`
	ToNode     string `json:"to_node"`
	ToSocket   string `json:"to_socket"`
}

// String formats the link as "node:socket -> node:socket".
func (l Link) String() string {
	return fmt.Sprintf("%s:%s -> %s:%s", l.FromNode, l.FromSocket, l.ToNode, l.ToSocket)
}

type endpoint struct{ node, socket string }

// Tree is a node tree: a material's shader graph or a group template.
//
// The zero value is not usable; use NewTree.
type Tree struct {
	Name string
	// Linked marks a tree that comes from an external library file and is
	// read-only in the host.
	Linked bool

	nodes  map[string]*Node
	order  []*Node
	links  []Link
	inputs map[endpoint]int // destination -> index into links
	active string
}

// NewTree creates an empty tree.
func NewTree(name string) *Tree {
	return &Tree{
		Name:   name,
		nodes:  make(map[string]*Node),
		inputs: make(map[endpoint]int),
	}
}

// AddNode adds a copy of n and returns a pointer to the stored node.
// Returns ErrInvalidNodeName for an empty name and ErrDuplicateNode if the
// name is taken.
func (t *Tree) AddNode(n Node) (*Node, error) {
	if n.Name == "" {
		return nil, ErrInvalidNodeName
	}
	if _, exists := t.nodes[n.Name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.Name)
	}
	node := n.clone()
	t.nodes[node.Name] = node
	t.order = append(t.order, node)
	return node, nil
}

// UniqueNodeName returns base if no node uses it, otherwise base followed by
// the first free ".NNN" suffix.
func (t *Tree) UniqueNodeName(base string) string {
	if _, taken := t.nodes[base]; !taken {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%03d", base, i)
		if _, taken := t.nodes[name]; !taken {
			return name
		}
	}
}

// Node returns the node called name.
func (t *Tree) Node(name string) (*Node, bool) {
	n, ok := t.nodes[name]
	return n, ok
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// stored nodes.
func (t *Tree) Nodes() []*Node { return slices.Clone(t.order) }

// NodeCount returns the number of nodes.
func (t *Tree) NodeCount() int { return len(t.order) }

// ImageNodes returns the TEX_IMAGE nodes in insertion order.
func (t *Tree) ImageNodes() []*Node {
	var out []*Node
	for _, n := range t.order {
		if n.IsImage() {
			out = append(out, n)
		}
	}
	return out
}

// HasInput reports whether node has an input socket called socket.
func (t *Tree) HasInput(node, socket string) bool {
	n, ok := t.nodes[node]
	if !ok {
		return false
	}
	_, ok = n.Input(socket)
	return ok
}

// HasOutput reports whether node has an output socket called socket.
func (t *Tree) HasOutput(node, socket string) bool {
	n, ok := t.nodes[node]
	if !ok {
		return false
	}
	_, ok = n.Output(socket)
	return ok
}

// Link connects an output socket to an input socket. An existing link into
// the same input is replaced. Unknown nodes or sockets are errors.
func (t *Tree) Link(fromNode, fromSocket, toNode, toSocket string) error {
	src, ok := t.nodes[fromNode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, fromNode)
	}
	dst, ok := t.nodes[toNode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, toNode)
	}
	if _, ok := src.Output(fromSocket); !ok {
		return fmt.Errorf("%w: output %q on %q", ErrUnknownSocket, fromSocket, fromNode)
	}
	if _, ok := dst.Input(toSocket); !ok {
		return fmt.Errorf("%w: input %q on %q", ErrUnknownSocket, toSocket, toNode)
	}

	l := Link{FromNode: fromNode, FromSocket: fromSocket, ToNode: toNode, ToSocket: toSocket}
	key := endpoint{toNode, toSocket}
	if i, linked := t.inputs[key]; linked {
		t.links[i] = l
		return nil
	}
	t.inputs[key] = len(t.links)
	t.links = append(t.links, l)
	return nil
}

// IsLinked reports whether the input socket of node has an incoming link.
func (t *Tree) IsLinked(node, input string) bool {
	_, ok := t.inputs[endpoint{node, input}]
	return ok
}

// LinkInto returns the link feeding the given input.
func (t *Tree) LinkInto(node, input string) (Link, bool) {
	i, ok := t.inputs[endpoint{node, input}]
	if !ok {
		return Link{}, false
	}
	return t.links[i], true
}

// Links returns a copy of all links in creation order.
func (t *Tree) Links() []Link { return slices.Clone(t.links) }

// LinkCount returns the number of links.
func (t *Tree) LinkCount() int { return len(t.links) }

// Selected returns the selected nodes in insertion order.
func (t *Tree) Selected() []*Node {
	var out []*Node
	for _, n := range t.order {
		if n.Selected {
			out = append(out, n)
		}
	}
	return out
}

// Select marks the named nodes as selected. Unknown names are errors and
// leave the selection unchanged.
func (t *Tree) Select(names ...string) error {
	for _, name := range names {
		if _, ok := t.nodes[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownNode, name)
		}
	}
	for _, name := range names {
		t.nodes[name].Selected = true
	}
	return nil
}

// DeselectAll clears the selection.
func (t *Tree) DeselectAll() {
	for _, n := range t.order {
		n.Selected = false
	}
}

// Active returns the active node, if any.
func (t *Tree) Active() (*Node, bool) {
	if t.active == "" {
		return nil, false
	}
	n, ok := t.nodes[t.active]
	return n, ok
}

// SetActive makes the named node active. An empty name clears it.
func (t *Tree) SetActive(name string) error {
	if name == "" {
		t.active = ""
		return nil
	}
	if _, ok := t.nodes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	t.active = name
	return nil
}

// Clone returns a deep copy of t under a new name. The copy is local.
func (t *Tree) Clone(name string) *Tree {
	c := NewTree(name)
	for _, n := range t.order {
		node := n.clone()
		c.nodes[node.Name] = node
		c.order = append(c.order, node)
	}
	c.links = slices.Clone(t.links)
	for k, v := range t.inputs {
		c.inputs[k] = v
	}
	c.active = t.active
	return c
}

// Interface returns a group template's sockets as seen from an instance:
// the outputs of its GROUP_INPUT node become instance inputs, the inputs of
// its GROUP_OUTPUT node become instance outputs.
func (t *Tree) Interface() (inputs, outputs []Socket) {
	for _, n := range t.order {
		switch n.Type {
		case TypeGroupInput:
			inputs = append(inputs, n.Outputs...)
		case TypeGroupOutput:
			outputs = append(outputs, n.Inputs...)
		}
	}
	return slices.Clone(inputs), slices.Clone(outputs)
}
