package shadergraph

// Host exposes a tree and its group library through the narrow read/write
// surface used by the wiring resolver.
type Host struct {
	Tree   *Tree
	Groups *Library
}

// HasOutput reports whether node has the named output socket.
func (h Host) HasOutput(node, socket string) bool { return h.Tree.HasOutput(node, socket) }

// HasInput reports whether node has the named input socket.
func (h Host) HasInput(node, socket string) bool { return h.Tree.HasInput(node, socket) }

// IsLinked reports whether the named input of node is connected.
func (h Host) IsLinked(node, socket string) bool { return h.Tree.IsLinked(node, socket) }

// Link creates a link in the tree.
func (h Host) Link(fromNode, fromSocket, toNode, toSocket string) error {
	return h.Tree.Link(fromNode, fromSocket, toNode, toSocket)
}

// InternalImage looks inside the group template called template for a node
// called node. found reports whether the node exists, populated whether it
// carries image data.
func (h Host) InternalImage(template, node string) (found, populated bool) {
	if h.Groups == nil {
		return false, false
	}
	t, ok := h.Groups.Get(template)
	if !ok {
		return false, false
	}
	n, ok := t.Node(node)
	if !ok {
		return false, false
	}
	return true, n.HasImage()
}
