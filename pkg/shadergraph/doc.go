// Package shadergraph is an in-memory model of a host application's shader
// node editor: node trees, nodes with named sockets, links, images, node-group
// templates and the editor state that selects what an operator works on.
//
// The package covers only the surface the texture tools read and write. A
// [Tree] holds nodes by unique name and links between their sockets; an input
// socket carries at most one link, and linking an occupied input replaces the
// previous link just as the host does. Group nodes refer to a template tree
// stored in a [Library] by name, so every instance of a group shares one
// internal graph.
//
// # Example
//
//	tree := shadergraph.NewTree("Material")
//	tree.AddNode(shadergraph.Node{Name: "Image Texture", Type: shadergraph.TypeImage,
//	    Outputs: shadergraph.Sockets("Color", "Alpha")})
//	tree.AddNode(shadergraph.Node{Name: "BSDF", Type: shadergraph.TypeBSDF,
//	    Inputs: shadergraph.Sockets("Base Color")})
//	err := tree.Link("Image Texture", "Color", "BSDF", "Base Color")
//
// [Host] adapts a tree and its library to the narrow read/write surface the
// wiring resolver depends on.
//
// Nothing in this package is safe for concurrent use; the host serialises
// command execution.
package shadergraph
