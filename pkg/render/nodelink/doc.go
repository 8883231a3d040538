// Package nodelink renders node trees as node-link diagrams.
//
// # Overview
//
// A tree is drawn left to right the way a node editor lays it out: sources
// on the left, the shader output on the right. Image nodes show the image
// they hold, group nodes the template they instance, and every link is
// labelled with the sockets it joins.
//
// # Usage
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - Detailed: add the sampler settings of image nodes to their labels.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
