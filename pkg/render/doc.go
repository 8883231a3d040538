// Package render converts rendered node-tree diagrams between output
// formats.
//
// Diagrams are produced as SVG by [nodelink]. [ToPDF] and [ToPNG] convert
// such SVG with the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(nodelink.ToDOT(tree, nodelink.Options{}))
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [Format] maps an output path's extension to the format to produce.
//
// [nodelink]: github.com/r-kez/k-tools-texture-map-loader/pkg/render/nodelink
package render
