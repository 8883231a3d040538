package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/render"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds sampler settings to image node labels.
	Detailed bool
}

var fillColors = map[shadergraph.NodeType]string{
	shadergraph.TypeImage:       "#fde7c8",
	shadergraph.TypeGroup:       "#d5e8d4",
	shadergraph.TypeBSDF:        "#dae8fc",
	shadergraph.TypeGroupInput:  "lightgrey",
	shadergraph.TypeGroupOutput: "lightgrey",
}

// ToDOT converts a tree to Graphviz DOT source.
func ToDOT(t *shadergraph.Tree, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", t.Name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range t.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, l := range t.Links() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.FromNode, l.ToNode, l.FromSocket+" → "+l.ToSocket)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *shadergraph.Node, detailed bool) string {
	lines := []string{n.DisplayName()}
	switch {
	case n.IsGroup() && n.Group != "":
		lines = append(lines, "["+n.Group+"]")
	case n.IsImage():
		if n.HasImage() {
			lines = append(lines, n.Image.Name)
			if n.Image.ColorSpace != "" {
				lines = append(lines, n.Image.ColorSpace)
			}
		} else {
			lines = append(lines, "(no image)")
		}
		if detailed {
			s := n.Sampler
			for _, v := range []string{s.Interpolation, s.Projection, s.Extension} {
				if v != "" {
					lines = append(lines, v)
				}
			}
			if s.Projection == "BOX" {
				lines = append(lines, fmt.Sprintf("blend %.2f", s.ProjectionBlend))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(n *shadergraph.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if c, ok := fillColors[n.Type]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	}
	if n.IsImage() && !n.HasImage() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	if n.Selected {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// Render produces the diagram in the given format (see [render.Format]).
// PDF and PNG need rsvg-convert.
func Render(t *shadergraph.Tree, format string, opts Options) ([]byte, error) {
	dot := ToDOT(t, opts)
	if format == render.FormatDOT {
		return []byte(dot), nil
	}
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case render.FormatPDF:
		return render.ToPDF(svg)
	case render.FormatPNG:
		return render.ToPNG(svg, 2.0)
	}
	return svg, nil
}
