package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/packman/pkg/deps"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Formats lists the supported output formats.
var Formats = []string{FormatDOT, FormatSVG}

// ValidFormat reports whether f is one of [Formats].
func ValidFormat(f string) bool {
	return f == FormatDOT || f == FormatSVG
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed puts the version under the package name.
	// When false, only the name is shown.
	Detailed bool
}

// ToDOT converts the graph below root to Graphviz DOT. Nodes are emitted
// once each, in depth-first pre-order; the root gets a bold outline.
func ToDOT(root *deps.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	seen := make(map[[2]string]bool)
	declared := make(map[string]bool)
	deps.Walk(root, func(n *deps.Node, depth int) bool {
		id := nodeID(n)
		if !declared[id] {
			declared[id] = true
			attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
			if depth == 0 {
				attrs = append(attrs, "penwidth=3")
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
		}
		for _, c := range n.Children {
			edge := [2]string{id, nodeID(c)}
			if !seen[edge] {
				seen[edge] = true
				edges = append(edges, fmt.Sprintf("  %q -> %q;\n", edge[0], edge[1]))
			}
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// nodeID identifies a package by name and version, so two nodes for the
// same release are drawn as one box.
func nodeID(n *deps.Node) string {
	if n.Version == "" {
		return n.Name
	}
	return n.Name + "@" + n.Version
}

func fmtLabel(n *deps.Node, detailed bool) string {
	if !detailed || n.Version == "" {
		return n.Name
	}
	return n.Name + "\n" + n.Version
}

// Render returns the graph below root in the given format.
func Render(ctx context.Context, root *deps.Node, format string, opts Options) ([]byte, error) {
	dot := ToDOT(root, opts)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported graph format %q", format)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

// normalizeViewBox replaces the root svg tag so the drawing scales from a
// zero origin.
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
