// Package nodelink renders dependency graphs as node-link diagrams.
//
// # Overview
//
// Projects and their dependencies are drawn with Graphviz as boxes
// connected by arrows, the project on top. packman writes these next to
// each BDIO document when graph output is enabled.
//
// # Usage
//
// Convert a project graph to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels carry the version on a second line
//
// # Formats
//
// [Formats] lists the accepted output formats; [Render] produces either.
// DOT output needs nothing beyond this package. SVG output runs Graphviz
// through github.com/goccy/go-graphviz, which embeds it as WebAssembly, so
// no system installation is required.
package nodelink
