// Package render turns boards into static artifacts.
//
// # Overview
//
//   - Board SVG, print sheets and Graphviz output (in [sink])
//   - Plate appearance (in [styles])
//   - Format conversion, SVG to PDF/PNG (this package)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// from librsvg. When it is missing they return an UNSUPPORTED error with
// install instructions; [Available] checks ahead of time.
//
//	svg := sink.RenderSVG(cards, 1280, 800, sink.WithStyle(styles.Paper{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Graphviz
//
// [sink.ToDOT] writes the board as a neato graph with every plate pinned
// at its card position, and [sink.RenderDOT] lays it out with the
// WebAssembly build of Graphviz, so no system install is needed.
//
// [sink]: github.com/matzehuels/nameplate/pkg/render/sink
// [styles]: github.com/matzehuels/nameplate/pkg/render/styles
// [sink.ToDOT]: github.com/matzehuels/nameplate/pkg/render/sink.ToDOT
// [sink.RenderDOT]: github.com/matzehuels/nameplate/pkg/render/sink.RenderDOT
package render
