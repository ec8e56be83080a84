// Package sink writes boards to output formats.
//
//   - [RenderSVG]: the live board, plates in paint order with an optional
//     edit overlay
//   - [RenderPrintHTML] and [RenderPrintSVG]: the A4 landscape print sheet
//   - [ToDOT] and [RenderDOT]: the board as a pinned Graphviz graph
//
// Sinks only read cards; they never change them.
package sink
