// Package chart composes the two insertable charts of a filmina and puts
// them on a drawing surface.
//
// # Charts
//
// A [Chart] draws itself at any [Resolution]. The same drawing code runs
// for the live preview and for the export raster; only the resolution's
// parameter set differs (canvas size, segment renderer profile, header
// geometry). Two kinds exist:
//
//   - [Microsegmentation]: the hardness board. Party segments are laid out
//     in grouped columns on the left 55% and population segments fill a
//     fixed template on the right 45%, separated by a dashed divider.
//   - [Profile]: positive and negative bullet columns with icon headers
//     and a dated footnote, plus two text annotations placed next to it.
//
// # Insertion
//
// [Compositor.Insert] renders the export raster, encodes it, and waits for
// the asynchronous decode before it touches the surface. Inserting a kind
// that is already on the surface replaces it in place. The chart's data
// travels with the inserted object as its payload, and [Restore] turns it
// back into an editable chart.
//
// [Session] wraps this in the open, preview, cancel or insert lifecycle of
// an editing dialog.
package chart
