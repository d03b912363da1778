// Package sink writes rendered charts and slides to their output formats.
//
// Rasters leave as PNG bytes or a PNG data URI, the form a chart takes on
// its way into a drawing surface. Chart layouts can also be written as SVG,
// and slide rasters are assembled into a paginated PDF with one landscape
// page per slide.
package sink
