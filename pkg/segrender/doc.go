// Package segrender paints laid-out segments: a rounded, filled region with
// a white separating stroke and a centered two-tier label (wrapped name
// above the quantity) sized to the region.
//
// All resolution dependence lives in [Profile]. The same [Renderer] draws
// the live preview with [PreviewProfile] and the export raster with
// [ExportProfile], so both stay visually consistent.
//
// Label geometry is exposed through [Renderer.Label] so vector sinks can
// reproduce exactly what the raster path draws.
package segrender
