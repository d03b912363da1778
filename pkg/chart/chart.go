package chart

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/surface"
)

// Chart is an insertable chart.
type Chart interface {
	Kind() Kind

	// Draw paints the chart onto dc, which is res.Width×res.Height.
	Draw(dc *gg.Context, res Resolution)

	// Payload is the structured data the chart was drawn from. It is
	// attached to the inserted object and read back by Restore.
	Payload() ([]byte, error)

	// Placement is the position and scale of a fresh export raster on a
	// canvasW×canvasH surface.
	Placement(canvasW, canvasH float64) surface.Placement
}

// Annotator is implemented by charts that place additional objects next to
// their image. Annotations replace same-named objects on every insert.
type Annotator interface {
	Annotations() []*surface.Object
}

// RenderAt draws c onto a fresh transparent canvas of res's size.
func RenderAt(c Chart, res Resolution) image.Image {
	dc := gg.NewContext(res.Width, res.Height)
	c.Draw(dc, res)
	return dc.Image()
}

// Preview renders c at its preview resolution.
func Preview(c Chart) image.Image { return RenderAt(c, PreviewResolution(c.Kind())) }

// Export renders c at its export resolution.
func Export(c Chart) image.Image { return RenderAt(c, ExportResolution(c.Kind())) }
