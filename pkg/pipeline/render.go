package pipeline

import (
	"bytes"
	"image"

	"github.com/matzehuels/filmina/pkg/chart"
	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/segrender"
	"github.com/matzehuels/filmina/pkg/sink"
	"github.com/matzehuels/filmina/pkg/slides"
)

// =============================================================================
// Chart Rendering
// =============================================================================

// RenderChart encodes ch in each of opts.Formats at opts.Resolution().
func RenderChart(ch chart.Chart, opts Options) (map[string][]byte, error) {
	res := opts.Resolution()
	artifacts := make(map[string][]byte, len(opts.Formats))

	// Rasterize once for every format that needs pixels.
	var img image.Image
	raster := func() image.Image {
		if img == nil {
			img = chart.RenderAt(ch, res)
		}
		return img
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatPNG:
			data, err = sink.PNG(raster())
		case FormatSVG:
			data, err = renderSVG(ch, res)
		case FormatJSON:
			var doc LayoutDoc
			if doc, err = ComputeLayout(ch, res); err == nil {
				data, err = MarshalLayout(doc)
			}
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported chart format: %s", format)
		}
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(ch chart.Chart, res chart.Resolution) ([]byte, error) {
	m, ok := ch.(*chart.Microsegmentation)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "svg output is not available for the %s chart", ch.Kind().Short())
	}
	src := m.Fonts
	if src == nil {
		src = fonts.Embedded{}
	}
	var buf bytes.Buffer
	sink.SVG(&buf, m.Drawing(res), segrender.New(src, res.Profile))
	return buf.Bytes(), nil
}

// =============================================================================
// Deck Rendering
// =============================================================================

// RenderDeck draws the slides named by opts for p and encodes them. The PDF
// has one 1280×720 point page per slide.
func RenderDeck(p slides.Projection, opts Options) (pdf []byte, pages [][]byte, err error) {
	images, err := slides.Deck(p, opts.SlideNames()...)
	if err != nil {
		return nil, nil, err
	}
	for _, format := range opts.Formats {
		switch format {
		case FormatPDF:
			var buf bytes.Buffer
			if err := sink.PDF(&buf, images, slides.Width, slides.Height); err != nil {
				return nil, nil, err
			}
			pdf = buf.Bytes()
		case FormatPNG:
			pages = make([][]byte, len(images))
			for i, img := range images {
				if pages[i], err = sink.PNG(img); err != nil {
					return nil, nil, err
				}
			}
		default:
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported deck format: %s", format)
		}
	}
	return pdf, pages, nil
}
