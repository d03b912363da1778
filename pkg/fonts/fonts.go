// Package fonts provides embedded font faces for raster rendering.
//
// The Go font family is compiled into the binary via golang.org/x/image,
// so charts and slides render identically on every machine without any
// system font lookup. Parsed fonts and sized faces are cached after first
// use; faces are safe to share between drawing contexts on one goroutine.
package fonts

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects between the regular and bold faces.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// String returns the CSS font-weight keyword for w.
func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "normal"
}

// FontFamily is the CSS font-family used by vector sinks.
const FontFamily = "Go, Arial, sans-serif"

// Source hands out font faces by weight and pixel size.
type Source interface {
	Face(w Weight, size float64) font.Face
}

var (
	parseOnce sync.Once
	parsed    [2]*truetype.Font
	parseErr  error

	faceMu sync.Mutex
	faces  = map[faceKey]font.Face{}
)

type faceKey struct {
	weight Weight
	// size in hundredths of a pixel, so 7.5 and 7.50001 share a face
	size int
}

func load() error {
	parseOnce.Do(func() {
		for w, data := range [][]byte{goregular.TTF, gobold.TTF} {
			f, err := truetype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse embedded font %s: %w", Weight(w), err)
				return
			}
			parsed[w] = f
		}
	})
	return parseErr
}

// Face returns a cached face for the given weight and pixel size.
// It panics only if the embedded font data is corrupt, which is a build defect.
func Face(w Weight, size float64) font.Face {
	if err := load(); err != nil {
		panic(err)
	}
	if w != Bold {
		w = Regular
	}
	key := faceKey{weight: w, size: int(math.Round(size * 100))}

	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faces[key]; ok {
		return f
	}
	f := truetype.NewFace(parsed[w], &truetype.Options{
		Size:    float64(key.size) / 100,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	faces[key] = f
	return f
}

// Embedded is the default Source backed by the compiled-in Go fonts.
type Embedded struct{}

// Face implements Source.
func (Embedded) Face(w Weight, size float64) font.Face { return Face(w, size) }

var _ Source = Embedded{}

// Width returns the advance width of s in face, in pixels.
func Width(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
