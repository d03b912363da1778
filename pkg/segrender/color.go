package segrender

import (
	"image/color"
	"strconv"
	"strings"
)

// Fallback is used for fill colors that do not parse.
var Fallback = color.NRGBA{0x88, 0x88, 0x88, 0xff}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// Fill parses s, falling back to gray.
func Fill(s string) color.NRGBA {
	if c, ok := ParseHexColor(s); ok {
		return c
	}
	return Fallback
}

// Contrast returns black or white, whichever reads better on bg.
func Contrast(bg color.Color) color.Color {
	r, g, b, _ := bg.RGBA()
	// Rec. 601 luma on 16-bit channels.
	luma := (299*float64(r) + 587*float64(g) + 114*float64(b)) / 1000 / 0xffff
	if luma > 0.6 {
		return color.Black
	}
	return color.White
}
