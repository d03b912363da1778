package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFaceCached(t *testing.T) {
	a := Face(Bold, 24)
	b := Face(Bold, 24)
	if a != b {
		t.Error("Face() should return the cached face for identical weight and size")
	}

	c := Face(Regular, 24)
	if a == c {
		t.Error("Face() should return distinct faces per weight")
	}
}

func TestFaceSizeScalesAdvance(t *testing.T) {
	small := font.MeasureString(Face(Regular, 8), "Tercera edad")
	large := font.MeasureString(Face(Regular, 16), "Tercera edad")
	if large <= small {
		t.Errorf("advance at 16px = %v, want greater than at 8px (%v)", large, small)
	}
}

func TestBoldIsWider(t *testing.T) {
	regular := font.MeasureString(Face(Regular, 18), "Sin opinión")
	bold := font.MeasureString(Face(Bold, 18), "Sin opinión")
	if bold < regular {
		t.Errorf("bold advance = %v, want >= regular advance %v", bold, regular)
	}
}

func TestWeightString(t *testing.T) {
	if Bold.String() != "bold" {
		t.Errorf("Bold.String() = %q, want %q", Bold.String(), "bold")
	}
	if Regular.String() != "normal" {
		t.Errorf("Regular.String() = %q, want %q", Regular.String(), "normal")
	}
}

func TestWidthMatchesMeasureString(t *testing.T) {
	face := Face(Bold, 12)
	want := float64(font.MeasureString(face, "Comerciantes")) / 64
	if got := Width(face, "Comerciantes"); got != want {
		t.Errorf("Width() = %v, want %v", got, want)
	}
	if got := Width(face, ""); got != 0 {
		t.Errorf("Width(\"\") = %v, want 0", got)
	}
}
