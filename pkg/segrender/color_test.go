package segrender

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in     string
		want   color.NRGBA
		wantOK bool
	}{
		{"#8D241A", color.NRGBA{0x8d, 0x24, 0x1a, 0xff}, true},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"#1B436580", color.NRGBA{0x1b, 0x43, 0x65, 0x80}, true},
		{"888888", color.NRGBA{0x88, 0x88, 0x88, 0xff}, true},
		{"", color.NRGBA{}, false},
		{"#12345", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHexColor(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFillFallback(t *testing.T) {
	if got := Fill("not a color"); got != Fallback {
		t.Errorf("Fill() = %v, want fallback gray", got)
	}
}

func TestContrast(t *testing.T) {
	if Contrast(Fill("#FFC107")) != color.Black {
		t.Error("amber should take black text")
	}
	if Contrast(Fill("#1B4365")) != color.White {
		t.Error("navy should take white text")
	}
}
