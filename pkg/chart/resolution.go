package chart

import "github.com/matzehuels/filmina/pkg/segrender"

// Resolution is the parameter set one rendering pass runs with. Preview
// and export are two independent parameter sets, not scales of each other.
type Resolution struct {
	Name          string
	Width, Height int

	// Profile drives segment fills, strokes and label sizing.
	Profile segrender.Profile

	// Header is the height reserved above the segments when headers are
	// shown. Insets surround the segment area.
	Header      float64
	InsetX      float64
	InsetTop    float64
	InsetBottom float64

	// Header text baselines and sizes.
	TitleY    float64
	TotalY    float64
	TitleSize float64
	TotalSize float64
	TotalBold bool

	DividerWidth float64
	DividerDash  float64
}

// PreviewResolution is the live-edit parameter set of kind k.
func PreviewResolution(k Kind) Resolution {
	if k == KindProfile {
		return Resolution{Name: "preview", Width: 800, Height: 600}
	}
	return Resolution{
		Name:         "preview",
		Width:        400,
		Height:       280,
		Profile:      segrender.PreviewProfile(),
		Header:       35,
		InsetX:       10,
		InsetTop:     10,
		InsetBottom:  30,
		TitleY:       38,
		TotalY:       50,
		TitleSize:    9,
		TotalSize:    8,
		DividerWidth: 2,
		DividerDash:  5,
	}
}

// ExportResolution is the insert parameter set of kind k; its size is
// k.ExportSize().
func ExportResolution(k Kind) Resolution {
	w, h := k.ExportSize()
	if k == KindProfile {
		return Resolution{Name: "export", Width: w, Height: h}
	}
	return Resolution{
		Name:         "export",
		Width:        w,
		Height:       h,
		Profile:      segrender.ExportProfile(),
		Header:       60,
		InsetX:       40,
		InsetTop:     20,
		InsetBottom:  40,
		TitleY:       38,
		TotalY:       56,
		TitleSize:    18,
		TotalSize:    16,
		TotalBold:    true,
		DividerWidth: 3,
		DividerDash:  10,
	}
}
