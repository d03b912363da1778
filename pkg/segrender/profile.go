package segrender

// Profile is the resolution-dependent parameter set of the renderer.
//
// Font sizes follow min(w/DivW, h/DivH, Cap) floored at Min, computed
// separately for the name and the quantity so the quantity may shrink
// below the name on long labels.
type Profile struct {
	Name string `json:"name" toml:"name"`

	CornerRadius float64 `json:"corner_radius" toml:"corner_radius"`
	StrokeWidth  float64 `json:"stroke_width" toml:"stroke_width"`

	// Labels are suppressed when w <= MinLabelW or h <= MinLabelH.
	MinLabelW float64 `json:"min_label_w" toml:"min_label_w"`
	MinLabelH float64 `json:"min_label_h" toml:"min_label_h"`

	NameDivW float64 `json:"name_div_w" toml:"name_div_w"`
	NameDivH float64 `json:"name_div_h" toml:"name_div_h"`
	NameCap  float64 `json:"name_cap" toml:"name_cap"`
	NameMin  float64 `json:"name_min" toml:"name_min"`

	QtyDivW float64 `json:"qty_div_w" toml:"qty_div_w"`
	QtyDivH float64 `json:"qty_div_h" toml:"qty_div_h"`
	QtyCap  float64 `json:"qty_cap" toml:"qty_cap"`
	QtyMin  float64 `json:"qty_min" toml:"qty_min"`

	// TextPadding is subtracted from the region width to get the wrap width.
	TextPadding float64 `json:"text_padding" toml:"text_padding"`
	// LineSpacing multiplies the name font size to get the line height.
	LineSpacing float64 `json:"line_spacing" toml:"line_spacing"`
	// QtyGap separates the last name line from the quantity.
	QtyGap float64 `json:"qty_gap" toml:"qty_gap"`
}

// PreviewProfile is tuned for the small live-preview canvas.
func PreviewProfile() Profile {
	return Profile{
		Name:         "preview",
		CornerRadius: 5,
		StrokeWidth:  2,
		MinLabelW:    10,
		MinLabelH:    10,
		NameDivW:     7,
		NameDivH:     3.5,
		NameCap:      8,
		NameMin:      5,
		QtyDivW:      8,
		QtyDivH:      4.5,
		QtyCap:       7,
		QtyMin:       5,
		TextPadding:  4,
		LineSpacing:  1.1,
		QtyGap:       4,
	}
}

// ExportProfile is tuned for the full-size export raster.
func ExportProfile() Profile {
	return Profile{
		Name:         "export",
		CornerRadius: 8,
		StrokeWidth:  2,
		MinLabelW:    30,
		MinLabelH:    20,
		NameDivW:     8,
		NameDivH:     4,
		NameCap:      24,
		NameMin:      8,
		QtyDivW:      10,
		QtyDivH:      5,
		QtyCap:       16,
		QtyMin:       7,
		TextPadding:  10,
		LineSpacing:  1.1,
		QtyGap:       4,
	}
}

// Suppressed reports whether a w×h region is too small for labels.
func (p Profile) Suppressed(w, h float64) bool {
	return w <= p.MinLabelW || h <= p.MinLabelH
}

// NameSize returns the name font size for a w×h region.
func (p Profile) NameSize(w, h float64) float64 {
	return max(min(w/p.NameDivW, h/p.NameDivH, p.NameCap), p.NameMin)
}

// QuantitySize returns the quantity font size for a w×h region.
func (p Profile) QuantitySize(w, h float64) float64 {
	return max(min(w/p.QtyDivW, h/p.QtyDivH, p.QtyCap), p.QtyMin)
}
