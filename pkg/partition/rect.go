package partition

// eps is the tolerance used when validating fractional templates.
const eps = 1e-9

// Box is a bounding box in screen coordinates.
type Box struct {
	X, Y, W, H float64
}

// Item is one weighted input to a partition strategy.
type Item struct {
	Key    string  // display name, used by Template lookups
	Group  string  // group key, used by Grouped
	Weight float64 // non-negative layout weight
}

// Rect is a computed region for the item at Index.
type Rect struct {
	Index int     `json:"index"`
	Key   string  `json:"key"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

// Right returns the right edge of the rectangle.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge of the rectangle.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Span is the horizontal extent of one group column.
type Span struct {
	Group string
	X, W  float64
}

// CenterX returns the horizontal center of the span.
func (s Span) CenterX() float64 { return s.X + s.W/2 }
