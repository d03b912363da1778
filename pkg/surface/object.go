package surface

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/google/uuid"
)

// Kind distinguishes the drawable object types.
type Kind int

const (
	KindImage Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindText {
		return "text"
	}
	return "image"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "image":
		*k = KindImage
	case "text":
		*k = KindText
	default:
		return fmt.Errorf("unknown object kind %q", b)
	}
	return nil
}

// Align is the horizontal alignment of multi-line text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Placement is the position and scale of an object on the surface.
type Placement struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
}

// Object is one selectable, movable item of the scene.
type Object struct {
	ID   uuid.UUID
	Name string
	Kind Kind
	Placement

	// Selectable is false for decoration such as the background.
	Selectable bool

	Image image.Image

	Text     string
	FontSize float64
	Bold     bool
	Color    string
	Align    Align

	// Payload is opaque structured data attached by the creator of the
	// object, such as the data a chart image was rendered from.
	Payload json.RawMessage
}

// NewImage returns a selectable image object at p.
func NewImage(name string, img image.Image, p Placement) *Object {
	return &Object{Name: name, Kind: KindImage, Placement: p, Selectable: true, Image: img}
}

// NewText returns a selectable text object with its top-left corner at
// (left, top).
func NewText(name, text string, left, top, size float64, color string) *Object {
	return &Object{
		Name:       name,
		Kind:       KindText,
		Placement:  Placement{Left: left, Top: top, ScaleX: 1, ScaleY: 1},
		Selectable: true,
		Text:       text,
		FontSize:   size,
		Color:      color,
	}
}

// Size returns the unscaled size of an image object, or zero for text.
func (o *Object) Size() (w, h float64) {
	if o.Kind != KindImage || o.Image == nil {
		return 0, 0
	}
	b := o.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (o *Object) clone() *Object {
	c := *o
	c.Payload = append(json.RawMessage(nil), o.Payload...)
	return &c
}
