// Package surface is an in-memory scene graph of selectable image and text
// objects, the destination charts are inserted into.
//
// Objects are addressed by a generated id or by a stable name; a name is
// how an inserted chart is found again for replacement or re-editing. The
// scene is flattened to a raster with [Surface.Render].
//
// A Surface is not safe for concurrent use. Callers mutate it from a
// single goroutine; the chart compositor only touches it after its own
// asynchronous work has completed.
package surface

import (
	"encoding/json"
	"image"
	"image/color"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/filmina/pkg/errors"
)

// BackgroundName names the background object installed by SetBackground.
const BackgroundName = "background-image"

// Default canvas size.
const (
	DefaultWidth  = 960
	DefaultHeight = 540
)

// Surface is the scene. Objects are painted in slice order, so the first
// object is at the back.
type Surface struct {
	Width, Height int
	Background    color.Color

	objects []*Object
}

// New returns an empty white surface.
func New(width, height int) *Surface {
	return &Surface{Width: width, Height: height, Background: color.White}
}

// Add appends obj on top of the scene and returns its id. A nil id is
// replaced with a new random one; zero scales become 1.
func (s *Surface) Add(obj *Object) uuid.UUID {
	if obj.ID == uuid.Nil {
		obj.ID = uuid.New()
	}
	if obj.ScaleX == 0 {
		obj.ScaleX = 1
	}
	if obj.ScaleY == 0 {
		obj.ScaleY = 1
	}
	s.objects = append(s.objects, obj)
	return obj.ID
}

func (s *Surface) index(id uuid.UUID) int {
	return slices.IndexFunc(s.objects, func(o *Object) bool { return o.ID == id })
}

// Remove deletes the object with id.
func (s *Surface) Remove(id uuid.UUID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	return true
}

// RemoveByName deletes every object called name and returns how many
// were removed.
func (s *Surface) RemoveByName(name string) int {
	before := len(s.objects)
	s.objects = slices.DeleteFunc(s.objects, func(o *Object) bool { return o.Name == name })
	return before - len(s.objects)
}

// Get returns a copy of the object with id.
func (s *Surface) Get(id uuid.UUID) (Object, bool) {
	i := s.index(id)
	if i < 0 {
		return Object{}, false
	}
	return *s.objects[i].clone(), true
}

// FindByName returns a copy of the topmost object called name.
func (s *Surface) FindByName(name string) (Object, bool) {
	for i := len(s.objects) - 1; i >= 0; i-- {
		if s.objects[i].Name == name {
			return *s.objects[i].clone(), true
		}
	}
	return Object{}, false
}

// FilterByName returns copies of all objects called name, back to front.
func (s *Surface) FilterByName(name string) []Object {
	var out []Object
	for _, o := range s.objects {
		if o.Name == name {
			out = append(out, *o.clone())
		}
	}
	return out
}

// Count returns the number of objects called name.
func (s *Surface) Count(name string) int {
	n := 0
	for _, o := range s.objects {
		if o.Name == name {
			n++
		}
	}
	return n
}

// Len returns the number of objects.
func (s *Surface) Len() int { return len(s.objects) }

// Objects returns copies of all objects, back to front.
func (s *Surface) Objects() []Object {
	out := make([]Object, len(s.objects))
	for i, o := range s.objects {
		out[i] = *o.clone()
	}
	return out
}

// Move sets the top-left position of an object, as a drag would.
func (s *Surface) Move(id uuid.UUID, left, top float64) error {
	i := s.index(id)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "object %s not found", id)
	}
	s.objects[i].Left, s.objects[i].Top = left, top
	return nil
}

// Scale sets the scale factors of an object.
func (s *Surface) Scale(id uuid.UUID, sx, sy float64) error {
	if sx <= 0 || sy <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v×%v", sx, sy)
	}
	i := s.index(id)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "object %s not found", id)
	}
	s.objects[i].ScaleX, s.objects[i].ScaleY = sx, sy
	return nil
}

// SendToBack moves an object beneath all others.
func (s *Surface) SendToBack(id uuid.UUID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	o := s.objects[i]
	s.objects = slices.Delete(s.objects, i, i+1)
	s.objects = slices.Insert(s.objects, 0, o)
	return true
}

// SetBackground installs img as a non-selectable object stretched over the
// whole surface, replacing any previous background.
func (s *Surface) SetBackground(img image.Image) uuid.UUID {
	s.RemoveByName(BackgroundName)
	b := img.Bounds()
	obj := &Object{
		Name:  BackgroundName,
		Kind:  KindImage,
		Image: img,
		Placement: Placement{
			ScaleX: float64(s.Width) / float64(max(b.Dx(), 1)),
			ScaleY: float64(s.Height) / float64(max(b.Dy(), 1)),
		},
	}
	id := s.Add(obj)
	s.SendToBack(id)
	return id
}

// Clear removes every object.
func (s *Surface) Clear() {
	s.objects = nil
}

// ObjectSnapshot is the serializable metadata of an object. Pixels are not
// included.
type ObjectSnapshot struct {
	Placement
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name,omitempty"`
	Kind       Kind            `json:"kind"`
	Width      float64         `json:"width,omitempty"`
	Height     float64         `json:"height,omitempty"`
	Selectable bool            `json:"selectable"`
	Text       string          `json:"text,omitempty"`
	FontSize   float64         `json:"fontSize,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Snapshot describes the scene without pixel data.
type Snapshot struct {
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Objects []ObjectSnapshot `json:"objects"`
}

// Snapshot returns the scene metadata and payloads.
func (s *Surface) Snapshot() Snapshot {
	snap := Snapshot{Width: s.Width, Height: s.Height, Objects: make([]ObjectSnapshot, 0, len(s.objects))}
	for _, o := range s.objects {
		w, h := o.Size()
		snap.Objects = append(snap.Objects, ObjectSnapshot{
			ID:         o.ID,
			Name:       o.Name,
			Kind:       o.Kind,
			Placement:  o.Placement,
			Width:      w,
			Height:     h,
			Selectable: o.Selectable,
			Text:       o.Text,
			FontSize:   o.FontSize,
			Payload:    o.Payload,
		})
	}
	return snap
}

// MarshalJSON implements json.Marshaler via Snapshot.
func (s *Surface) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}
