package surface

import (
	"encoding/json"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestAddAssignsIDAndScale(t *testing.T) {
	s := New(100, 100)
	id := s.Add(&Object{Name: "a"})
	if id == uuid.Nil {
		t.Fatal("Add() returned nil id")
	}
	o, ok := s.Get(id)
	if !ok {
		t.Fatal("Get() = false")
	}
	if o.ScaleX != 1 || o.ScaleY != 1 {
		t.Errorf("scale = %v×%v, want 1×1", o.ScaleX, o.ScaleY)
	}
}

func TestFindAndRemoveByName(t *testing.T) {
	s := New(100, 100)
	s.Add(NewText("label", "one", 0, 0, 10, "#000"))
	s.Add(NewText("label", "two", 0, 0, 10, "#000"))
	s.Add(NewText("other", "x", 0, 0, 10, "#000"))

	top, ok := s.FindByName("label")
	if !ok || top.Text != "two" {
		t.Errorf("FindByName() = %q, %v; want topmost \"two\"", top.Text, ok)
	}
	if got := s.Count("label"); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if got := s.RemoveByName("label"); got != 2 {
		t.Errorf("RemoveByName() = %d, want 2", got)
	}
	if _, ok := s.FindByName("label"); ok {
		t.Error("label still present")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestCopiesAreIsolated(t *testing.T) {
	s := New(10, 10)
	id := s.Add(&Object{Name: "chart", Payload: json.RawMessage(`{"a":1}`)})
	o, _ := s.Get(id)
	o.Left = 99
	o.Payload[2] = 'b'

	again, _ := s.Get(id)
	if again.Left != 0 || string(again.Payload) != `{"a":1}` {
		t.Errorf("mutating a copy changed the scene: %+v", again)
	}
}

func TestMoveScaleErrors(t *testing.T) {
	s := New(10, 10)
	id := s.Add(&Object{Name: "a"})
	if err := s.Move(id, 5, 6); err != nil {
		t.Fatal(err)
	}
	if err := s.Scale(id, 0.5, 0.25); err != nil {
		t.Fatal(err)
	}
	o, _ := s.Get(id)
	want := Placement{Left: 5, Top: 6, ScaleX: 0.5, ScaleY: 0.25}
	if diff := cmp.Diff(want, o.Placement); diff != "" {
		t.Errorf("placement mismatch (-want +got):\n%s", diff)
	}

	if err := s.Move(uuid.New(), 0, 0); err == nil {
		t.Error("Move(unknown) = nil")
	}
	if err := s.Scale(id, 0, 1); err == nil {
		t.Error("Scale(0) = nil")
	}
}

func TestSetBackground(t *testing.T) {
	s := New(960, 540)
	s.Add(&Object{Name: "chart"})
	s.SetBackground(solid(480, 270, color.Black))
	s.SetBackground(solid(1920, 1080, color.Black))

	if got := s.Count(BackgroundName); got != 1 {
		t.Fatalf("backgrounds = %d, want 1", got)
	}
	objs := s.Objects()
	bg := objs[0]
	if bg.Name != BackgroundName || bg.Selectable {
		t.Errorf("back object = %q selectable=%v", bg.Name, bg.Selectable)
	}
	if bg.ScaleX != 0.5 || bg.ScaleY != 0.5 {
		t.Errorf("background scale = %v×%v, want 0.5×0.5", bg.ScaleX, bg.ScaleY)
	}
}

func TestRenderComposites(t *testing.T) {
	s := New(40, 20)
	s.Add(NewImage("red", solid(10, 10, color.NRGBA{255, 0, 0, 255}), Placement{Left: 20, Top: 0, ScaleX: 2, ScaleY: 2}))

	img := s.Render()
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, _, _ := img.At(30, 10).RGBA()
	if r>>8 != 255 || g>>8 != 0 {
		t.Errorf("scaled image pixel = %d,%d, want red", r>>8, g>>8)
	}
	r, g, _, _ = img.At(5, 10).RGBA()
	if r>>8 != 255 || g>>8 != 255 {
		t.Error("background not white")
	}

	if b := s.RenderScaled(2).Bounds(); b.Dx() != 80 || b.Dy() != 40 {
		t.Errorf("RenderScaled(2) bounds = %v", b)
	}
}

func TestRenderDownscaled(t *testing.T) {
	s := New(40, 20)
	s.Add(NewImage("red", solid(20, 20, color.NRGBA{255, 0, 0, 255}), Placement{Left: 10, Top: 5, ScaleX: 0.5, ScaleY: 0.5}))

	img := s.Render()
	r, g, _, _ := img.At(15, 10).RGBA()
	if r>>8 != 255 || g>>8 != 0 {
		t.Errorf("downscaled pixel = %d,%d, want red", r>>8, g>>8)
	}
	r, g, _, _ = img.At(25, 10).RGBA()
	if r>>8 != 255 || g>>8 != 255 {
		t.Errorf("pixel right of the image = %d,%d, want white", r>>8, g>>8)
	}
}

func TestRenderText(t *testing.T) {
	s := New(200, 60)
	txt := NewText("t", "Impulsor", 10, 10, 18, "#7c3aed")
	txt.Bold = true
	s.Add(txt)
	img := s.Render()

	found := false
	for y := 10; y < 40 && !found; y++ {
		for x := 10; x < 120; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r>>8 < 200 && b>>8 > g>>8 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no text pixels rendered")
	}
}

func TestSnapshotJSON(t *testing.T) {
	s := New(960, 540)
	id := s.Add(NewImage("tablero-microsegmentacion-chart", solid(16, 8, color.Black), Placement{Left: 1, Top: 2, ScaleX: 0.5, ScaleY: 0.5}))
	obj := s.objects[0]
	obj.Payload = json.RawMessage(`{"showHeaders":true}`)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Objects) != 1 {
		t.Fatalf("objects = %d", len(snap.Objects))
	}
	got := snap.Objects[0]
	if got.ID != id || got.Width != 16 || got.Height != 8 || got.Left != 1 || string(got.Payload) != `{"showHeaders":true}` {
		t.Errorf("snapshot = %+v", got)
	}
}
