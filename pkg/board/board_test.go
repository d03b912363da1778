package board

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/filmina/pkg/errors"
)

func TestExample(t *testing.T) {
	b := Example()
	if got := len(b.Segments(Grouped)); got != 16 {
		t.Errorf("grouped = %d, want 16", got)
	}
	if got := len(b.Segments(Ungrouped)); got != 12 {
		t.Errorf("ungrouped = %d, want 12", got)
	}
	if diff := cmp.Diff([]string{"Morena", "PVEM", "PAN", "Otros"}, b.Groups()); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}
	if got := b.NextID(); got != 29 {
		t.Errorf("NextID() = %d, want 29", got)
	}
	if got := b.GroupTotal("Morena"); got != 270 {
		t.Errorf("GroupTotal(Morena) = %v, want 270", got)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestIDsMonotonic(t *testing.T) {
	b := New()
	if err := b.DeclareGroup("Morena"); err != nil {
		t.Fatal(err)
	}
	s1, _ := b.AddSegment("Morena")
	s2, _ := b.AddSegment("Morena")
	if !b.Remove(s2.ID) {
		t.Fatal("Remove() = false")
	}
	s3, _ := b.AddSegment("Morena")
	if s3.ID <= s2.ID {
		t.Errorf("id %d reused after removing %d", s3.ID, s2.ID)
	}
	u, _ := b.Append(Ungrouped, Segment{Name: "Religiosos", Quantity: "1 K", Color: "#fff"})
	if u.ID <= s3.ID || u.ID == s1.ID {
		t.Errorf("ungrouped id %d not unique", u.ID)
	}
}

func TestAddSegmentDefaults(t *testing.T) {
	b := New()
	_ = b.DeclareGroup("PAN")
	got, err := b.AddSegment("PAN")
	if err != nil {
		t.Fatal(err)
	}
	want := Segment{ID: 1, Group: "PAN", Name: "Nuevo Segmento", Quantity: "10 K", Color: "#888888", Section: SectionGroups}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AddSegment() mismatch (-want +got):\n%s", diff)
	}

	if _, err := b.AddSegment("PRI"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("AddSegment(undeclared) = %v, want NOT_FOUND", err)
	}
}

func TestAddGroup(t *testing.T) {
	b := New()
	b.randColor = func() string { return "#123456" }

	seg, err := b.AddGroup("  MC ")
	if err != nil {
		t.Fatal(err)
	}
	want := Segment{ID: 1, Group: "MC", Name: "MC Segmento", Quantity: "100 K", Color: "#123456", Section: SectionGroups}
	if diff := cmp.Diff(want, seg); diff != "" {
		t.Errorf("AddGroup() mismatch (-want +got):\n%s", diff)
	}
	if _, err := b.AddGroup("MC"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate AddGroup() = %v, want INVALID_INPUT", err)
	}
	if _, err := b.AddGroup("   "); err == nil {
		t.Error("AddGroup(blank) = nil, want error")
	}
}

func TestRandomColorIsHex(t *testing.T) {
	for range 50 {
		if err := errors.ValidateColor(randomColor()); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRemoveGroup(t *testing.T) {
	b := Example()
	if !b.RemoveGroup("PVEM") {
		t.Fatal("RemoveGroup() = false")
	}
	if b.RemoveGroup("PVEM") {
		t.Error("second RemoveGroup() = true")
	}
	if got := len(b.GroupSegments("PVEM")); got != 0 {
		t.Errorf("PVEM segments left: %d", got)
	}
	if got := len(b.Segments(Grouped)); got != 13 {
		t.Errorf("grouped = %d, want 13", got)
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	b := Example()
	err := b.Update(4, func(s *Segment) {
		s.Quantity = "200 K"
		s.ID = 99
		s.Group = "PAN"
	})
	if err != nil {
		t.Fatal(err)
	}
	seg, pool, ok := b.Get(4)
	if !ok || pool != Grouped {
		t.Fatalf("Get(4) = %v, %v, %v", seg, pool, ok)
	}
	if seg.Quantity != "200 K" || seg.Group != "Morena" {
		t.Errorf("segment = %+v", seg)
	}

	if err := b.Update(1000, func(*Segment) {}); !errors.Is(err, errors.ErrCodeSegmentNotFound) {
		t.Errorf("Update(missing) = %v, want SEGMENT_NOT_FOUND", err)
	}
}

func TestAppendUngroupedRejectsGroup(t *testing.T) {
	b := New()
	if _, err := b.Append(Ungrouped, Segment{Group: "PAN", Name: "x"}); err == nil {
		t.Error("Append(Ungrouped, grouped segment) = nil, want error")
	}
}

func TestItemsIndexAligned(t *testing.T) {
	b := Example()
	segs := b.Segments(Ungrouped)
	for i, it := range b.Items(Ungrouped) {
		if it.Key != segs[i].Name || it.Weight != segs[i].Weight() {
			t.Errorf("item %d = %+v, segment %+v", i, it, segs[i])
		}
	}
}

func TestLabel(t *testing.T) {
	if got := (Segment{Group: "PAN", Name: "PAN Duro"}).Label(); got != "PAN" {
		t.Errorf("Label() = %q, want PAN", got)
	}
	if got := (Segment{Name: "Religiosos"}).Label(); got != "Religiosos" {
		t.Errorf("Label() = %q, want Religiosos", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	b := Example()
	b.ShowHeaders = false
	b.Remove(28)

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	got := New()
	if err := json.Unmarshal(data, got); err != nil {
		t.Fatal(err)
	}
	if got.ShowHeaders {
		t.Error("ShowHeaders not restored")
	}
	if diff := cmp.Diff(b.Segments(Grouped), got.Segments(Grouped)); diff != "" {
		t.Errorf("grouped mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(b.Segments(Ungrouped), got.Segments(Ungrouped)); diff != "" {
		t.Errorf("ungrouped mismatch (-want +got):\n%s", diff)
	}
	if got.NextID() != 29 {
		t.Errorf("NextID() = %d, want 29 (counter survives removal)", got.NextID())
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "duplicate id across pools",
			doc:  `{"groups":["A"],"segments":[{"id":1,"group":"A","name":"a"}],"ungrouped":[{"id":1,"name":"b"}]}`,
		},
		{
			name: "zero id",
			doc:  `{"ungrouped":[{"id":0,"name":"b"}]}`,
		},
		{
			name: "ungrouped segment with group",
			doc:  `{"ungrouped":[{"id":2,"group":"PAN","name":"Religiosos"}]}`,
		},
		{
			name: "grouped segment without group",
			doc:  `{"segments":[{"id":1,"name":"orphan"}]}`,
		},
		{
			name: "grouped segment with blank group among valid ones",
			doc:  `{"groups":["PRI"],"segments":[{"id":1,"group":"PRI","name":"PRI Duro"},{"id":2,"group":"","name":"orphan"}]}`,
		},
		{
			name: "malformed",
			doc:  `{"segments":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			if err := json.Unmarshal([]byte(tt.doc), b); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Unmarshal() = %v, want INVALID_INPUT", err)
			}
			if b.Len() != 0 {
				t.Errorf("board modified by rejected document")
			}
		})
	}
}

func TestUnmarshalDeclaresMissingGroups(t *testing.T) {
	doc := `{"segments":[{"id":7,"group":"PAN","name":"PAN Duro","quantity":"1 K"}]}`
	b := New()
	if err := json.Unmarshal([]byte(doc), b); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"PAN"}, b.Groups()); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}
	if b.NextID() != 8 {
		t.Errorf("NextID() = %d, want 8", b.NextID())
	}
}

func TestClone(t *testing.T) {
	b := Example()
	c := b.Clone()
	c.Remove(1)
	_ = c.Update(2, func(s *Segment) { s.Name = "changed" })
	if _, _, ok := b.Get(1); !ok {
		t.Error("Clone shares storage with original")
	}
	if s, _, _ := b.Get(2); s.Name == "changed" {
		t.Error("Clone shares segment values with original")
	}
}
