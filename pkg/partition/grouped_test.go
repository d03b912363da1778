package partition

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const tol = 1e-9

// hardness returns the four Block A tiers of one party in stacking order.
func hardness(party string, opportunist, angry, critical, hard float64) []Item {
	return []Item{
		{Key: party + " Oportunista", Group: party, Weight: opportunist},
		{Key: party + " Enojado", Group: party, Weight: angry},
		{Key: party + " Crítico", Group: party, Weight: critical},
		{Key: party + " Duro", Group: party, Weight: hard},
	}
}

func TestGroupedBlockAScenario(t *testing.T) {
	items := append(hardness("Morena", 50, 30, 70, 120), hardness("PAN", 30, 15, 20, 140)...)
	box := Box{W: 880, H: 610}

	rects := Grouped(items, []string{"Morena", "PAN"}, box)
	if len(rects) != 8 {
		t.Fatalf("len(rects) = %d, want 8", len(rects))
	}

	for _, r := range rects {
		if math.Abs(r.W-box.W/2) > tol {
			t.Errorf("%s width = %v, want %v", r.Key, r.W, box.W/2)
		}
	}

	byKey := map[string]Rect{}
	for _, r := range rects {
		byKey[r.Key] = r
	}
	if got, want := byKey["Morena Duro"].H/box.H, 120.0/270.0; math.Abs(got-want) > tol {
		t.Errorf("Morena Duro fraction = %v, want %v", got, want)
	}
	if got, want := byKey["PAN Duro"].H/box.H, 140.0/205.0; math.Abs(got-want) > tol {
		t.Errorf("PAN Duro fraction = %v, want %v", got, want)
	}
	if byKey["PAN Duro"].X != box.W/2 {
		t.Errorf("PAN column x = %v, want %v", byKey["PAN Duro"].X, box.W/2)
	}
}

func TestGroupedEmpty(t *testing.T) {
	if rects := Grouped(nil, []string{"Morena", "PAN"}, Box{W: 100, H: 100}); len(rects) != 0 {
		t.Errorf("Grouped(nil) = %v, want no rects", rects)
	}
	if rects := Grouped([]Item{{Key: "a", Group: "x", Weight: 1}}, nil, Box{W: 100, H: 100}); len(rects) != 0 {
		t.Errorf("Grouped() with no groups = %v, want no rects", rects)
	}
}

func TestGroupedFractionsSumToOne(t *testing.T) {
	items := []Item{
		{Key: "a1", Group: "A", Weight: 1},
		{Key: "b1", Group: "B", Weight: 3},
		{Key: "a2", Group: "A", Weight: 0.1},
		{Key: "c1", Group: "C", Weight: 7},
		{Key: "a3", Group: "A", Weight: 13},
		{Key: "b2", Group: "B", Weight: 11},
	}
	box := Box{X: 40, Y: 80, W: 836, H: 610}
	rects := Grouped(items, []string{"A", "B", "C"}, box)

	heights := map[string]float64{}
	bottoms := map[string]float64{}
	for _, r := range rects {
		g := items[r.Index].Group
		heights[g] += r.H
		bottoms[g] = r.Bottom()
	}
	for g, h := range heights {
		if math.Abs(h/box.H-1) > tol {
			t.Errorf("group %s fractions sum = %v, want 1", g, h/box.H)
		}
		if math.Abs(bottoms[g]-(box.Y+box.H)) > tol {
			t.Errorf("group %s ends at %v, want %v", g, bottoms[g], box.Y+box.H)
		}
	}

	cols := Columns(items, []string{"A", "B", "C"}, box)
	sum := 0.0
	for _, c := range cols {
		sum += c.W
	}
	if math.Abs(sum-box.W) > tol {
		t.Errorf("column widths sum = %v, want %v", sum, box.W)
	}
	if last := cols[len(cols)-1]; math.Abs(last.X+last.W-(box.X+box.W)) > tol {
		t.Errorf("last column ends at %v, want %v", last.X+last.W, box.X+box.W)
	}
}

func TestGroupedSkipsEmptyGroups(t *testing.T) {
	items := []Item{
		{Key: "PAN Duro", Group: "PAN", Weight: 140},
	}
	rects := Grouped(items, []string{"Morena", "PAN", "Otros"}, Box{W: 300, H: 100})
	want := []Rect{{Index: 0, Key: "PAN Duro", X: 0, Y: 0, W: 300, H: 100}}
	if diff := cmp.Diff(want, rects); diff != "" {
		t.Errorf("Grouped() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupedZeroTotalSplitsEqually(t *testing.T) {
	items := []Item{
		{Key: "a", Group: "G", Weight: 0},
		{Key: "b", Group: "G", Weight: 0},
		{Key: "c", Group: "G", Weight: -3},
		{Key: "d", Group: "G", Weight: 0},
	}
	rects := Grouped(items, []string{"G"}, Box{W: 10, H: 100})
	for _, r := range rects {
		if math.Abs(r.H-25) > tol {
			t.Errorf("%s height = %v, want 25", r.Key, r.H)
		}
	}
}

func TestGroupedStableOrder(t *testing.T) {
	items := []Item{
		{Key: "first", Group: "G", Weight: 1},
		{Key: "other", Group: "H", Weight: 1},
		{Key: "second", Group: "G", Weight: 1},
	}
	rects := Grouped(items, []string{"H", "G", "H"}, Box{W: 200, H: 100})
	got := make([]string, len(rects))
	for i, r := range rects {
		got[i] = r.Key
	}
	want := []string{"other", "first", "second"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestColumns(t *testing.T) {
	items := append(hardness("Morena", 1, 1, 1, 1), hardness("PAN", 1, 1, 1, 1)...)
	got := Columns(items, []string{"Morena", "PVEM", "PAN"}, Box{X: 40, W: 836})
	want := []Span{
		{Group: "Morena", X: 40, W: 418},
		{Group: "PAN", X: 458, W: 418},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
}
