// Package board holds the editable state of a microsegmentation chart.
//
// A [Board] owns two disjoint, ordered segment pools: grouped segments,
// partitioned by a declared list of groups (parties), and ungrouped
// population segments placed by name into a template. Every segment gets
// an id from a monotonic counter owned by the board, so ids stay unique
// across both pools and are never reused after removal.
//
// Boards serialize to JSON; that document is the payload attached to an
// inserted chart and the only place chart edits are kept.
package board

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/partition"
)

// Defaults for segments created through the board operations.
const (
	NewSegmentName     = "Nuevo Segmento"
	NewSegmentQuantity = "10 K"
	NewSegmentColor    = "#888888"
	NewGroupQuantity   = "100 K"

	// SectionGroups tags segments of the grouped pool.
	SectionGroups = "partidos"
)

// Pool identifies one of the two segment collections.
type Pool int

const (
	Grouped Pool = iota
	Ungrouped
)

func (p Pool) String() string {
	if p == Ungrouped {
		return "ungrouped"
	}
	return "grouped"
}

// Segment is a named, weighted, colored unit of the chart.
type Segment struct {
	ID       int    `json:"id"`
	Group    string `json:"group,omitempty"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Color    string `json:"color"`
	Section  string `json:"section,omitempty"`
}

// Weight is the layout weight parsed from Quantity.
func (s Segment) Weight() float64 {
	return partition.Weight(s.Quantity)
}

// Label is the text drawn on the segment: its group when it has one,
// otherwise its own name.
func (s Segment) Label() string {
	if s.Group != "" {
		return s.Group
	}
	return s.Name
}

// Board is the segment aggregate. The zero value is not usable; call New.
type Board struct {
	ShowHeaders bool

	groups    []string
	grouped   []Segment
	ungrouped []Segment
	nextID    int

	randColor func() string
}

// New returns an empty board with headers enabled.
func New() *Board {
	return &Board{ShowHeaders: true, nextID: 1, randColor: randomColor}
}

func randomColor() string {
	return fmt.Sprintf("#%06x", rand.IntN(0x1000000))
}

// Groups returns the declared groups in order.
func (b *Board) Groups() []string { return slices.Clone(b.groups) }

// Segments returns a copy of the segments of pool p in order.
func (b *Board) Segments(p Pool) []Segment {
	if p == Ungrouped {
		return slices.Clone(b.ungrouped)
	}
	return slices.Clone(b.grouped)
}

// GroupSegments returns the grouped segments belonging to group.
func (b *Board) GroupSegments(group string) []Segment {
	var out []Segment
	for _, s := range b.grouped {
		if s.Group == group {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of segments across both pools.
func (b *Board) Len() int { return len(b.grouped) + len(b.ungrouped) }

// NextID returns the id the next added segment will receive.
func (b *Board) NextID() int { return b.nextID }

// Get looks a segment up by id in either pool.
func (b *Board) Get(id int) (Segment, Pool, bool) {
	if i := indexOf(b.grouped, id); i >= 0 {
		return b.grouped[i], Grouped, true
	}
	if i := indexOf(b.ungrouped, id); i >= 0 {
		return b.ungrouped[i], Ungrouped, true
	}
	return Segment{}, 0, false
}

func indexOf(segs []Segment, id int) int {
	return slices.IndexFunc(segs, func(s Segment) bool { return s.ID == id })
}

func (b *Board) hasGroup(name string) bool { return slices.Contains(b.groups, name) }

// DeclareGroup appends an empty group. Empty groups reserve no column.
func (b *Board) DeclareGroup(name string) error {
	if err := errors.ValidateLabel(name); err != nil {
		return err
	}
	if b.hasGroup(name) {
		return errors.New(errors.ErrCodeInvalidInput, "group %q already exists", name)
	}
	b.groups = append(b.groups, name)
	return nil
}

// AddGroup declares a new group and seeds it with one segment named
// "<group> Segmento" with a random color.
func (b *Board) AddGroup(name string) (Segment, error) {
	name = strings.TrimSpace(name)
	if err := b.DeclareGroup(name); err != nil {
		return Segment{}, err
	}
	return b.Append(Grouped, Segment{
		Group:    name,
		Name:     name + " Segmento",
		Quantity: NewGroupQuantity,
		Color:    b.randColor(),
	})
}

// RemoveGroup drops a group together with all of its segments.
func (b *Board) RemoveGroup(name string) bool {
	i := slices.Index(b.groups, name)
	if i < 0 {
		return false
	}
	b.groups = slices.Delete(b.groups, i, i+1)
	b.grouped = slices.DeleteFunc(b.grouped, func(s Segment) bool { return s.Group == name })
	return true
}

// AddSegment appends a placeholder segment to an existing group.
func (b *Board) AddSegment(group string) (Segment, error) {
	if !b.hasGroup(group) {
		return Segment{}, errors.New(errors.ErrCodeNotFound, "group %q not declared", group)
	}
	return b.Append(Grouped, Segment{
		Group:    group,
		Name:     NewSegmentName,
		Quantity: NewSegmentQuantity,
		Color:    NewSegmentColor,
	})
}

// Append adds seg to pool p under a fresh id; any id on seg is ignored.
// Grouped segments must name a declared group and ungrouped ones must not
// carry a group.
func (b *Board) Append(p Pool, seg Segment) (Segment, error) {
	switch p {
	case Grouped:
		if !b.hasGroup(seg.Group) {
			return Segment{}, errors.New(errors.ErrCodeNotFound, "group %q not declared", seg.Group)
		}
		if seg.Section == "" {
			seg.Section = SectionGroups
		}
	case Ungrouped:
		if seg.Group != "" {
			return Segment{}, errors.New(errors.ErrCodeInvalidInput, "ungrouped segment %q has group %q", seg.Name, seg.Group)
		}
	}
	seg.ID = b.nextID
	b.nextID++
	if p == Ungrouped {
		b.ungrouped = append(b.ungrouped, seg)
	} else {
		b.grouped = append(b.grouped, seg)
	}
	return seg, nil
}

// Remove deletes the segment with id from whichever pool holds it.
func (b *Board) Remove(id int) bool {
	if i := indexOf(b.grouped, id); i >= 0 {
		b.grouped = slices.Delete(b.grouped, i, i+1)
		return true
	}
	if i := indexOf(b.ungrouped, id); i >= 0 {
		b.ungrouped = slices.Delete(b.ungrouped, i, i+1)
		return true
	}
	return false
}

// Update applies fn to the segment with id. Identity (ID and Group) is
// restored after fn returns; use RemoveGroup and AddSegment to move
// segments between groups.
func (b *Board) Update(id int, fn func(*Segment)) error {
	pool := &b.grouped
	i := indexOf(b.grouped, id)
	if i < 0 {
		pool = &b.ungrouped
		i = indexOf(b.ungrouped, id)
	}
	if i < 0 {
		return errors.New(errors.ErrCodeSegmentNotFound, "segment %d not found", id)
	}
	seg := (*pool)[i]
	fn(&seg)
	seg.ID, seg.Group = (*pool)[i].ID, (*pool)[i].Group
	(*pool)[i] = seg
	return nil
}

// Items converts pool p into partition items, in pool order, so that
// Rect.Index addresses Segments(p).
func (b *Board) Items(p Pool) []partition.Item {
	segs := b.grouped
	if p == Ungrouped {
		segs = b.ungrouped
	}
	items := make([]partition.Item, len(segs))
	for i, s := range segs {
		items[i] = partition.Item{Key: s.Name, Group: s.Group, Weight: s.Weight()}
	}
	return items
}

// Validate reports the first segment whose name or color would render
// poorly. Boards with such segments still lay out and draw; invalid colors
// fall back to gray.
func (b *Board) Validate() error {
	for _, s := range append(slices.Clone(b.grouped), b.ungrouped...) {
		if err := errors.ValidateLabel(s.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "segment %d", s.ID)
		}
		if err := errors.ValidateColor(s.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "segment %d", s.ID)
		}
	}
	return nil
}

// GroupTotal sums the weights of a group's segments.
func (b *Board) GroupTotal(group string) float64 {
	total := 0.0
	for _, s := range b.grouped {
		if s.Group == group {
			total += s.Weight()
		}
	}
	return total
}

// UngroupedTotal sums the weights of the ungrouped pool.
func (b *Board) UngroupedTotal() float64 {
	return partition.Total(b.Items(Ungrouped))
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	c := *b
	c.groups = slices.Clone(b.groups)
	c.grouped = slices.Clone(b.grouped)
	c.ungrouped = slices.Clone(b.ungrouped)
	return &c
}

// document is the JSON form of a board.
type document struct {
	ShowHeaders bool      `json:"showHeaders"`
	Groups      []string  `json:"groups"`
	Segments    []Segment `json:"segments"`
	Ungrouped   []Segment `json:"ungrouped"`
	NextID      int       `json:"nextId,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		ShowHeaders: b.ShowHeaders,
		Groups:      nonNil(b.groups),
		Segments:    nonNil(b.grouped),
		Ungrouped:   nonNil(b.ungrouped),
		NextID:      b.nextID,
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// UnmarshalJSON implements json.Unmarshaler. Ids must be positive and
// unique across both pools, and segments follow the same pool rules as
// Append. The counter resumes above the largest id and never below a
// recorded nextId.
func (b *Board) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode board")
	}

	nb := New()
	nb.ShowHeaders = doc.ShowHeaders
	for _, g := range doc.Groups {
		if !nb.hasGroup(g) {
			nb.groups = append(nb.groups, g)
		}
	}

	seen := map[int]bool{}
	maxID := 0
	check := func(s Segment) error {
		if s.ID <= 0 || seen[s.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "segment %q has invalid or duplicate id %d", s.Name, s.ID)
		}
		seen[s.ID] = true
		maxID = max(maxID, s.ID)
		return nil
	}
	for _, s := range doc.Segments {
		if err := check(s); err != nil {
			return err
		}
		if s.Group == "" {
			return errors.New(errors.ErrCodeInvalidInput, "grouped segment %d (%q) has no group", s.ID, s.Name)
		}
		if !nb.hasGroup(s.Group) {
			nb.groups = append(nb.groups, s.Group)
		}
	}
	for _, s := range doc.Ungrouped {
		if err := check(s); err != nil {
			return err
		}
		if s.Group != "" {
			return errors.New(errors.ErrCodeInvalidInput, "ungrouped segment %d (%q) has group %q", s.ID, s.Name, s.Group)
		}
	}
	nb.grouped = doc.Segments
	nb.ungrouped = doc.Ungrouped
	nb.nextID = max(maxID+1, doc.NextID, 1)
	if b.randColor != nil {
		nb.randColor = b.randColor
	}
	*b = *nb
	return nil
}
