package slides

import (
	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/board"
	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/partition"
	"github.com/matzehuels/filmina/pkg/segrender"
	"github.com/matzehuels/filmina/pkg/study"
)

// Geometry of the profiling slide.
const (
	profilingLeft   = 70.0
	profilingTop    = 175.0
	profilingWidth  = 1140.0
	profilingHeight = 430.0
	panelWidth      = 210.0
	panelGap        = 5.0
	labelTop        = 130.0
)

// ProfilingProfile is the segment renderer profile of the profiling slide.
func ProfilingProfile() segrender.Profile {
	return segrender.Profile{
		Name:         "slide",
		CornerRadius: 3,
		StrokeWidth:  3,
		MinLabelW:    24,
		MinLabelH:    16,
		NameDivW:     7,
		NameDivH:     3.5,
		NameCap:      16,
		NameMin:      7,
		QtyDivW:      8,
		QtyDivH:      4.5,
		QtyCap:       14,
		QtyMin:       7,
		TextPadding:  6,
		LineSpacing:  1.1,
		QtyGap:       3,
	}
}

// Profiling is the computed geometry of the profiling slide.
type Profiling struct {
	Columns []partition.Span
	Totals  []string
	Grouped []segrender.Region
	Panel   partition.Box
	Treemap []segrender.Region

	// Undecided is the formatted total of the treemap.
	Undecided string
}

// LayoutProfiling places Block A as hardness columns and Block B as a
// squarified treemap inside the "Sin opinión" panel.
func LayoutProfiling(p Projection) Profiling {
	b := (&study.Study{BlockA: p.BlockA, BlockB: p.BlockB}).MicrosegmentationSeed()

	area := partition.Box{
		X: profilingLeft,
		Y: profilingTop,
		W: profilingWidth - panelWidth - panelGap,
		H: profilingHeight,
	}
	items := b.Items(board.Grouped)
	segs := b.Segments(board.Grouped)

	var out Profiling
	out.Columns = partition.Columns(items, b.Groups(), area)
	for _, c := range out.Columns {
		out.Totals = append(out.Totals, partition.FormatTotal(b.GroupTotal(c.Group)))
	}
	for _, r := range partition.Grouped(items, b.Groups(), area) {
		out.Grouped = append(out.Grouped, regionOf(r, segs[r.Index]))
	}

	out.Undecided = partition.FormatTotal(b.UngroupedTotal())
	out.Panel = partition.Box{X: area.X + area.W + panelGap, Y: profilingTop, W: panelWidth, H: profilingHeight}
	out.Treemap = treemap(b.Segments(board.Ungrouped), partition.Box{
		X: out.Panel.X + 5,
		Y: out.Panel.Y + 5,
		W: out.Panel.W - 10,
		H: out.Panel.H - 10,
	})
	return out
}

func regionOf(r partition.Rect, s board.Segment) segrender.Region {
	return segrender.Region{Rect: r, Label: s.Name, Quantity: s.Quantity, Color: s.Color}
}

// treemap squarifies segments with positive weight into box. Regions come
// out largest first.
func treemap(segs []board.Segment, box partition.Box) []segrender.Region {
	items := make([]partition.Item, len(segs))
	for i, s := range segs {
		items[i] = partition.Item{Key: s.Name, Weight: s.Weight()}
	}
	var out []segrender.Region
	for _, r := range partition.Squarify(items, box) {
		out = append(out, regionOf(r, segs[r.Index]))
	}
	return out
}

// DigitalProfiling draws slide h: party columns split by hardness tier with
// their totals above, next to the undecided population treemap.
func DigitalProfiling(dc *gg.Context, p Projection) {
	drawHeader(dc, header{
		Title:    "h. Perfilado digital electoral",
		Subtitle: p.Place() + ": " + Thousands(p.DigitalUniverse),
	})

	l := LayoutProfiling(p)
	label := style{12, fonts.Bold, black}
	for i, c := range l.Columns {
		textCenter(dc, c.Group, c.X+c.W/2, labelTop+8, label)
		textCenter(dc, l.Totals[i], c.X+c.W/2, labelTop+24, label)
	}
	cx := l.Panel.X + l.Panel.W/2
	textCenter(dc, "Sin opinión", cx, labelTop+8, label)
	textCenter(dc, l.Undecided, cx, labelTop+24, label)

	r := segrender.New(nil, ProfilingProfile())
	r.Draw(dc, l.Grouped)

	dc.DrawRoundedRectangle(l.Panel.X, l.Panel.Y, l.Panel.W, l.Panel.H, 8)
	dc.SetColor(hex("#4CAF50"))
	dc.SetLineWidth(3)
	dc.SetDash(9, 6)
	dc.Stroke()
	dc.SetDash()
	r.Draw(dc, l.Treemap)

	drawFooter(dc, p.DateLine(), false)
}
