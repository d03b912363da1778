package partition

// Grouped lays items out as one column per non-empty group.
//
// Columns follow the declaration order of groups and share box.W equally;
// groups without items reserve no space and repeated names count once.
// Items whose group is not declared are ignored. Within a column items are
// stacked top to bottom in input order, each taking weight/total of the
// column height, or an equal share when the group total is zero.
//
// The last column and the last item of each column absorb rounding so that
// column widths sum to box.W and item heights sum to box.H exactly.
func Grouped(items []Item, groups []string, box Box) []Rect {
	members := make(map[string][]int, len(groups))
	for i, it := range items {
		members[it.Group] = append(members[it.Group], i)
	}

	bottom := box.Y + box.H
	rects := make([]Rect, 0, len(items))
	for _, col := range Columns(items, groups, box) {
		x, w := col.X, col.W
		idx := members[col.Group]
		total := 0.0
		for _, i := range idx {
			total += max(items[i].Weight, 0)
		}

		y := box.Y
		for n, i := range idx {
			frac := 1 / float64(len(idx))
			if total > 0 {
				frac = max(items[i].Weight, 0) / total
			}
			h := box.H * frac
			if n == len(idx)-1 {
				h = bottom - y
			}
			rects = append(rects, Rect{Index: i, Key: items[i].Key, X: x, Y: y, W: w, H: h})
			y += h
		}
	}
	return rects
}

// Columns returns the horizontal span of every column Grouped would produce
// for the same items, groups and box, in column order.
func Columns(items []Item, groups []string, box Box) []Span {
	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[it.Group] = true
	}
	var cols []string
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		if seen[g] || !present[g] {
			continue
		}
		seen[g] = true
		cols = append(cols, g)
	}
	if len(cols) == 0 {
		return nil
	}

	colW := box.W / float64(len(cols))
	spans := make([]Span, len(cols))
	for c, g := range cols {
		x := box.X + float64(c)*colW
		w := colW
		if c == len(cols)-1 {
			w = box.X + box.W - x
		}
		spans[c] = Span{Group: g, X: x, W: w}
	}
	return spans
}
