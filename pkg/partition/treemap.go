package partition

import (
	"cmp"
	"slices"
)

// Squarify lays items out as a squarified treemap (Bruls, Huizing and van
// Wijk) filling box. Items are placed largest first; items with no positive
// weight get no rect. Rect.Index addresses items.
func Squarify(items []Item, box Box) []Rect {
	order := make([]int, 0, len(items))
	total := 0.0
	for i, it := range items {
		if it.Weight > 0 {
			order = append(order, i)
			total += it.Weight
		}
	}
	if len(order) == 0 || box.W <= 0 || box.H <= 0 {
		return nil
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(items[b].Weight, items[a].Weight)
	})

	// Work in areas so row aspect ratios are comparable.
	scale := box.W * box.H / total
	areas := make([]float64, len(order))
	for i, idx := range order {
		areas[i] = items[idx].Weight * scale
	}

	rects := make([]Rect, 0, len(order))
	free := box
	for start := 0; start < len(order); {
		side := min(free.W, free.H)
		end := start + 1
		for end < len(order) && worst(areas[start:end+1], side) <= worst(areas[start:end], side) {
			end++
		}
		rects = layoutRow(rects, items, order[start:end], areas[start:end], &free)
		start = end
	}
	return rects
}

// worst is the largest aspect ratio in a row of areas laid along side.
func worst(row []float64, side float64) float64 {
	sum, lo, hi := 0.0, row[0], row[0]
	for _, a := range row {
		sum += a
		lo, hi = min(lo, a), max(hi, a)
	}
	s2, sum2 := side*side, sum*sum
	return max(s2*hi/sum2, sum2/(s2*lo))
}

// layoutRow places one row along the shorter side of free and shrinks free
// by the strip it used.
func layoutRow(rects []Rect, items []Item, idx []int, areas []float64, free *Box) []Rect {
	sum := 0.0
	for _, a := range areas {
		sum += a
	}
	if free.W >= free.H {
		// Vertical strip on the left.
		w := sum / free.H
		y := free.Y
		for i, a := range areas {
			h := a / w
			rects = append(rects, Rect{Index: idx[i], Key: items[idx[i]].Key, X: free.X, Y: y, W: w, H: h})
			y += h
		}
		free.X += w
		free.W -= w
	} else {
		// Horizontal strip on top.
		h := sum / free.W
		x := free.X
		for i, a := range areas {
			w := a / h
			rects = append(rects, Rect{Index: idx[i], Key: items[idx[i]].Key, X: x, Y: free.Y, W: w, H: h})
			x += w
		}
		free.Y += h
		free.H -= h
	}
	free.W, free.H = max(free.W, 0), max(free.H, 0)
	return rects
}
