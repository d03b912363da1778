package partition

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/filmina/pkg/errors"
)

// Template is a declarative, name-keyed layout of nested rows and cells.
//
// Rows stack vertically and split their parent's height by fraction; rows
// with no height share whatever fraction is left equally. Cells sit side by
// side within a row and split its width by fraction, left to right. A cell
// either names a Key or nests further Rows.
type Template struct {
	Name string `yaml:"name" json:"name"`
	Rows []Row  `yaml:"rows" json:"rows"`
}

// Row is one horizontal band of a template.
type Row struct {
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Cells  []Cell  `yaml:"cells" json:"cells"`
	// RequireAll places the row's keyed cells only when every one of them
	// has a matching item.
	RequireAll bool `yaml:"require_all,omitempty" json:"require_all,omitempty"`
}

// Cell is one slot of a row.
type Cell struct {
	Key   string  `yaml:"key,omitempty" json:"key,omitempty"`
	Width float64 `yaml:"width" json:"width"`
	Rows  []Row   `yaml:"rows,omitempty" json:"rows,omitempty"`
}

//go:embed templates/microsegmentation.yaml
var microsegmentationYAML []byte

var defaultTemplate = sync.OnceValue(func() *Template {
	t, err := ParseTemplate(microsegmentationYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded template: %v", err))
	}
	return t
})

// DefaultTemplate returns the built-in layout for the ungrouped population pool.
// The returned template is shared and must not be modified.
func DefaultTemplate() *Template {
	return defaultTemplate()
}

// LoadTemplate decodes and validates a YAML template.
func LoadTemplate(r io.Reader) (*Template, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var t Template
	if err := dec.Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode template")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseTemplate is LoadTemplate for an in-memory document.
func ParseTemplate(data []byte) (*Template, error) {
	return LoadTemplate(bytes.NewReader(data))
}

// Validate checks fractions and key uniqueness.
func (t *Template) Validate() error {
	if len(t.Rows) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %q has no rows", t.Name)
	}
	seen := map[string]bool{}
	return validateRows(t.Rows, "rows", seen)
}

func validateRows(rows []Row, path string, seen map[string]bool) error {
	sum := 0.0
	for i, row := range rows {
		rp := fmt.Sprintf("%s[%d]", path, i)
		if row.Height < 0 || row.Height > 1+eps {
			return errors.New(errors.ErrCodeInvalidTemplate, "%s: height %v outside [0,1]", rp, row.Height)
		}
		sum += row.Height
		if len(row.Cells) == 0 {
			return errors.New(errors.ErrCodeInvalidTemplate, "%s: no cells", rp)
		}

		wsum := 0.0
		for j, cell := range row.Cells {
			cp := fmt.Sprintf("%s.cells[%d]", rp, j)
			if cell.Width <= 0 || cell.Width > 1+eps {
				return errors.New(errors.ErrCodeInvalidTemplate, "%s: width %v outside (0,1]", cp, cell.Width)
			}
			wsum += cell.Width

			switch {
			case cell.Key != "" && len(cell.Rows) > 0:
				return errors.New(errors.ErrCodeInvalidTemplate, "%s: cell has both key and rows", cp)
			case cell.Key == "" && len(cell.Rows) == 0:
				return errors.New(errors.ErrCodeInvalidTemplate, "%s: cell needs a key or rows", cp)
			case cell.Key != "":
				if seen[cell.Key] {
					return errors.New(errors.ErrCodeInvalidTemplate, "%s: duplicate key %q", cp, cell.Key)
				}
				seen[cell.Key] = true
			default:
				if err := validateRows(cell.Rows, cp+".rows", seen); err != nil {
					return err
				}
			}
		}
		if wsum > 1+eps {
			return errors.New(errors.ErrCodeInvalidTemplate, "%s: widths sum to %v", rp, wsum)
		}
	}
	if sum > 1+eps {
		return errors.New(errors.ErrCodeInvalidTemplate, "%s: heights sum to %v", path, sum)
	}
	return nil
}

// Keys returns every slot key in template order.
func (t *Template) Keys() []string {
	var keys []string
	var walk func([]Row)
	walk = func(rows []Row) {
		for _, row := range rows {
			for _, cell := range row.Cells {
				if cell.Key != "" {
					keys = append(keys, cell.Key)
				} else {
					walk(cell.Rows)
				}
			}
		}
	}
	walk(t.Rows)
	return keys
}

// Layout places every item whose Key names a slot. Slots without a matching
// item are omitted and nothing reflows into them. When several items share
// a key the last one wins. Results follow template order.
func (t *Template) Layout(items []Item, box Box) []Rect {
	byKey := make(map[string]int, len(items))
	for i, it := range items {
		byKey[it.Key] = i
	}
	var rects []Rect
	placeRows(t.Rows, box, items, byKey, &rects)
	return rects
}

func placeRows(rows []Row, box Box, items []Item, byKey map[string]int, out *[]Rect) {
	fixed, open := 0.0, 0
	for _, row := range rows {
		if row.Height > 0 {
			fixed += row.Height
		} else {
			open++
		}
	}
	share := 0.0
	if open > 0 {
		share = max(1-fixed, 0) / float64(open)
	}

	y := box.Y
	for _, row := range rows {
		frac := row.Height
		if frac <= 0 {
			frac = share
		}
		h := box.H * frac

		if !row.RequireAll || rowComplete(row, byKey) {
			x := box.X
			for _, cell := range row.Cells {
				w := box.W * cell.Width
				if cell.Key == "" {
					placeRows(cell.Rows, Box{X: x, Y: y, W: w, H: h}, items, byKey, out)
				} else if i, ok := byKey[cell.Key]; ok {
					*out = append(*out, Rect{Index: i, Key: cell.Key, X: x, Y: y, W: w, H: h})
				}
				x += w
			}
		}
		y += h
	}
}

func rowComplete(row Row, byKey map[string]int) bool {
	for _, cell := range row.Cells {
		if cell.Key == "" {
			continue
		}
		if _, ok := byKey[cell.Key]; !ok {
			return false
		}
	}
	return true
}
