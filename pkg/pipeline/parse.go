package pipeline

import (
	"io"
	"os"

	"github.com/matzehuels/filmina/pkg/board"
	"github.com/matzehuels/filmina/pkg/chart"
	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/partition"
	"github.com/matzehuels/filmina/pkg/study"
)

// BuildChart projects s into the chart selected by opts. The board chart
// draws opts.Board when set; otherwise it is seeded from the study's
// Block A and Block B tables.
func BuildChart(s *study.Study, opts Options) (chart.Chart, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil study")
	}
	switch opts.Kind {
	case chart.KindMicrosegmentation:
		b := opts.Board
		if b == nil {
			b = s.MicrosegmentationSeed()
		}
		return &chart.Microsegmentation{Board: b, Template: opts.Template}, nil
	case chart.KindProfile:
		p := chart.NewProfile(s.ProfileSeed())
		p.Date = opts.Date
		return p, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q", opts.Kind)
	}
}

// LoadBoard reads an edited board document.
func LoadBoard(r io.Reader) (*board.Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read board")
	}
	b := board.New()
	if err := b.UnmarshalJSON(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse board")
	}
	return b, nil
}

// LoadBoardFile reads an edited board document from path.
func LoadBoardFile(path string) (*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open board %s", path)
	}
	defer f.Close()
	return LoadBoard(f)
}

// LoadTemplateFile reads an ungrouped layout template from path.
func LoadTemplateFile(path string) (*partition.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open template %s", path)
	}
	defer f.Close()
	return partition.LoadTemplate(f)
}
