package study

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/filmina/pkg/board"
	"github.com/matzehuels/filmina/pkg/errors"
)

func TestParseUncertainty(t *testing.T) {
	tests := []struct {
		in      string
		want    Uncertainty
		wantErr bool
	}{
		{"low", Low, false},
		{"Baja", Low, false},
		{"MEDIUM", Medium, false},
		{" media ", Medium, false},
		{"high", High, false},
		{"alta", High, false},
		{"", 0, true},
		{"extreme", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUncertainty(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidUncertainty) {
					t.Fatalf("ParseUncertainty(%q) err = %v, want INVALID_UNCERTAINTY", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseUncertainty(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestUncertaintyLabels(t *testing.T) {
	var got []string
	for _, u := range Uncertainties {
		got = append(got, u.Label())
	}
	if diff := cmp.Diff([]string{"Baja", "Media", "Alta"}, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if Uncertainty(0).Valid() {
		t.Error("zero tier reported valid")
	}
	if _, err := Uncertainty(0).MarshalText(); err == nil {
		t.Error("MarshalText(unset) = nil, want error")
	}
}

func TestNewDefaultsToMedium(t *testing.T) {
	s := New("Estudio")
	for _, sec := range s.uncertainties() {
		if *sec.tier != Medium {
			t.Errorf("%s = %v, want medium", sec.name, *sec.tier)
		}
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Study)
		want   errors.Code
	}{
		{"unset tier", func(s *Study) { s.BlockBUncertainty = 0 }, errors.ErrCodeInvalidUncertainty},
		{"too many adjectives", func(s *Study) {
			s.Candidates[2].Adjectives = append(s.Candidates[2].Adjectives, "Quinto")
		}, errors.ErrCodeCapacityExceeded},
		{"negative universe", func(s *Study) { s.DigitalUniverse = -1 }, errors.ErrCodeInvalidInput},
		{"negative hardness", func(s *Study) { s.BlockA[0].Angry = -5 }, errors.ErrCodeInvalidInput},
		{"negative size", func(s *Study) { s.BlockB[1].Size = -1 }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sample()
			tt.mutate(s)
			if got := errors.GetCode(s.Validate()); got != tt.want {
				t.Errorf("Validate() code = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSampleValid(t *testing.T) {
	if err := Sample().Validate(); err != nil {
		t.Fatalf("Sample().Validate() = %v", err)
	}
}

func TestAddAdjectiveCapacity(t *testing.T) {
	var c Candidate
	for i, adj := range []string{"Uno", "Dos", "Tres", "Cuatro"} {
		if err := c.AddAdjective(adj); err != nil {
			t.Fatalf("AddAdjective #%d = %v", i, err)
		}
	}
	if err := c.AddAdjective("Cinco"); !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Errorf("fifth AddAdjective() = %v, want CAPACITY_EXCEEDED", err)
	}
	if !c.RemoveAdjective(1) || c.RemoveAdjective(10) {
		t.Error("RemoveAdjective bounds handling")
	}
	if diff := cmp.Diff([]string{"Uno", "Tres", "Cuatro"}, c.Adjectives); diff != "" {
		t.Errorf("adjectives mismatch (-want +got):\n%s", diff)
	}
}

func candidateIDs(s *Study) []string {
	ids := make([]string, len(s.Candidates))
	for i, c := range s.Candidates {
		ids[i] = c.ID
	}
	return ids
}

func TestMoveCandidate(t *testing.T) {
	s := Sample()
	if s.MoveCandidateUp("cand_1") {
		t.Error("MoveCandidateUp(first) = true")
	}
	if s.MoveCandidateDown("cand_4") {
		t.Error("MoveCandidateDown(last) = true")
	}
	if s.MoveCandidateUp("missing") {
		t.Error("MoveCandidateUp(missing) = true")
	}
	s.MoveCandidateUp("cand_3")
	s.MoveCandidateDown("cand_1")
	want := []string{"cand_3", "cand_1", "cand_2", "cand_4"}
	if diff := cmp.Diff(want, candidateIDs(s)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestClone(t *testing.T) {
	s := Sample()
	c := s.Clone()
	c.Candidates[0].Adjectives[0] = "changed"
	c.BlockA[0].Hard = 0
	c.PositivePoints[0] = "changed"
	if s.Candidates[0].Adjectives[0] == "changed" || s.BlockA[0].Hard == 0 || s.PositivePoints[0] == "changed" {
		t.Error("Clone shares storage with original")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			want := Sample()
			var buf bytes.Buffer
			if err := Encode(&buf, want, f); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), "medium") {
				t.Errorf("tiers not encoded by name:\n%s", buf.String())
			}
			got, err := Decode(&buf, f)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("blockAUncertainty: extreme\n"), FormatYAML)
	if !errors.Is(err, errors.ErrCodeInvalidUncertainty) {
		t.Errorf("Decode(bad tier) = %v, want INVALID_UNCERTAINTY", err)
	}
	_, err = Decode(strings.NewReader("{"), FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Decode(truncated) = %v, want INVALID_INPUT", err)
	}
	if _, err := Decode(strings.NewReader(""), "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode(xml) = %v, want INVALID_FORMAT", err)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "study.yml")
	if err := SaveFile(path, Sample()); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != Sample().Title {
		t.Errorf("Title = %q", got.Title)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadFile(missing) = %v, want FILE_NOT_FOUND", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(filepath.Join(dir, "x.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("LoadFile(.txt) = %v, want INVALID_FORMAT", err)
	}
}

func TestMicrosegmentationSeed(t *testing.T) {
	b := Sample().MicrosegmentationSeed()
	if diff := cmp.Diff([]string{"Morena", "PAN", "MC", "PRI"}, b.Groups()); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	morena := b.GroupSegments("Morena")
	var names, qty []string
	for _, s := range morena {
		names = append(names, s.Name)
		qty = append(qty, s.Quantity)
	}
	if diff := cmp.Diff([]string{"Morena Oportunista", "Morena Enojado", "Morena Crítico", "Morena Duro"}, names); diff != "" {
		t.Errorf("tiers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"50 K", "30 K", "70 K", "120 K"}, qty); diff != "" {
		t.Errorf("quantities mismatch (-want +got):\n%s", diff)
	}
	if got := b.GroupTotal("Morena"); got != 270 {
		t.Errorf("Morena total = %v, want 270", got)
	}
	if got := len(b.Segments(board.Ungrouped)); got != 6 {
		t.Errorf("ungrouped = %d, want 6", got)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMicrosegmentationSeedEmptyBlocks(t *testing.T) {
	b := New("vacío").MicrosegmentationSeed()
	ex := board.Example()
	if len(b.Segments(board.Grouped)) != len(ex.Segments(board.Grouped)) ||
		len(b.Segments(board.Ungrouped)) != len(ex.Segments(board.Ungrouped)) {
		t.Errorf("empty study did not fall back to example pools")
	}
}

func TestMicrosegmentationSeedSkipsDuplicateParties(t *testing.T) {
	s := New("dup")
	s.BlockA = []BlockARow{{Party: "PAN", Hard: 1}, {Party: " PAN ", Hard: 2}, {Party: "", Hard: 3}}
	b := s.MicrosegmentationSeed()
	if diff := cmp.Diff([]string{"PAN"}, b.Groups()); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if got := len(b.Segments(board.Grouped)); got != 4 {
		t.Errorf("grouped = %d, want 4", got)
	}
	want := []BlockARow{{Party: " PAN ", Hard: 2}, {Party: "", Hard: 3}}
	if diff := cmp.Diff(want, s.SkippedBlockA()); diff != "" {
		t.Errorf("SkippedBlockA() mismatch (-want +got):\n%s", diff)
	}
}

func TestSkippedBlockAPalettesFollowKeptRows(t *testing.T) {
	s := New("slots")
	s.BlockA = []BlockARow{{Party: "", Hard: 1}, {Party: "PRI", Hard: 1}}
	if got := len(s.SkippedBlockA()); got != 1 {
		t.Fatalf("SkippedBlockA() = %d rows, want 1", got)
	}
	segs := s.MicrosegmentationSeed().Segments(board.Grouped)
	if len(segs) != 4 || segs[0].Color != tierPalettes[0][0] {
		t.Errorf("first kept party should take the first palette, got %+v", segs)
	}
	if Sample().SkippedBlockA() != nil {
		t.Errorf("sample study should seed every Block A row")
	}
}

func TestProfileSeed(t *testing.T) {
	got := Sample().ProfileSeed()
	if got.Place != "Monterrey" || got.Archetype != "Impulsor" || got.Office != DefaultOffice {
		t.Errorf("ProfileSeed() = %+v", got)
	}
	if len(got.Positive) != 3 || len(got.Negative) != 3 {
		t.Errorf("points = %d/%d, want 3/3", len(got.Positive), len(got.Negative))
	}

	s := New("vacío")
	s.PositivePoints = []string{"  ", ""}
	empty := s.ProfileSeed()
	want := ProfileSeed{
		Place:     DefaultPlace,
		Office:    DefaultOffice,
		Archetype: DefaultArchetype,
		Positive:  DefaultPositivePoints,
		Negative:  DefaultNegativePoints,
	}
	if diff := cmp.Diff(want, empty); diff != "" {
		t.Errorf("ProfileSeed() mismatch (-want +got):\n%s", diff)
	}
}

func TestQuantity(t *testing.T) {
	for in, want := range map[float64]string{120: "120 K", 0: "0 K", 12.5: "12.5 K"} {
		if got := Quantity(in); got != want {
			t.Errorf("Quantity(%v) = %q, want %q", in, got, want)
		}
	}
}
