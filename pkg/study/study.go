// Package study defines the Study record charts and slides are built from.
//
// A Study is plain data: identity and timestamps are assigned by the
// store, never by chart or slide code, and nothing downstream mutates it.
// Charts read an initial-state projection ([Study.MicrosegmentationSeed],
// [Study.ProfileSeed]) and keep their own edits elsewhere.
package study

import (
	"slices"
	"time"

	"github.com/matzehuels/filmina/pkg/errors"
)

// MaxAdjectives bounds the adjectives of one candidate.
const MaxAdjectives = 4

// Candidate is one profiled candidate. Candidates are ordered by the user.
type Candidate struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Party         string   `json:"party" yaml:"party"`
	Adjectives    []string `json:"adjectives" yaml:"adjectives"`
	DigitalSignal string   `json:"digitalSignal" yaml:"digitalSignal"`
}

// AddAdjective appends adj, failing once the candidate holds MaxAdjectives.
func (c *Candidate) AddAdjective(adj string) error {
	if len(c.Adjectives) >= MaxAdjectives {
		return errors.New(errors.ErrCodeCapacityExceeded, "candidate %q already has %d adjectives", c.Name, MaxAdjectives)
	}
	if err := errors.ValidateLabel(adj); err != nil {
		return err
	}
	c.Adjectives = append(c.Adjectives, adj)
	return nil
}

// RemoveAdjective deletes the adjective at index i.
func (c *Candidate) RemoveAdjective(i int) bool {
	if i < 0 || i >= len(c.Adjectives) {
		return false
	}
	c.Adjectives = slices.Delete(c.Adjectives, i, i+1)
	return true
}

// BlockARow is a party's hardness segment: four independent non-negative
// weights with no required sum.
type BlockARow struct {
	ID          string  `json:"id" yaml:"id"`
	Party       string  `json:"party" yaml:"party"`
	Hard        float64 `json:"hard" yaml:"hard"`
	Angry       float64 `json:"angry" yaml:"angry"`
	Critical    float64 `json:"critical" yaml:"critical"`
	Opportunist float64 `json:"opportunist" yaml:"opportunist"`
}

// Total is the sum of the four weights.
func (r BlockARow) Total() float64 {
	return r.Hard + r.Angry + r.Critical + r.Opportunist
}

// BlockBRow is a population segment.
type BlockBRow struct {
	ID          string  `json:"id" yaml:"id"`
	Segment     string  `json:"segment" yaml:"segment"`
	Description string  `json:"description" yaml:"description"`
	Size        float64 `json:"size" yaml:"size"`
}

// Study is the persisted unit of work.
type Study struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`

	Municipality string `json:"municipality,omitempty" yaml:"municipality,omitempty"`
	State        string `json:"state,omitempty" yaml:"state,omitempty"`

	Archetype            string      `json:"archetype" yaml:"archetype"`
	ArchetypeUncertainty Uncertainty `json:"archetypeUncertainty" yaml:"archetypeUncertainty"`

	PositivePoints            []string    `json:"positivePoints" yaml:"positivePoints"`
	PositivePointsUncertainty Uncertainty `json:"positivePointsUncertainty" yaml:"positivePointsUncertainty"`
	NegativePoints            []string    `json:"negativePoints" yaml:"negativePoints"`
	NegativePointsUncertainty Uncertainty `json:"negativePointsUncertainty" yaml:"negativePointsUncertainty"`

	Candidates            []Candidate `json:"candidates" yaml:"candidates"`
	CandidatesUncertainty Uncertainty `json:"candidatesUncertainty" yaml:"candidatesUncertainty"`

	DigitalUniverse            int         `json:"digitalUniverse" yaml:"digitalUniverse"`
	DigitalUniverseUncertainty Uncertainty `json:"digitalUniverseUncertainty" yaml:"digitalUniverseUncertainty"`

	BlockA            []BlockARow `json:"blockA" yaml:"blockA"`
	BlockAUncertainty Uncertainty `json:"blockAUncertainty" yaml:"blockAUncertainty"`
	BlockB            []BlockBRow `json:"blockB" yaml:"blockB"`
	BlockBUncertainty Uncertainty `json:"blockBUncertainty" yaml:"blockBUncertainty"`
}

// New returns an empty study with every tier set to Medium.
func New(title string) *Study {
	s := &Study{Title: title}
	s.SetDefaultUncertainties()
	return s
}

// SetDefaultUncertainties sets every unset tier to Medium.
func (s *Study) SetDefaultUncertainties() {
	for _, u := range s.uncertainties() {
		if *u.tier == 0 {
			*u.tier = Medium
		}
	}
}

type section struct {
	name string
	tier *Uncertainty
}

func (s *Study) uncertainties() []section {
	return []section{
		{"archetype", &s.ArchetypeUncertainty},
		{"positive points", &s.PositivePointsUncertainty},
		{"negative points", &s.NegativePointsUncertainty},
		{"candidates", &s.CandidatesUncertainty},
		{"digital universe", &s.DigitalUniverseUncertainty},
		{"block A", &s.BlockAUncertainty},
		{"block B", &s.BlockBUncertainty},
	}
}

// Validate checks tiers, capacities and numeric ranges.
func (s *Study) Validate() error {
	for _, u := range s.uncertainties() {
		if !u.tier.Valid() {
			return errors.New(errors.ErrCodeInvalidUncertainty, "%s: uncertainty tier not set", u.name)
		}
	}
	for _, c := range s.Candidates {
		if len(c.Adjectives) > MaxAdjectives {
			return errors.New(errors.ErrCodeCapacityExceeded, "candidate %q has %d adjectives (max %d)", c.Name, len(c.Adjectives), MaxAdjectives)
		}
	}
	if s.DigitalUniverse < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "digital universe must be non-negative, got %d", s.DigitalUniverse)
	}
	for _, r := range s.BlockA {
		if r.Hard < 0 || r.Angry < 0 || r.Critical < 0 || r.Opportunist < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "block A row %q has a negative weight", r.Party)
		}
	}
	for _, r := range s.BlockB {
		if r.Size < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "block B row %q has a negative size", r.Segment)
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *Study) Clone() *Study {
	c := *s
	c.PositivePoints = slices.Clone(s.PositivePoints)
	c.NegativePoints = slices.Clone(s.NegativePoints)
	c.Candidates = make([]Candidate, len(s.Candidates))
	for i, cand := range s.Candidates {
		cand.Adjectives = slices.Clone(cand.Adjectives)
		c.Candidates[i] = cand
	}
	c.BlockA = slices.Clone(s.BlockA)
	c.BlockB = slices.Clone(s.BlockB)
	return &c
}

func (s *Study) candidateIndex(id string) int {
	return slices.IndexFunc(s.Candidates, func(c Candidate) bool { return c.ID == id })
}

// MoveCandidateUp swaps the candidate with id and its predecessor. It
// returns false when the candidate is unknown or already first.
func (s *Study) MoveCandidateUp(id string) bool {
	i := s.candidateIndex(id)
	if i <= 0 {
		return false
	}
	s.Candidates[i-1], s.Candidates[i] = s.Candidates[i], s.Candidates[i-1]
	return true
}

// MoveCandidateDown swaps the candidate with id and its successor.
func (s *Study) MoveCandidateDown(id string) bool {
	i := s.candidateIndex(id)
	if i < 0 || i == len(s.Candidates)-1 {
		return false
	}
	s.Candidates[i+1], s.Candidates[i] = s.Candidates[i], s.Candidates[i+1]
	return true
}
