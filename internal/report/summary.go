// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package report

import (
	"sort"

	"github.com/platform-engineering-labs/fxrefs/internal/effectref"
)

// EffectTotal aggregates the references to one effect across the whole run.
type EffectTotal struct {
	EffectPath string                 `json:"effectPath" yaml:"effectPath"`
	EffectName string                 `json:"effectName" yaml:"effectName"`
	Documents  int                    `json:"documents" yaml:"documents"`
	References int                    `json:"references" yaml:"references"`
	ByKind     map[effectref.Kind]int `json:"byKind" yaml:"byKind"`

	lastDocument string
}

// Summary is a Sink that totals rows per effect.
type Summary struct {
	effects map[string]*EffectTotal
	byKind  map[effectref.Kind]int
	rows    int
}

func NewSummary() *Summary {
	return &Summary{
		effects: make(map[string]*EffectTotal),
		byKind:  make(map[effectref.Kind]int),
	}
}

func (s *Summary) Write(row effectref.Row) error {
	total, ok := s.effects[row.EffectPath]
	if !ok {
		total = &EffectTotal{
			EffectPath: row.EffectPath,
			EffectName: row.EffectName,
			ByKind:     make(map[effectref.Kind]int),
		}
		s.effects[row.EffectPath] = total
	}

	// rows of one document arrive together
	if total.lastDocument != row.ResourcePath {
		total.Documents++
		total.lastDocument = row.ResourcePath
	}
	total.References += row.Count
	total.ByKind[row.Kind] += row.Count

	s.byKind[row.Kind] += row.Count
	s.rows++
	return nil
}

// Effects returns the number of distinct effects referenced.
func (s *Summary) Effects() int {
	return len(s.effects)
}

func (s *Summary) Rows() int {
	return s.rows
}

// References returns total references per kind.
func (s *Summary) References() map[effectref.Kind]int {
	out := make(map[effectref.Kind]int, len(s.byKind))
	for k, v := range s.byKind {
		out[k] = v
	}
	return out
}

// Top returns the n most referenced effects, ties broken by path. n <= 0 returns all.
func (s *Summary) Top(n int) []EffectTotal {
	totals := make([]EffectTotal, 0, len(s.effects))
	for _, t := range s.effects {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].References == totals[j].References {
			return totals[i].EffectPath < totals[j].EffectPath
		}
		return totals[i].References > totals[j].References
	})

	if n > 0 && n < len(totals) {
		totals = totals[:n]
	}
	return totals
}
