// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package effectref

import (
	"fmt"
	"strings"
)

// Kind is the mechanism a document uses to point at an effect resource.
type Kind string

const (
	// KindInlinePath is an effect path written into a MonoBehaviour field.
	KindInlinePath Kind = "effect_helper"
	// KindPrefabInstance is a nested prefab instance whose source is an effect prefab.
	KindPrefabInstance Kind = "prefab_instance"
	// KindTimelineID is a timeline clip naming an effect by its effect table ID.
	KindTimelineID Kind = "timeline_effect_id"
)

// Kinds lists every reference kind in report order.
var Kinds = []Kind{KindInlinePath, KindPrefabInstance, KindTimelineID}

// Valid reports whether k is one of the known reference kinds.
func (k Kind) Valid() bool {
	for _, kind := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Header is the fixed column header of the report table.
var Header = []string{"ResourceName", "ResourcePath", "EffectName", "EffectPath", "Type", "RefCount"}

// Row is one (source document, effect path, kind) line of the report.
type Row struct {
	ResourceName string `json:"ResourceName" yaml:"ResourceName"`
	ResourcePath string `json:"ResourcePath" yaml:"ResourcePath"`
	EffectName   string `json:"EffectName" yaml:"EffectName"`
	EffectPath   string `json:"EffectPath" yaml:"EffectPath"`
	Kind         Kind   `json:"Type" yaml:"Type"`
	Count        int    `json:"RefCount" yaml:"RefCount"`
}

// Record returns the row as report cells in Header order.
func (r Row) Record() []string {
	return []string{r.ResourceName, r.ResourcePath, r.EffectName, r.EffectPath, string(r.Kind), fmt.Sprintf("%d", r.Count)}
}

// EffectName returns the short name of an effect path, the text after the last slash.
func EffectName(effectPath string) string {
	return effectPath[strings.LastIndex(effectPath, "/")+1:]
}

// EffectRef tallies the references of one source document to one effect resource.
type EffectRef struct {
	Path   string
	Name   string
	kinds  []Kind
	counts map[Kind]int
}

func newEffectRef(path string) *EffectRef {
	return &EffectRef{
		Path:   path,
		Name:   EffectName(path),
		counts: make(map[Kind]int),
	}
}

func (e *EffectRef) add(kind Kind) {
	if _, ok := e.counts[kind]; !ok {
		e.kinds = append(e.kinds, kind)
	}
	e.counts[kind]++
}

// Count returns how many times the effect was referenced with the given kind.
func (e *EffectRef) Count(kind Kind) int {
	return e.counts[kind]
}

// Kinds returns the reference kinds seen for this effect in first-seen order.
func (e *EffectRef) Kinds() []Kind {
	return append([]Kind(nil), e.kinds...)
}

// RefSet collects the effect references of a single source document. It is
// created fresh for every document and is not safe for concurrent use.
type RefSet struct {
	FileName string
	FilePath string

	order []string
	refs  map[string]*EffectRef
}

func NewRefSet(fileName, filePath string) *RefSet {
	return &RefSet{
		FileName: fileName,
		FilePath: filePath,
		refs:     make(map[string]*EffectRef),
	}
}

// Add records one reference to effectPath with the given kind. Unknown kinds
// are not recorded.
func (s *RefSet) Add(effectPath string, kind Kind) {
	if !kind.Valid() {
		return
	}
	ref, ok := s.refs[effectPath]
	if !ok {
		ref = newEffectRef(effectPath)
		s.refs[effectPath] = ref
		s.order = append(s.order, effectPath)
	}
	ref.add(kind)
}

// Len returns the number of distinct effect paths referenced.
func (s *RefSet) Len() int {
	return len(s.order)
}

// Rows flattens the set in first-seen effect order, then first-seen kind order.
func (s *RefSet) Rows() []Row {
	var rows []Row
	for _, path := range s.order {
		ref := s.refs[path]
		for _, kind := range ref.Kinds() {
			rows = append(rows, Row{
				ResourceName: s.FileName,
				ResourcePath: s.FilePath,
				EffectName:   ref.Name,
				EffectPath:   ref.Path,
				Kind:         kind,
				Count:        ref.Count(kind),
			})
		}
	}
	return rows
}
