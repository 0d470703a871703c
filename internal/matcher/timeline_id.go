// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package matcher

import (
	"log/slog"
	"strings"

	"github.com/platform-engineering-labs/fxrefs/internal/effectref"
	"github.com/platform-engineering-labs/fxrefs/internal/unityyaml"
)

const DefaultEffectIDField = "EffectID"

// TimelineID finds timeline clips that reference an effect by its effect
// table ID.
type TimelineID struct {
	Field   string
	Effects IDResolver
}

func NewTimelineID(effects IDResolver, field string) *TimelineID {
	if field == "" {
		field = DefaultEffectIDField
	}
	return &TimelineID{Field: field, Effects: effects}
}

func (m *TimelineID) Kind() effectref.Kind {
	return effectref.KindTimelineID
}

func (m *TimelineID) Search(doc *unityyaml.Document, refs *effectref.RefSet) error {
	for _, entry := range doc.Filter(ClassMonoBehaviour, m.Field) {
		id := strings.TrimSpace(entry.Field(m.Field).String())
		if isUnsetID(id) {
			continue
		}

		effectPath, ok := m.Effects.Lookup(id)
		if !ok {
			slog.Warn("Unresolved timeline effect ID", "id", id, "path", doc.Path, "fileID", entry.FileID)
			continue
		}

		refs.Add(effectPath, m.Kind())
	}
	return nil
}

func isUnsetID(id string) bool {
	return id == "" || strings.Trim(id, "0") == ""
}
