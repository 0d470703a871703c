// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package matcher

import (
	"strings"

	"github.com/platform-engineering-labs/fxrefs/internal/effectref"
	"github.com/platform-engineering-labs/fxrefs/internal/index"
	"github.com/platform-engineering-labs/fxrefs/internal/unityyaml"
)

const DefaultEffectPathField = "EffectPath"

// InlinePath finds effect helper components that store the effect path
// directly, without its .prefab suffix.
type InlinePath struct {
	Field string
}

func NewInlinePath() *InlinePath {
	return &InlinePath{Field: DefaultEffectPathField}
}

func (m *InlinePath) Kind() effectref.Kind {
	return effectref.KindInlinePath
}

func (m *InlinePath) Search(doc *unityyaml.Document, refs *effectref.RefSet) error {
	for _, entry := range doc.Filter(ClassMonoBehaviour, m.Field) {
		value := strings.TrimSpace(entry.Field(m.Field).String())
		if value == "" {
			continue
		}
		refs.Add(index.ToSlash(value)+index.PrefabSuffix, m.Kind())
	}
	return nil
}
