// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package matcher

import (
	"github.com/platform-engineering-labs/fxrefs/internal/effectref"
	"github.com/platform-engineering-labs/fxrefs/internal/index"
	"github.com/platform-engineering-labs/fxrefs/internal/unityyaml"
)

// PrefabInstance finds effect prefabs placed directly in a document as prefab
// instances, recognised by the GUID their property overrides target.
type PrefabInstance struct {
	Effects GUIDResolver
}

func NewPrefabInstance(effects GUIDResolver) *PrefabInstance {
	return &PrefabInstance{Effects: effects}
}

func (m *PrefabInstance) Kind() effectref.Kind {
	return effectref.KindPrefabInstance
}

func (m *PrefabInstance) Search(doc *unityyaml.Document, refs *effectref.RefSet) error {
	for _, entry := range doc.Classes(ClassPrefabInstance, ClassLegacyPrefab) {
		for _, mod := range entry.Field("m_Modification", "m_Modifications").Items() {
			guid := mod.Get("target", "guid").String()
			if guid == "" {
				continue
			}

			effectPath, ok := m.Effects.Lookup(guid)
			if !ok {
				continue
			}

			refs.Add(index.CanonicalPath(effectPath), m.Kind())
			// every override of one instance targets the same prefab
			break
		}
	}
	return nil
}
