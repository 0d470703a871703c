// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package matcher finds effect references inside parsed Unity documents.
// Each Matcher recognises one reference mechanism and records what it finds
// into the document's RefSet.
package matcher

import (
	"github.com/platform-engineering-labs/fxrefs/internal/effectref"
	"github.com/platform-engineering-labs/fxrefs/internal/unityyaml"
)

type Matcher interface {
	Kind() effectref.Kind
	// Search records every reference found in doc. Finding nothing is not an error.
	Search(doc *unityyaml.Document, refs *effectref.RefSet) error
}

// GUIDResolver resolves resource GUIDs to resource paths.
type GUIDResolver interface {
	Lookup(guid string) (string, bool)
}

// IDResolver resolves effect IDs to canonical effect paths.
type IDResolver interface {
	Lookup(id string) (string, bool)
}

const (
	ClassMonoBehaviour  = "MonoBehaviour"
	ClassPrefabInstance = "PrefabInstance"
	// Unity 2018.2 and earlier serialized instances as "Prefab".
	ClassLegacyPrefab = "Prefab"
)
