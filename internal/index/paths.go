// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package index

import (
	"path"
	"path/filepath"
	"strings"
)

// EffectRootMarker is the first path segment of every canonical effect path.
const EffectRootMarker = "Effects/"

const PrefabSuffix = ".prefab"

// resourcesDir is the Unity folder every effect root lives in.
const resourcesDir = "Resources/"

// CanonicalPath trims an effect resource path so that it starts at the
// Effects root, independent of where the asset repository is checked out.
// The last Resources/Effects/ segment is the root, so checkout directories
// named Effects do not leak into the result. Paths without it are returned
// slash separated but otherwise intact.
func CanonicalPath(p string) string {
	p = ToSlash(p)
	if strings.HasPrefix(p, EffectRootMarker) {
		return p
	}
	if rest, ok := strings.CutPrefix(p, resourcesDir+EffectRootMarker); ok {
		return EffectRootMarker + rest
	}
	if i := strings.LastIndex(p, "/"+resourcesDir+EffectRootMarker); i >= 0 {
		return p[i+1+len(resourcesDir):]
	}
	return p
}

// ToSlash normalises both OS and Windows separators to forward slashes.
func ToSlash(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// WithPrefabSuffix appends .prefab to paths that carry no extension.
func WithPrefabSuffix(p string) string {
	if path.Ext(p) == "" {
		return p + PrefabSuffix
	}
	return p
}
