// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package index

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/platform-engineering-labs/fxrefs/internal/progress"
	"github.com/platform-engineering-labs/fxrefs/internal/unityyaml"
)

// IdentityIndex maps resource GUIDs to resource paths. It is built once per
// run and only read afterwards.
type IdentityIndex struct {
	Root string

	paths      map[string]string
	duplicates int
	skipped    int
}

func NewIdentityIndex(root string) *IdentityIndex {
	return &IdentityIndex{
		Root:  root,
		paths: make(map[string]string),
	}
}

// Put records guid -> path. A GUID seen before is overwritten (last wins) and
// reported as a duplicate.
func (x *IdentityIndex) Put(guid, path string) {
	if prev, ok := x.paths[guid]; ok && prev != path {
		x.duplicates++
		slog.Warn("Duplicate resource GUID, keeping the last path", "guid", guid, "previous", prev, "path", path)
	}
	x.paths[guid] = path
}

func (x *IdentityIndex) Lookup(guid string) (string, bool) {
	p, ok := x.paths[guid]
	return p, ok
}

func (x *IdentityIndex) Len() int {
	return len(x.paths)
}

// Duplicates is the number of GUIDs that overwrote an earlier entry.
func (x *IdentityIndex) Duplicates() int {
	return x.duplicates
}

// Skipped is the number of resources whose sidecar could not be used.
func (x *IdentityIndex) Skipped() int {
	return x.skipped
}

// Entry is a single GUID -> path mapping.
type Entry struct {
	GUID string `json:"guid" yaml:"guid"`
	Path string `json:"path" yaml:"path"`
}

// Entries returns all mappings sorted by path.
func (x *IdentityIndex) Entries() []Entry {
	entries := make([]Entry, 0, len(x.paths))
	for guid, p := range x.paths {
		entries = append(entries, Entry{GUID: guid, Path: p})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path == entries[j].Path {
			return entries[i].GUID < entries[j].GUID
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

type BuildOptions struct {
	// Progress receives a progress bar while sidecars are read. Nil disables it.
	Progress io.Writer
}

// BuildIdentityIndex indexes every resource below dir by the GUID found in its
// .meta sidecar. Resources whose sidecar is missing or unreadable are logged
// and skipped.
func BuildIdentityIndex(dir string, opts BuildOptions) (*IdentityIndex, error) {
	slog.Info("Building effect resource index", "dir", dir)

	var resources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(d.Name(), unityyaml.MetaSuffix) {
			return nil
		}
		resources = append(resources, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list effect resources in %s: %w", dir, err)
	}

	x := NewIdentityIndex(dir)
	bar := progress.New(opts.Progress, len(resources), "indexing effects")
	for _, resource := range resources {
		bar.Step()

		meta, err := unityyaml.LoadMeta(resource + unityyaml.MetaSuffix)
		if err != nil {
			x.skipped++
			slog.Warn("Skipping effect resource without usable meta file", "path", resource, "error", err)
			continue
		}
		x.Put(meta.GUID, ToSlash(resource))
	}
	bar.Finish()

	slog.Info("Effect resource index built", "dir", dir, "resources", x.Len(), "duplicates", x.duplicates, "skipped", x.skipped)
	return x, nil
}
