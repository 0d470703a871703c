// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package index

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EffectTableRoot is the canonical directory effect table fragments are relative to.
const EffectTableRoot = "Effects/Prefabs/"

const (
	effectTableHeaderRecords = 2
	effectTableIDField       = 0
	effectTablePathField     = 2
)

// EffectTable maps effect IDs to canonical effect paths.
type EffectTable struct {
	Source string

	paths map[string]string
}

func NewEffectTable(source string) *EffectTable {
	return &EffectTable{
		Source: source,
		paths:  make(map[string]string),
	}
}

func (t *EffectTable) Put(id, effectPath string) {
	t.paths[normalizeID(id)] = effectPath
}

func (t *EffectTable) Lookup(id string) (string, bool) {
	p, ok := t.paths[normalizeID(id)]
	return p, ok
}

func (t *EffectTable) Len() int {
	return len(t.paths)
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}

// LoadEffectTable reads the effect table at path. The first two records are
// header and comment rows. Every other record contributes field 0 as the
// effect ID and field 2 as a path fragment below root.
func LoadEffectTable(path string, root string) (*EffectTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open effect table: %w", err)
	}
	defer f.Close()

	t, err := ReadEffectTable(f, root)
	if err != nil {
		return nil, fmt.Errorf("read effect table %s: %w", path, err)
	}
	t.Source = path

	slog.Info("Effect table loaded", "path", path, "effects", t.Len())
	return t, nil
}

// ReadEffectTable parses an effect table, stripping a UTF-8 byte order mark if present.
func ReadEffectTable(r io.Reader, root string) (*EffectTable, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	t := NewEffectTable("")
	record := 0
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		record++
		if record <= effectTableHeaderRecords {
			continue
		}

		if len(fields) <= effectTablePathField {
			slog.Debug("Skipping short effect table record", "record", record, "fields", len(fields))
			continue
		}

		id := normalizeID(fields[effectTableIDField])
		fragment := strings.TrimLeft(ToSlash(strings.TrimSpace(fields[effectTablePathField])), "/")
		if id == "" || fragment == "" {
			slog.Debug("Skipping incomplete effect table record", "record", record)
			continue
		}

		t.Put(id, WithPrefabSuffix(root+fragment))
	}

	return t, nil
}
