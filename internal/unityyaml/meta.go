// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package unityyaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const MetaSuffix = ".meta"

// Meta is the sidecar identity file Unity writes next to every asset.
type Meta struct {
	FileFormatVersion string
	GUID              string
}

// LoadMeta reads the .meta sidecar at path.
func LoadMeta(path string) (*Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read meta %s: %w", path, err)
	}

	meta, err := ParseMeta(data)
	if err != nil {
		return nil, fmt.Errorf("parse meta %s: %w", path, err)
	}
	return meta, nil
}

func ParseMeta(data []byte) (*Meta, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	top := Node{n: &root}.unwrap()
	if !top.IsMap() {
		return nil, fmt.Errorf("expected a mapping at top level")
	}

	guid := top.Get("guid").String()
	if guid == "" {
		return nil, fmt.Errorf("no guid")
	}

	return &Meta{
		FileFormatVersion: top.Get("fileFormatVersion").String(),
		GUID:              guid,
	}, nil
}
