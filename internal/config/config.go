// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/platform-engineering-labs/fxrefs/internal/util"
)

// Keys of the system environment JSON document.
const (
	ResPathKey          = "MoonResPath"
	ClientConfigPathKey = "MoonClientConfigPath"
)

// Directory conventions relative to the asset repository root.
const (
	EffectPrefabRelativePath = "Resources/Effects/Prefabs"
	UIPrefabRelativePath     = "Resources/UI/Prefabs"
	SceneRelativePath        = "Resources/Scenes"
	TimelineRelativePath     = "Resources/CutSceneDatas"
	EffectTableRelativePath  = "Table/CSV/EffectTable.csv"
	PrefabFileSuffix         = ".prefab"
	SceneFileSuffix          = ".unity"
	TimelineFileSuffix       = ".playable"
)

var ErrMissingKey = errors.New("missing required key")

// Config is the run configuration read from the system environment document.
type Config struct {
	Source string

	// ResPath is the root of the art resource repository.
	ResPath string
	// ClientConfigPath is the root of the client configuration repository.
	ClientConfigPath string
}

// Load reads the system environment JSON document at path.
func Load(path string) (*Config, error) {
	path = util.ExpandHomePath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration '%s': %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from '%s': %w", path, err)
	}
	cfg.Source = path

	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	resPath, err := requiredString(data, ResPathKey)
	if err != nil {
		return nil, err
	}
	clientConfigPath, err := requiredString(data, ClientConfigPathKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		ResPath:          filepath.Clean(util.ExpandHomePath(resPath)),
		ClientConfigPath: filepath.Clean(util.ExpandHomePath(clientConfigPath)),
	}, nil
}

func requiredString(data []byte, key string) (string, error) {
	value := gjson.GetBytes(data, gjson.Escape(key))
	if !value.Exists() {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	if value.Type != gjson.String || value.Str == "" {
		return "", fmt.Errorf("key %s must be a non-empty string", key)
	}
	return value.Str, nil
}

// Layout resolves the directories a run reads from.
type Layout struct {
	EffectPrefabDir string
	UIPrefabDir     string
	SceneDir        string
	TimelineDir     string
	EffectTableFile string
}

func (c *Config) Layout() Layout {
	return Layout{
		EffectPrefabDir: filepath.Join(c.ResPath, EffectPrefabRelativePath),
		UIPrefabDir:     filepath.Join(c.ResPath, UIPrefabRelativePath),
		SceneDir:        filepath.Join(c.ResPath, SceneRelativePath),
		TimelineDir:     filepath.Join(c.ResPath, TimelineRelativePath),
		EffectTableFile: filepath.Join(c.ClientConfigPath, EffectTableRelativePath),
	}
}
