// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`{"MoonResPath": "/work/artres/", "MoonClientConfigPath": "/work/config", "Other": 1}`))
	require.NoError(t, err)

	assert.Equal(t, "/work/artres", cfg.ResPath)
	assert.Equal(t, "/work/config", cfg.ClientConfigPath)

	layout := cfg.Layout()
	assert.Equal(t, filepath.Join("/work/artres", "Resources/Effects/Prefabs"), layout.EffectPrefabDir)
	assert.Equal(t, filepath.Join("/work/artres", "Resources/UI/Prefabs"), layout.UIPrefabDir)
	assert.Equal(t, filepath.Join("/work/artres", "Resources/Scenes"), layout.SceneDir)
	assert.Equal(t, filepath.Join("/work/artres", "Resources/CutSceneDatas"), layout.TimelineDir)
	assert.Equal(t, filepath.Join("/work/config", "Table/CSV/EffectTable.csv"), layout.EffectTableFile)
}

func TestParse_MissingKey(t *testing.T) {
	_, err := Parse([]byte(`{"MoonResPath": "/work/artres"}`))
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.ErrorContains(t, err, ClientConfigPathKey)
}

func TestParse_InvalidValues(t *testing.T) {
	_, err := Parse([]byte(`{"MoonResPath": 42, "MoonClientConfigPath": "/c"}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"MoonResPath": "", "MoonClientConfigPath": "/c"}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"MoonResPath": `))
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sys_env.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"MoonResPath": "/a", "MoonClientConfigPath": "/b"}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
