// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHomePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("expands the home prefix", func(t *testing.T) {
		assert.Equal(t, filepath.Join(home, "work/sys_env.json"), ExpandHomePath("~/work/sys_env.json"))
		assert.Equal(t, home, ExpandHomePath("~"))
	})

	t.Run("leaves other paths alone", func(t *testing.T) {
		assert.Equal(t, "/abs/sys_env.json", ExpandHomePath("/abs/sys_env.json"))
		assert.Equal(t, "~other/sys_env.json", ExpandHomePath("~other/sys_env.json"))
		assert.Equal(t, "rel/~/x", ExpandHomePath("rel/~/x"))
	})
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "report.csv")

	require.NoError(t, EnsureParentDir(target))
	assert.True(t, DirExists(filepath.Join(dir, "a", "b")))
	assert.False(t, DirExists(target))
}
