// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package index

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/fxrefs/internal/logging"
)

func writeEffect(t *testing.T, dir, rel, guid string) string {
	t.Helper()

	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("--- !u!1 &1\nGameObject:\n  m_Name: fx\n"), 0644))
	if guid != "" {
		require.NoError(t, os.WriteFile(path+".meta", []byte("fileFormatVersion: 2\nguid: "+guid+"\n"), 0644))
	}
	return filepath.ToSlash(path)
}

func TestBuildIdentityIndex(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Resources", "Effects", "Prefabs")
	hit := writeEffect(t, root, "Skill/fx_hit.prefab", "abc123")
	heal := writeEffect(t, root, "Buff/fx_heal.prefab", "0000000000000000e000000000000000")

	x, err := BuildIdentityIndex(root, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, x.Len())
	p, ok := x.Lookup("abc123")
	assert.True(t, ok)
	assert.Equal(t, hit, p)

	p, ok = x.Lookup("0000000000000000e000000000000000")
	assert.True(t, ok)
	assert.Equal(t, heal, p)

	_, ok = x.Lookup("missing")
	assert.False(t, ok)
}

func TestBuildIdentityIndex_SkipsResourcesWithoutMeta(t *testing.T) {
	capture := logging.CaptureDefault(t, slog.LevelWarn)

	root := t.TempDir()
	writeEffect(t, root, "fx_ok.prefab", "guid-ok")
	orphan := writeEffect(t, root, "fx_orphan.prefab", "")

	x, err := BuildIdentityIndex(root, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, x.Len())
	assert.Equal(t, 1, x.Skipped())
	assert.True(t, capture.ContainsAll("without usable meta file", filepath.Base(orphan)))
}

func TestBuildIdentityIndex_DuplicateGUIDLastWins(t *testing.T) {
	capture := logging.CaptureDefault(t, slog.LevelWarn)

	x := NewIdentityIndex("root")
	x.Put("dup", "Effects/Prefabs/a.prefab")
	x.Put("dup", "Effects/Prefabs/b.prefab")
	x.Put("other", "Effects/Prefabs/c.prefab")

	p, _ := x.Lookup("dup")
	assert.Equal(t, "Effects/Prefabs/b.prefab", p)
	assert.Equal(t, 1, x.Duplicates())
	assert.Equal(t, 1, capture.Count("Duplicate resource GUID"))
}

func TestBuildIdentityIndex_MissingRoot(t *testing.T) {
	_, err := BuildIdentityIndex(filepath.Join(t.TempDir(), "nope"), BuildOptions{})
	assert.Error(t, err)
}

func TestIdentityIndex_EntriesSortedByPath(t *testing.T) {
	x := NewIdentityIndex("root")
	x.Put("2", "Effects/Prefabs/b.prefab")
	x.Put("1", "Effects/Prefabs/a.prefab")

	assert.Equal(t, []Entry{
		{GUID: "1", Path: "Effects/Prefabs/a.prefab"},
		{GUID: "2", Path: "Effects/Prefabs/b.prefab"},
	}, x.Entries())
}

func TestCanonicalPath(t *testing.T) {
	assert.Equal(t, "Effects/Prefabs/Foo.prefab", CanonicalPath("/home/dev/moon/artres/Resources/Effects/Prefabs/Foo.prefab"))
	assert.Equal(t, "Effects/Prefabs/Foo.prefab", CanonicalPath(`D:\moon\Resources\Effects\Prefabs\Foo.prefab`))
	assert.Equal(t, "Effects/Prefabs/Foo.prefab", CanonicalPath("Effects/Prefabs/Foo.prefab"))
	assert.Equal(t, "Effects/Prefabs/Foo.prefab", CanonicalPath("Resources/Effects/Prefabs/Foo.prefab"))
	assert.Equal(t, "/other/Foo.prefab", CanonicalPath("/other/Foo.prefab"))

	// checkout locations containing an Effects directory
	assert.Equal(t, "Effects/Prefabs/Foo.prefab", CanonicalPath("/tmp/Effects/artres/Resources/Effects/Prefabs/Foo.prefab"))
	assert.Equal(t, "Effects/Prefabs/Foo.prefab", CanonicalPath("/srv/Resources/Effects/mirror/Resources/Effects/Prefabs/Foo.prefab"))
	assert.Equal(t, "Effects/Prefabs/Fire/Effects/Big.prefab", CanonicalPath("/tmp/Effects/res/Resources/Effects/Prefabs/Fire/Effects/Big.prefab"))
}

func TestWithPrefabSuffix(t *testing.T) {
	assert.Equal(t, "Effects/Prefabs/Spark.prefab", WithPrefabSuffix("Effects/Prefabs/Spark"))
	assert.Equal(t, "Effects/Prefabs/Spark.prefab", WithPrefabSuffix("Effects/Prefabs/Spark.prefab"))
}
