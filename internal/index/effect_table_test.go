// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const effectTableFixture = "\uFEFFID,Name,Path,Scale\r\n" +
	"int,string,string,float\r\n" +
	"1001,Hit,Skill/fx_hit,1.0\r\n" +
	"1002,\"Heal, big\",Buff\\fx_heal.prefab,1.5\r\n" +
	"1003,Short\r\n" +
	",Empty,Skill/fx_none,1\r\n"

func TestReadEffectTable(t *testing.T) {
	table, err := ReadEffectTable(strings.NewReader(effectTableFixture), EffectTableRoot)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())

	p, ok := table.Lookup("1001")
	assert.True(t, ok)
	assert.Equal(t, "Effects/Prefabs/Skill/fx_hit.prefab", p)

	p, ok = table.Lookup(" 1002 ")
	assert.True(t, ok)
	assert.Equal(t, "Effects/Prefabs/Buff/fx_heal.prefab", p)

	_, ok = table.Lookup("1003")
	assert.False(t, ok)
}

func TestReadEffectTable_HeaderRowsAreNeverData(t *testing.T) {
	table, err := ReadEffectTable(strings.NewReader("1,a,fx_a\r\n2,b,fx_b\r\n"), EffectTableRoot)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestLoadEffectTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EffectTable.csv")
	require.NoError(t, os.WriteFile(path, []byte(effectTableFixture), 0644))

	table, err := LoadEffectTable(path, EffectTableRoot)
	require.NoError(t, err)
	assert.Equal(t, path, table.Source)
	assert.Equal(t, 2, table.Len())
}

func TestLoadEffectTable_MissingFile(t *testing.T) {
	_, err := LoadEffectTable(filepath.Join(t.TempDir(), "missing.csv"), EffectTableRoot)
	assert.Error(t, err)
}
