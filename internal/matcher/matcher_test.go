// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package matcher

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/fxrefs/internal/effectref"
	"github.com/platform-engineering-labs/fxrefs/internal/index"
	"github.com/platform-engineering-labs/fxrefs/internal/logging"
	"github.com/platform-engineering-labs/fxrefs/internal/unityyaml"
)

func parse(t *testing.T, src string) *unityyaml.Document {
	t.Helper()
	doc, err := unityyaml.Parse([]byte(src))
	require.NoError(t, err)
	doc.Path = "Assets/Resources/UI/Prefabs/ui_test.prefab"
	return doc
}

func helper(fileID int, effectPath string) string {
	return fmt.Sprintf("--- !u!114 &%d\nMonoBehaviour:\n  m_Enabled: 1\n  EffectPath: %s\n", fileID, effectPath)
}

func prefabInstance(fileID int, guids ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- !u!1001 &%d\nPrefabInstance:\n  m_Modification:\n    m_Modifications:\n", fileID)
	for _, guid := range guids {
		fmt.Fprintf(&b, "    - target: {fileID: 400000, guid: %s, type: 3}\n      propertyPath: m_Name\n      value: fx\n", guid)
	}
	return b.String()
}

func timelineClip(fileID int, effectID string) string {
	return fmt.Sprintf("--- !u!114 &%d\nMonoBehaviour:\n  m_Name: EffectClip\n  EffectID: %s\n", fileID, effectID)
}

func TestInlinePath_DistinctPaths(t *testing.T) {
	doc := parse(t, helper(1, "Effects/Prefabs/a")+helper(2, "Effects/Prefabs/b")+helper(3, "Effects/Prefabs/c"))
	refs := effectref.NewRefSet("ui_test.prefab", doc.Path)

	require.NoError(t, NewInlinePath().Search(doc, refs))

	rows := refs.Rows()
	require.Len(t, rows, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, "Effects/Prefabs/"+name+".prefab", rows[i].EffectPath)
		assert.Equal(t, effectref.KindInlinePath, rows[i].Kind)
		assert.Equal(t, 1, rows[i].Count)
	}
}

func TestInlinePath_RepeatedPathCounts(t *testing.T) {
	doc := parse(t, helper(1, "Effects/Prefabs/Spark")+helper(2, "Effects/Prefabs/Spark")+helper(3, "Effects/Prefabs/Spark"))
	refs := effectref.NewRefSet("ui_test.prefab", doc.Path)

	require.NoError(t, NewInlinePath().Search(doc, refs))

	rows := refs.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Count)
	assert.Equal(t, "Spark.prefab", rows[0].EffectName)
}

func TestInlinePath_IgnoresEmptyAndOtherClasses(t *testing.T) {
	doc := parse(t, helper(1, "")+"--- !u!1 &2\nGameObject:\n  EffectPath: Effects/Prefabs/NotAComponent\n")
	refs := effectref.NewRefSet("ui_test.prefab", doc.Path)

	require.NoError(t, NewInlinePath().Search(doc, refs))
	assert.Empty(t, refs.Rows())
}

func TestPrefabInstance_ResolvesIndexedGUID(t *testing.T) {
	effects := index.NewIdentityIndex("/res/Resources/Effects/Prefabs")
	effects.Put("abc123", "/res/Resources/Effects/Prefabs/Foo.prefab")

	doc := parse(t, prefabInstance(1, "abc123"))
	refs := effectref.NewRefSet("ui_test.prefab", doc.Path)

	require.NoError(t, NewPrefabInstance(effects).Search(doc, refs))

	rows := refs.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Effects/Prefabs/Foo.prefab", rows[0].EffectPath)
	assert.Equal(t, effectref.KindPrefabInstance, rows[0].Kind)
	assert.Equal(t, 1, rows[0].Count)
}

func TestPrefabInstance_OneReferencePerInstance(t *testing.T) {
	effects := index.NewIdentityIndex("root")
	effects.Put("abc123", "/res/Resources/Effects/Prefabs/Foo.prefab")
	effects.Put("def456", "/res/Resources/Effects/Prefabs/Bar.prefab")

	doc := parse(t, prefabInstance(1, "unknown", "abc123", "abc123", "def456")+prefabInstance(2, "abc123"))
	refs := effectref.NewRefSet("ui_test.prefab", doc.Path)

	require.NoError(t, NewPrefabInstance(effects).Search(doc, refs))

	rows := refs.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Effects/Prefabs/Foo.prefab", rows[0].EffectPath)
	assert.Equal(t, 2, rows[0].Count)
}

func TestPrefabInstance_NoMatchingOverride(t *testing.T) {
	effects := index.NewIdentityIndex("root")
	effects.Put("abc123", "/res/Resources/Effects/Prefabs/Foo.prefab")

	doc := parse(t, prefabInstance(1, "zzz999", "yyy888")+"--- !u!1001 &2\nPrefabInstance:\n  m_Modification:\n    m_Modifications: []\n")
	refs := effectref.NewRefSet("ui_test.prefab", doc.Path)

	require.NoError(t, NewPrefabInstance(effects).Search(doc, refs))
	assert.Empty(t, refs.Rows())
}

func TestPrefabInstance_LegacyPrefabClass(t *testing.T) {
	effects := index.NewIdentityIndex("root")
	effects.Put("abc123", "/res/Resources/Effects/Prefabs/Foo.prefab")

	legacy := strings.Replace(prefabInstance(1, "abc123"), "PrefabInstance:", "Prefab:", 1)
	doc := parse(t, legacy)
	refs := effectref.NewRefSet("ui_test.prefab", doc.Path)

	require.NoError(t, NewPrefabInstance(effects).Search(doc, refs))
	assert.Len(t, refs.Rows(), 1)
}

func newEffectTable() *index.EffectTable {
	table := index.NewEffectTable("EffectTable.csv")
	table.Put("1001", "Effects/Prefabs/Skill/fx_hit.prefab")
	return table
}

func TestTimelineID_UnsetIDIsSkipped(t *testing.T) {
	capture := logging.CaptureDefault(t, slog.LevelWarn)

	doc := parse(t, timelineClip(1, "0"))
	refs := effectref.NewRefSet("cut01.playable", doc.Path)

	require.NoError(t, NewTimelineID(newEffectTable(), "").Search(doc, refs))
	assert.Empty(t, refs.Rows())
	assert.Empty(t, capture.GetEntries())
}

func TestTimelineID_UnknownIDWarns(t *testing.T) {
	capture := logging.CaptureDefault(t, slog.LevelWarn)

	doc := parse(t, timelineClip(1, "4242"))
	refs := effectref.NewRefSet("cut01.playable", doc.Path)

	require.NoError(t, NewTimelineID(newEffectTable(), "").Search(doc, refs))
	assert.Empty(t, refs.Rows())
	assert.Equal(t, 1, capture.Count("Unresolved timeline effect ID"))
	assert.True(t, capture.ContainsAll("4242"))
}

func TestTimelineID_KnownIDResolves(t *testing.T) {
	doc := parse(t, timelineClip(1, "1001"))
	refs := effectref.NewRefSet("cut01.playable", doc.Path)

	require.NoError(t, NewTimelineID(newEffectTable(), "").Search(doc, refs))

	rows := refs.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Effects/Prefabs/Skill/fx_hit.prefab", rows[0].EffectPath)
	assert.Equal(t, effectref.KindTimelineID, rows[0].Kind)
	assert.Equal(t, 1, rows[0].Count)
}

func TestTimelineID_CustomField(t *testing.T) {
	doc := parse(t, "--- !u!114 &1\nMonoBehaviour:\n  effectId: 1001\n")
	refs := effectref.NewRefSet("cut01.playable", doc.Path)

	require.NoError(t, NewTimelineID(newEffectTable(), "effectId").Search(doc, refs))
	assert.Len(t, refs.Rows(), 1)
}

func TestMatchers_Kinds(t *testing.T) {
	matchers := []Matcher{NewInlinePath(), NewPrefabInstance(index.NewIdentityIndex("")), NewTimelineID(newEffectTable(), "")}
	var kinds []effectref.Kind
	for _, m := range matchers {
		kinds = append(kinds, m.Kind())
	}
	assert.Equal(t, effectref.Kinds, kinds)
}
