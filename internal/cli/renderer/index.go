// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"strings"

	"github.com/ddddddO/gtree"

	"github.com/platform-engineering-labs/fxrefs/internal/cli/display"
	"github.com/platform-engineering-labs/fxrefs/internal/index"
)

// RenderIndex renders indexed effects as a directory tree, limited to maxRows
// entries if > 0.
func RenderIndex(x *index.IdentityIndex, maxRows int) (string, error) {
	entries := x.Entries()
	if len(entries) == 0 {
		return display.Gold("No effects indexed.\n"), nil
	}

	shown := len(entries)
	if maxRows > 0 && maxRows < shown {
		shown = maxRows
	}

	root := gtree.NewRoot(display.LightBlue(x.Root))
	dirs := map[string]*gtree.Node{}
	for _, entry := range entries[:shown] {
		effectPath := strings.TrimPrefix(index.CanonicalPath(entry.Path), "/")
		parts := strings.Split(effectPath, "/")

		parent := root
		for i := range parts[:len(parts)-1] {
			key := strings.Join(parts[:i+1], "/")
			node, ok := dirs[key]
			if !ok {
				node = parent.Add(parts[i])
				dirs[key] = node
			}
			parent = node
		}
		parent.Add(parts[len(parts)-1] + " " + display.Grey(entry.GUID))
	}

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", fmt.Errorf("error rendering index: %v", err)
	}

	summary := fmt.Sprintf("\n%s Showing %d of %d indexed effects",
		display.Gold("Summary:"),
		shown,
		len(entries))
	if x.Duplicates() > 0 {
		summary += display.Goldf(", %d duplicate GUIDs", x.Duplicates())
	}
	if x.Skipped() > 0 {
		summary += display.Goldf(", %d files without a readable .meta", x.Skipped())
	}
	if maxRows > 0 && len(entries) > maxRows {
		summary += fmt.Sprintf(" (use --max-results %d to see all)", len(entries))
	}

	return buf.String() + summary + "\n", nil
}
