// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/platform-engineering-labs/fxrefs"
)

func PrintBanner(w io.Writer) {
	_, _ = fmt.Fprintln(w, LightBlue(strings.Replace(Banner, "version", fxrefs.Version, 1)))
}

func Success(w io.Writer, msg string) {
	_, _ = fmt.Fprint(w, Green(msg+"\n"))
}

func Warning(w io.Writer, msg string) {
	_, _ = fmt.Fprint(w, Gold("Warning: "+msg+"\n"))
}

func Error(w io.Writer, msg string) {
	_, _ = fmt.Fprint(w, Red("Error: "+msg+"\n"))
}

func Links() string {
	return "\n" + Gold("Code: ") + CodeRoot +
		"\n" + Gold("Bugs: ") + CodeRoot + "/issues"
}
