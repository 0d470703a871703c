// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar is a terminal progress bar. A nil writer yields a silent bar.
type Bar struct {
	bar *progressbar.ProgressBar
}

func New(w io.Writer, total int, description string) *Bar {
	if w == nil {
		return &Bar{}
	}

	return &Bar{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (b *Bar) Describe(description string) {
	if b.bar != nil {
		b.bar.Describe(description)
	}
}

func (b *Bar) Step() {
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
}
