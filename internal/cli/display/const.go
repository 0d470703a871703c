// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool   = "fxrefs"
	Banner = `
   __                __
  / _|_  ___ __ ___ / _|___
 |  _\ \/ / '_/ -_)  _(_-<
 |_| /_/\_\_| \___|_| /__/   vversion
`
	CodeRoot = "https://github.com/platform-engineering-labs/fxrefs"
)
