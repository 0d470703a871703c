// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"errors"
	"fmt"
)

// FlagError is a usage mistake: a missing argument or an invalid flag value.
// Start prints the command's usage after the message of a FlagError, and only
// then.
type FlagError struct {
	Err error
}

func (e *FlagError) Error() string {
	return e.Err.Error()
}

func (e *FlagError) Unwrap() error {
	return e.Err
}

func FlagErrorf(format string, args ...any) error {
	return &FlagError{Err: fmt.Errorf(format, args...)}
}

// FlagErrorWrap marks err as a usage mistake. A nil err stays nil.
func FlagErrorWrap(err error) error {
	if err == nil {
		return nil
	}
	return &FlagError{Err: err}
}

// IsFlagError reports whether err, or anything it wraps, is a FlagError.
func IsFlagError(err error) bool {
	var flagErr *FlagError
	return errors.As(err, &flagErr)
}
