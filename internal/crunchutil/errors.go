// SPDX-License-Identifier: Unlicense OR MIT

// Package crunchutil holds error-kind sentinels and the fingerprint hash
// combinator shared across the packer's stages.
package crunchutil

import "errors"

// Error kinds, per spec.md §7. Argument, file-open, read, decode and
// packing failures wrap exactly one of these, so callers can tell them
// apart with errors.Is; errors from the manifest encoders and from closing
// an output file are returned unwrapped. cmd/crunch maps every error to
// exit code 1.
var (
	ErrInvalidArguments   = errors.New("invalid arguments")
	ErrInvalidOptionValue = errors.New("invalid option value")
	ErrIoRead             = errors.New("i/o read failure")
	ErrIoWrite            = errors.New("i/o write failure")
	ErrPngCodec           = errors.New("png codec failure")
	ErrPackingImpossible  = errors.New("packing impossible")
)
