// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import "fmt"

// MissingInputError reports that the source document does not exist at the
// conventional path. It is a precondition failure; the converter is never
// invoked.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

// DependencyMissingError reports that a runtime the conversion backend needs
// (the headless browser) is not installed. Guidance carries install
// instructions for the operator.
type DependencyMissingError struct {
	Dep      string
	Guidance string
	Err      error
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("required dependency %s unavailable: %v", e.Dep, e.Err)
}

func (e *DependencyMissingError) Unwrap() error { return e.Err }

// ConversionFailedError wraps any failure reported by the conversion
// backend. Every conversion failure is terminal; there is no retry.
type ConversionFailedError struct {
	Err error
}

func (e *ConversionFailedError) Error() string {
	return fmt.Sprintf("pdf conversion failed: %v", e.Err)
}

func (e *ConversionFailedError) Unwrap() error { return e.Err }
