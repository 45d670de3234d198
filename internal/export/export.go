// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export orchestrates a single document-to-PDF export: locate the
// source document, read it, hand it to a conversion backend, and report the
// outcome. All rendering is delegated; the backend is reached only through
// the Converter interface so it can be swapped without touching this logic.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/export-pdf/pkg/types"
)

// Converter transforms Markdown text into a PDF written at outputPath.
// It is the sole integration point with the rendering engine.
type Converter interface {
	Convert(ctx context.Context, markdown, outputPath string, opts types.Options) (types.Result, error)
}

// RunParams holds the inputs for one export run.
type RunParams struct {
	// InputPath is the source document. Must exist.
	InputPath string

	// OutputPath is where the PDF is written. Overwritten unconditionally
	// when the conversion succeeds.
	OutputPath string

	// Options is the conversion configuration record.
	Options types.Options

	// ReportPath, when non-empty, names a YAML run report written after a
	// successful export.
	ReportPath string

	// Version is the tool version recorded in the run report.
	Version string
}

// Run performs one export. Progress and the final confirmation are printed
// to w. The returned error is one of the typed errors in this package, or a
// plain wrapped error for local I/O problems; every error is terminal.
func Run(ctx context.Context, c Converter, p RunParams, w io.Writer) (types.Result, error) {
	started := time.Now().UTC()

	if _, err := os.Stat(p.InputPath); err != nil {
		if os.IsNotExist(err) {
			return types.Result{}, &MissingInputError{Path: p.InputPath}
		}
		return types.Result{}, fmt.Errorf("checking input %s: %w", p.InputPath, err)
	}

	fmt.Fprintf(w, "Reading: %s\n", p.InputPath)

	data, err := os.ReadFile(p.InputPath)
	if err != nil {
		return types.Result{}, fmt.Errorf("reading input %s: %w", p.InputPath, err)
	}
	if !utf8.Valid(data) {
		return types.Result{}, fmt.Errorf("input %s is not valid UTF-8 text", p.InputPath)
	}

	fmt.Fprintf(w, "Converting %d bytes to PDF...\n", len(data))
	fmt.Fprintf(w, "Settings: scale=%d, orientation=%s, page_size=%s\n",
		p.Options.Scale, p.Options.Orientation, p.Options.PageSize)
	fmt.Fprintf(w, "Writing: %s\n", p.OutputPath)

	result, err := c.Convert(ctx, string(data), p.OutputPath, p.Options)
	if err != nil {
		return types.Result{}, &ConversionFailedError{Err: err}
	}
	if result.OutputPath == "" {
		result.OutputPath = p.OutputPath
	}

	fmt.Fprintf(w, "PDF exported to: %s\n", result.OutputPath)
	fmt.Fprintf(w, "  diagrams found:    %d\n", result.DiagramsFound)
	fmt.Fprintf(w, "  diagrams rendered: %d\n", result.DiagramsRendered)

	if p.ReportPath != "" {
		report := NewReport(p, result, started, time.Now().UTC())
		if err := WriteReport(p.ReportPath, report); err != nil {
			fmt.Fprintf(w, "warning: could not write report %s: %v\n", p.ReportPath, err)
		} else {
			fmt.Fprintf(w, "Report written to: %s\n", p.ReportPath)
		}
	}

	return result, nil
}
