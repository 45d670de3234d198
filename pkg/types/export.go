// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared option and result records for the
// export-pdf tool.
package types

import (
	"fmt"
	"strings"
)

// Orientation is the page orientation for the exported PDF.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// ParseOrientation validates s against the known orientations. Matching is
// case-insensitive; the canonical lowercase form is returned.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(strings.ToLower(s)) {
	case OrientationPortrait:
		return OrientationPortrait, nil
	case OrientationLandscape:
		return OrientationLandscape, nil
	}
	return "", fmt.Errorf("invalid orientation %q: must be %q or %q", s, OrientationPortrait, OrientationLandscape)
}

// PageSize names a paper format understood by the rendering backend.
type PageSize string

const (
	PageA4     PageSize = "a4"
	PageLetter PageSize = "letter"
	PageLegal  PageSize = "legal"
)

// ParsePageSize validates s against the supported paper formats.
func ParsePageSize(s string) (PageSize, error) {
	switch PageSize(strings.ToLower(s)) {
	case PageA4:
		return PageA4, nil
	case PageLetter:
		return PageLetter, nil
	case PageLegal:
		return PageLegal, nil
	}
	return "", fmt.Errorf("invalid page size %q: must be one of a4, letter, legal", s)
}

// Options is the immutable configuration record passed to the conversion
// backend. There are no cross-field constraints.
type Options struct {
	// Scale is the diagram magnification factor. Must be >= 1.
	Scale int `json:"scale" yaml:"scale"`

	// Orientation selects portrait or landscape pages.
	Orientation Orientation `json:"orientation" yaml:"orientation"`

	// PageSize selects the paper format (e.g. "a4").
	PageSize PageSize `json:"page_size" yaml:"page_size"`

	// Title is the document title shown in the page header.
	Title string `json:"title" yaml:"title"`

	// PageNumbers enables the page-number footer.
	PageNumbers bool `json:"page_numbers" yaml:"page_numbers"`

	// DiagramsEnabled controls whether fenced diagram blocks are rendered
	// to images. When false they are emitted as plain code blocks.
	DiagramsEnabled bool `json:"diagrams_enabled" yaml:"diagrams_enabled"`

	// DiagramTheme is the theme name handed to the diagram renderer.
	DiagramTheme string `json:"diagram_theme" yaml:"diagram_theme"`
}

// DefaultOptions returns the option record used when no overrides are given.
func DefaultOptions() Options {
	return Options{
		Scale:           3,
		Orientation:     OrientationLandscape,
		PageSize:        PageA4,
		Title:           "Project Documentation",
		PageNumbers:     true,
		DiagramsEnabled: true,
		DiagramTheme:    "default",
	}
}

// Validate checks type and enum membership for every field.
func (o Options) Validate() error {
	if o.Scale < 1 {
		return fmt.Errorf("invalid scale %d: must be a positive integer", o.Scale)
	}
	if _, err := ParseOrientation(string(o.Orientation)); err != nil {
		return err
	}
	if _, err := ParsePageSize(string(o.PageSize)); err != nil {
		return err
	}
	return nil
}

// Result is the outcome record returned by a successful conversion.
type Result struct {
	// OutputPath is where the PDF was written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// PDFBytes is the size of the written PDF.
	PDFBytes int `json:"pdf_bytes" yaml:"pdf_bytes"`

	// DiagramsFound counts fenced diagram blocks detected in the source.
	DiagramsFound int `json:"diagrams_found" yaml:"diagrams_found"`

	// DiagramsRendered counts diagrams the backend actually rasterized.
	// Rendered < found is a partial render, not a failure.
	DiagramsRendered int `json:"diagrams_rendered" yaml:"diagrams_rendered"`
}
