// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render implements the document-conversion backend: Markdown to
// HTML via goldmark, diagram blocks rasterized in-page by mermaid, and the
// final layout printed to PDF by a headless Chromium tab. Callers reach it
// only through the Convert method; the stages are internal.
package render

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/pdiddy/export-pdf/internal/browser"
	"github.com/pdiddy/export-pdf/pkg/types"
)

// ChromiumConverter converts Markdown documents to PDF using an installed
// Chromium/Chrome binary.
type ChromiumConverter struct {
	// ExecPath is the browser binary to drive.
	ExecPath string

	// Client fetches the diagram library asset. Nil means
	// http.DefaultClient.
	Client *http.Client
}

// NewChromiumConverter builds a converter around a detected browser.
func NewChromiumConverter(b browser.Browser) *ChromiumConverter {
	return &ChromiumConverter{ExecPath: b.Path}
}

// Convert renders the Markdown text to a PDF at outputPath, overwriting any
// existing file. The returned result carries the diagram counts; rendered
// may be lower than found when individual diagrams fail, which is not an
// error.
func (c *ChromiumConverter) Convert(ctx context.Context, markdown, outputPath string, opts types.Options) (types.Result, error) {
	if err := opts.Validate(); err != nil {
		return types.Result{}, err
	}

	body, found, err := ToHTML(markdown, opts.DiagramsEnabled)
	if err != nil {
		return types.Result{}, err
	}

	var mermaidSrc string
	if opts.DiagramsEnabled && found > 0 {
		mermaidSrc = ResolveMermaid(ctx, c.httpClient())
	}

	doc, err := BuildPage(body, opts, mermaidSrc, found)
	if err != nil {
		return types.Result{}, err
	}

	pdf, rendered, err := printPDF(ctx, c.ExecPath, doc, opts)
	if err != nil {
		return types.Result{}, err
	}
	if rendered > found {
		rendered = found
	}

	if err := os.WriteFile(outputPath, pdf, 0o644); err != nil {
		return types.Result{}, fmt.Errorf("writing PDF %s: %w", outputPath, err)
	}

	return types.Result{
		OutputPath:       outputPath,
		PDFBytes:         len(pdf),
		DiagramsFound:    found,
		DiagramsRendered: rendered,
	}, nil
}

func (c *ChromiumConverter) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}
