// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"testing"

	"github.com/pdiddy/export-pdf/pkg/types"
)

func TestBuildPage_InlineDiagramLibrary(t *testing.T) {
	opts := types.DefaultOptions()
	opts.Title = "My Docs"

	doc, err := BuildPage("<h1>hello</h1>", opts, "/* mermaid source */", 2)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(doc, "<title>My Docs</title>") {
		t.Error("title missing")
	}
	if !strings.Contains(doc, "<h1>hello</h1>") {
		t.Error("body not embedded as-is")
	}
	if !strings.Contains(doc, "/* mermaid source */") {
		t.Error("resolved library must be inlined")
	}
	if strings.Contains(doc, mermaidCDN) {
		t.Error("CDN tag must not appear when the library is inlined")
	}
	if !strings.Contains(doc, "mermaid.initialize") {
		t.Error("diagram bootstrap missing")
	}
	if !strings.Contains(doc, "window.__diagramsDone") {
		t.Error("readiness marker missing")
	}
}

func TestBuildPage_CDNFallback(t *testing.T) {
	opts := types.DefaultOptions()

	doc, err := BuildPage("<p>x</p>", opts, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, mermaidCDN) {
		t.Error("empty library source must fall back to the CDN script tag")
	}
}

func TestBuildPage_NoDiagrams(t *testing.T) {
	opts := types.DefaultOptions()

	doc, err := BuildPage("<p>x</p>", opts, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "mermaid.initialize") {
		t.Error("bootstrap must be skipped without diagrams")
	}
	if !strings.Contains(doc, "window.__diagramsDone = true") {
		t.Error("readiness marker must still be set so the print stage never hangs")
	}
}

func TestBuildPage_DiagramsDisabled(t *testing.T) {
	opts := types.DefaultOptions()
	opts.DiagramsEnabled = false

	doc, err := BuildPage("<p>x</p>", opts, "ignored", 3)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "mermaid.initialize") {
		t.Error("bootstrap must be skipped when diagrams are disabled")
	}
}

func TestBuildPage_ScaleMapsToZoom(t *testing.T) {
	tests := []struct {
		scale int
		want  string
	}{
		{scale: 3, want: "zoom: 1.00"},
		{scale: 6, want: "zoom: 2.00"},
		{scale: 1, want: "zoom: 0.33"},
	}
	for _, tt := range tests {
		opts := types.DefaultOptions()
		opts.Scale = tt.scale

		doc, err := BuildPage("", opts, "", 0)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(doc, tt.want) {
			t.Errorf("scale %d: want %q in stylesheet", tt.scale, tt.want)
		}
	}
}

func TestBuildPage_ThemeIsQuoted(t *testing.T) {
	opts := types.DefaultOptions()
	opts.DiagramTheme = "dark"

	doc, err := BuildPage("", opts, "lib", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, `theme: "dark"`) {
		t.Errorf("theme not passed to initialize:\n%s", doc)
	}
}
