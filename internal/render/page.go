// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pdiddy/export-pdf/pkg/types"
)

// baselineScale is the diagram scale that maps to 1:1 magnification.
// Matches the tool's default so unconfigured runs print diagrams as-is.
const baselineScale = 3

// pageTemplate is the full HTML document handed to the browser. The diagram
// bootstrap always defines window.__diagramsDone so the print stage has a
// uniform readiness marker to wait on.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body {
  font-family: -apple-system, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  font-size: 11px;
  line-height: 1.5;
  color: #1f2328;
  margin: 0;
}
h1, h2, h3, h4 { line-height: 1.25; page-break-after: avoid; }
h1 { border-bottom: 1px solid #d1d9e0; padding-bottom: 0.3em; }
h2 { border-bottom: 1px solid #d1d9e0; padding-bottom: 0.3em; }
pre {
  background: #f6f8fa;
  padding: 10px;
  border-radius: 6px;
  overflow-x: hidden;
  white-space: pre-wrap;
  word-wrap: break-word;
  page-break-inside: avoid;
}
code { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; font-size: 95%; }
table { border-collapse: collapse; margin: 1em 0; }
table th, table td { border: 1px solid #d1d9e0; padding: 4px 10px; }
table th { background: #f6f8fa; }
blockquote { border-left: 3px solid #d1d9e0; margin-left: 0; padding-left: 1em; color: #59636e; }
img { max-width: 100%; }
.mermaid {
  text-align: center;
  page-break-inside: avoid;
  zoom: {{.DiagramZoom}};
}
.mermaid svg { max-width: 100%; height: auto; }
</style>
</head>
<body>
{{.Body}}
{{if .RunDiagrams}}{{.DiagramScript}}<script>
mermaid.initialize({ startOnLoad: false, theme: {{.Theme}} });
window.__diagramsDone = false;
mermaid.run({ querySelector: ".mermaid" })
  .catch(function () {})
  .finally(function () { window.__diagramsDone = true; });
</script>{{else}}<script>window.__diagramsDone = true;</script>{{end}}
</body>
</html>
`))

type pageData struct {
	Title         string
	Body          template.HTML
	RunDiagrams   bool
	DiagramScript template.HTML
	DiagramZoom   string
	Theme         string
}

// BuildPage assembles the printable HTML document. mermaidSrc is the inline
// diagram library source; when empty a CDN script tag is used instead, so an
// offline run degrades to unrendered diagrams rather than failing.
func BuildPage(body string, opts types.Options, mermaidSrc string, diagramsFound int) (string, error) {
	script := template.HTML(`<script src="` + mermaidCDN + `"></script>`)
	if mermaidSrc != "" {
		script = template.HTML("<script>\n" + mermaidSrc + "\n</script>")
	}

	data := pageData{
		Title:         opts.Title,
		Body:          template.HTML(body),
		RunDiagrams:   opts.DiagramsEnabled && diagramsFound > 0,
		DiagramScript: script,
		DiagramZoom:   fmt.Sprintf("%.2f", float64(opts.Scale)/baselineScale),
		Theme:         opts.DiagramTheme,
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("assembling HTML page: %w", err)
	}
	return b.String(), nil
}
