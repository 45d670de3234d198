// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// diagramLanguage is the fence info string that marks a diagram block.
const diagramLanguage = "mermaid"

// ToHTML converts Markdown to an HTML body fragment. Fenced mermaid blocks
// become <div class="mermaid"> nodes for the in-page renderer; the returned
// count is the number of such nodes. With diagrams disabled every fence is
// an ordinary code block and the count is 0.
func ToHTML(markdown string, diagramsEnabled bool) (string, int, error) {
	cr := &codeRenderer{diagrams: diagramsEnabled}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			ghtml.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(cr, 100)),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", 0, fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), cr.diagramCount, nil
}

// codeRenderer replaces goldmark's fenced-code rendering so mermaid fences
// can be routed to the diagram engine instead of a <pre> block.
type codeRenderer struct {
	diagrams     bool
	diagramCount int
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(source))

	if r.diagrams && lang == diagramLanguage {
		if entering {
			r.diagramCount++
			w.WriteString(`<div class="mermaid">`)
			w.WriteString("\n")
			writeEscapedLines(w, source, n)
		} else {
			w.WriteString("</div>\n")
		}
		return ast.WalkContinue, nil
	}

	if entering {
		w.WriteString("<pre><code")
		if lang != "" {
			w.WriteString(` class="language-`)
			w.Write(util.EscapeHTML([]byte(lang)))
			w.WriteString(`"`)
		}
		w.WriteString(">")
		writeEscapedLines(w, source, n)
	} else {
		w.WriteString("</code></pre>\n")
	}
	return ast.WalkContinue, nil
}

func writeEscapedLines(w util.BufWriter, source []byte, n *ast.FencedCodeBlock) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		w.Write(util.EscapeHTML(line.Value(source)))
	}
}
