// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/pdiddy/export-pdf/pkg/types"
)

// paperSize holds page dimensions in inches, portrait orientation.
type paperSize struct {
	Width  float64
	Height float64
}

var paperSizes = map[types.PageSize]paperSize{
	types.PageA4:     {Width: 8.27, Height: 11.69},
	types.PageLetter: {Width: 8.5, Height: 11},
	types.PageLegal:  {Width: 8.5, Height: 14},
}

const (
	pageMarginInches = 0.4

	// diagramWait bounds how long the print stage waits for the in-page
	// diagram renderer. On timeout printing proceeds with whatever rendered;
	// a partial render is not a failure.
	diagramWait = 30 * time.Second
)

// headerTemplate and footerTemplate follow Chrome's print header/footer
// markup: inline styles only, counts injected via the pageNumber and
// totalPages classes.
const (
	headerTemplate = `<div style="font-size:8px; width:100%%; text-align:center; color:#59636e;">%s</div>`
	footerTemplate = `<div style="font-size:8px; width:100%; text-align:center; color:#59636e;">` +
		`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`
)

// headerHTML builds the print-header markup with the document title escaped.
func headerHTML(title string) string {
	return fmt.Sprintf(headerTemplate, html.EscapeString(title))
}

// printPDF loads the HTML document in a headless browser tab and prints it.
// It returns the PDF bytes and the number of diagrams the page rendered.
func printPDF(ctx context.Context, execPath, doc string, opts types.Options) ([]byte, int, error) {
	tmpDir, err := os.MkdirTemp("", "export-pdf-profile-*")
	if err != nil {
		return nil, 0, fmt.Errorf("creating browser profile dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	allocatorOptions := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.UserDataDir(tmpDir),
		// Software rendering; avoids GPU issues in minimal environments.
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if os.Getenv("CHROME_NO_SANDBOX") != "" {
		allocatorOptions = append(allocatorOptions, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions...)
	defer allocCancel()

	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	if err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frame, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frame.Frame.ID, doc).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, 0, fmt.Errorf("loading document in browser: %w", err)
	}

	waitForDiagrams(tabCtx)

	var rendered int
	if err := chromedp.Run(tabCtx,
		chromedp.Evaluate(`document.querySelectorAll(".mermaid svg").length`, &rendered),
	); err != nil {
		return nil, 0, fmt.Errorf("counting rendered diagrams: %w", err)
	}

	paper, ok := paperSizes[opts.PageSize]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported page size %q", opts.PageSize)
	}
	if opts.Orientation == types.OrientationLandscape {
		paper.Width, paper.Height = paper.Height, paper.Width
	}

	var pdfBuf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			p := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paper.Width).
				WithPaperHeight(paper.Height).
				WithMarginTop(pageMarginInches).
				WithMarginBottom(pageMarginInches).
				WithMarginLeft(pageMarginInches).
				WithMarginRight(pageMarginInches)
			if opts.PageNumbers {
				p = p.WithDisplayHeaderFooter(true).
					WithHeaderTemplate(headerHTML(opts.Title)).
					WithFooterTemplate(footerTemplate)
			}
			var err error
			pdfBuf, _, err = p.Do(ctx)
			return err
		}),
	); err != nil {
		return nil, 0, fmt.Errorf("printing to PDF: %w", err)
	}

	if len(pdfBuf) == 0 {
		return nil, 0, errors.New("browser produced an empty PDF")
	}
	return pdfBuf, rendered, nil
}

// waitForDiagrams blocks until the page's diagram readiness marker flips or
// the bounded wait elapses. Timeouts are swallowed: printing continues with
// the diagrams that made it.
func waitForDiagrams(tabCtx context.Context) {
	waitCtx, cancel := context.WithTimeout(tabCtx, diagramWait)
	defer cancel()

	var done bool
	_ = chromedp.Run(waitCtx,
		chromedp.Poll("window.__diagramsDone === true", &done,
			chromedp.WithPollingInterval(100*time.Millisecond)),
	)
}
