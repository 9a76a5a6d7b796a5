package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/ledongthuc/pdf"
)

// A4 in CSS pixels at 96 dpi and in inches.
const (
	a4WidthPx    = 794
	a4HeightPx   = 1123
	a4WidthInch  = 8.27
	a4HeightInch = 11.69
)

// Printer turns a rendered preview page into a PDF.
type Printer interface {
	PrintPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ChromePrinter drives headless Chrome. The preview is captured as a full-page PNG and the image
// is placed on a single A4 page, scaled to fit.
type ChromePrinter struct {
	ExecPath string
	Timeout  time.Duration
}

// NewChromePrinter constructs a ChromePrinter. An empty execPath lets chromedp find the browser.
func NewChromePrinter(execPath string, timeout time.Duration) *ChromePrinter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromePrinter{ExecPath: execPath, Timeout: timeout}
}

// PrintPDF renders html and returns the PDF bytes.
func (p *ChromePrinter) PrintPDF(ctx context.Context, html []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	runCtx, cancel := context.WithTimeout(browserCtx, p.Timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	previewPath := filepath.Join(tmpDir, "preview.html")
	if err := os.WriteFile(previewPath, html, 0o644); err != nil {
		return nil, err
	}

	var shot []byte
	if err := chromedp.Run(runCtx,
		chromedp.EmulateViewport(a4WidthPx, a4HeightPx, chromedp.EmulateScale(2)),
		chromedp.Navigate("file://"+previewPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&shot, 100),
	); err != nil {
		return nil, fmt.Errorf("capture preview: %w", err)
	}

	imagePath := filepath.Join(tmpDir, "page.html")
	if err := os.WriteFile(imagePath, imagePage(shot), 0o644); err != nil {
		return nil, err
	}

	var out []byte
	if err := chromedp.Run(runCtx,
		chromedp.Navigate("file://"+imagePath),
		chromedp.WaitReady("img", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInch).
				WithPaperHeight(a4HeightInch).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return out, nil
}

// imagePage is a single A4 page holding png scaled to fit, centred horizontally and top-aligned.
func imagePage(png []byte) []byte {
	var b bytes.Buffer
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>`)
	b.WriteString(`@page{size:A4;margin:0}html,body{margin:0;padding:0;background:#ffffff}`)
	b.WriteString(`.page{width:210mm;height:297mm;display:flex;justify-content:center;align-items:flex-start;overflow:hidden}`)
	b.WriteString(`img{max-width:100%;max-height:100%;object-fit:contain}`)
	b.WriteString(`</style></head><body><div class="page"><img alt="resume" src="data:image/png;base64,`)
	b.WriteString(base64.StdEncoding.EncodeToString(png))
	b.WriteString(`"></div></body></html>`)
	return b.Bytes()
}

// CountPages opens a PDF and returns its page count.
func CountPages(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty pdf")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}
