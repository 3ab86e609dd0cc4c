package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	"camelia-boutique/models"
	"camelia-boutique/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// productsPerPage controls catalog pagination in the printable export
const productsPerPage = 6

// catalogTemplate renders the printable catalog. Kept inline so the
// export works without a templates directory on disk.
const catalogTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Catalogue</title>
<style>
  body { font-family: sans-serif; margin: 0; }
  .page { page-break-after: always; padding: 24px; }
  .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; }
  .card { border: 1px solid #ddd; padding: 8px; text-align: center; }
  .card img { max-width: 100%; height: auto; }
  .price { font-weight: bold; }
  .badge { color: #c0392b; font-size: 12px; }
</style>
</head>
<body>
{{range .Pages}}
<div class="page">
  <div class="grid">
  {{range .}}
    <div class="card">
      <img src="{{.Image}}" alt="{{.Name}}">
      <div>{{.Name}}</div>
      <div>{{.Category}} — {{.Color}}</div>
      <div class="price">{{.Price}}</div>
      {{if .IsNew}}<div class="badge">Nouveau</div>{{end}}
    </div>
  {{end}}
  </div>
</div>
{{end}}
</body>
</html>`

type exportCard struct {
	Name     string
	Category string
	Color    string
	Price    string
	Image    string
	IsNew    bool
}

// ExportService renders the catalog to a printable PDF through headless
// Chrome
type ExportService struct {
	tmpl *template.Template
}

// NewExportService creates a new ExportService
func NewExportService() (*ExportService, error) {
	tmpl, err := template.New("catalog").Parse(catalogTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog template: %w", err)
	}
	return &ExportService{tmpl: tmpl}, nil
}

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderHTML renders the catalog into the printable HTML document
func (s *ExportService) RenderHTML(products []models.Product) (string, error) {
	var cards []exportCard
	for _, p := range products {
		cards = append(cards, exportCard{
			Name:     p.Name,
			Category: p.Category,
			Color:    p.Color,
			Price:    utils.FormatEUR(p.Price),
			Image:    p.PrimaryImage,
			IsNew:    p.IsNew,
		})
	}

	var pages [][]exportCard
	for start := 0; start < len(cards); start += productsPerPage {
		end := start + productsPerPage
		if end > len(cards) {
			end = len(cards)
		}
		pages = append(pages, cards[start:end])
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, struct{ Pages [][]exportCard }{Pages: pages}); err != nil {
		return "", fmt.Errorf("failed to render catalog template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF renders the catalog HTML at renderURL and prints it to PDF
// via headless Chrome
func (s *ExportService) GeneratePDF(ctx context.Context, renderURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		log.Printf("⚠️  No Chrome path detected, relying on chromedp auto-detection")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second), // let images settle
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print catalog to PDF: %w", err)
	}

	log.Printf("✓ Catalog PDF generated: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}
