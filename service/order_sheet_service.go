package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	"koon7r-storefront/models"
	"koon7r-storefront/utils"
)

//go:embed templates/order_sheet.html
var sheetTemplates embed.FS

const pdfTimeout = 30 * time.Second

// OrderSheetService renders the work sheet the print shop uses to produce an order
type OrderSheetService struct {
	tmpl       *template.Template
	chromePath string
	siteName   string
}

// sheetLine is one item row of the sheet. Images are thumbnails safe to place in src.
type sheetLine struct {
	Name      string
	Size      string
	Technique string
	Quantity  int
	Price     string
	Image     template.URL
	BackImage template.URL
}

// NewOrderSheetService parses the embedded template.
// chromePath overrides Chrome detection; empty means auto-detect.
func NewOrderSheetService(chromePath, siteName string) (*OrderSheetService, error) {
	tmpl, err := template.New("order_sheet.html").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(sheetTemplates, "templates/order_sheet.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if siteName == "" {
		siteName = "Koon7r"
	}
	return &OrderSheetService{tmpl: tmpl, chromePath: chromePath, siteName: siteName}, nil
}

// Ensure OrderSheetService implements OrderSheetServiceInterface
var _ OrderSheetServiceInterface = (*OrderSheetService)(nil)

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks the configured path first, then common installation paths.
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Printf("⚠️ detectChromePath: CHROME_PATH %s not found, probing defaults", configured)
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

// RenderHTML renders the work sheet of an order
func (s *OrderSheetService) RenderHTML(_ context.Context, detail *models.OrderDetail) (string, error) {
	log.Printf("📦 RenderHTML: Rendering sheet for order %s", detail.ID)

	lines := make([]sheetLine, 0, len(detail.Items))
	for _, item := range detail.Items {
		line := sheetLine{
			Name:     item.Name,
			Size:     item.Size,
			Quantity: item.Quantity,
			Price:    utils.FormatAmount(item.Price),
			Image:    sheetImage(item.Image),
		}
		if item.Custom != nil {
			line.Technique = item.Custom.Technique
			line.BackImage = sheetImage(item.Custom.BackImage)
		}
		lines = append(lines, line)
	}

	data := struct {
		SiteName  string
		Order     models.Order
		CreatedAt string
		Lines     []sheetLine
		Total     string
		Designs   []models.CustomDesign
	}{
		SiteName:  s.siteName,
		Order:     detail.Order,
		CreatedAt: detail.CreatedAt.Format("2006-01-02 15:04"),
		Lines:     lines,
		Total:     utils.FormatAmount(detail.TotalAmount),
		Designs:   detail.Designs,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// sheetImage returns a thumbnail for inline images and passes http(s) URLs through.
// Anything else is dropped.
func sheetImage(ref string) template.URL {
	switch {
	case strings.HasPrefix(ref, "data:image"):
		thumb, err := OptimizeDataURI(ref, "thumb")
		if err != nil {
			log.Printf("⚠️ sheetImage: Could not shrink inline image: %v", err)
			return ""
		}
		return template.URL(thumb)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return template.URL(ref)
	}
	return ""
}

// RenderPDF prints the work sheet through headless Chrome
func (s *OrderSheetService) RenderPDF(ctx context.Context, detail *models.OrderDetail) ([]byte, error) {
	html, err := s.RenderHTML(ctx, detail)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, pdfTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		log.Printf("❌ RenderPDF: Error printing sheet for %s: %v", detail.ID, err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ RenderPDF: Printed sheet for %s (%d bytes)", detail.ID, len(pdfBuf))
	return pdfBuf, nil
}
