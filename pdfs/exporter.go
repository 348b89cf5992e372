package pdfs

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/utils"
	"github.com/jung-kurt/gofpdf"
)

// ExportResult is the single owned output of one export. The caller decides
// what to do with Bytes (stream as a download, hold for preview, write to
// disk); preview and download must come from this one buffer.
type ExportResult struct {
	Bytes    []byte
	Filename string
	Pages    int
}

type Exporter struct {
	Rasterizer Rasterizer
	Paper      PaperSize
}

func NewExporter(rasterizer Rasterizer) *Exporter {
	return &Exporter{Rasterizer: rasterizer, Paper: A4Size}
}

// Export captures the quote surface, paginates it and assembles the pages
// into one PDF. A capture failure aborts the whole export; no partial file
// is ever produced and there is no retry.
func (e *Exporter) Export(ctx context.Context, quote *models.QuoteData) (*ExportResult, error) {
	img, err := e.Rasterizer.Rasterize(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrorSurfaceUnavailable, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: captured surface is empty", utils.ErrorSurfaceUnavailable)
	}

	// Encode the captured surface once; every page draws this same image.
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrorSurfaceUnavailable, err)
	}

	pagination := Paginate(bounds.Dx(), bounds.Dy(), e.Paper)

	pdf := gofpdf.New("P", "mm", e.Paper.Name, "")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("quote-surface", opts, bytes.NewReader(encoded.Bytes()))

	for _, offset := range pagination.Offsets {
		pdf.AddPage()
		pdf.ImageOptions("quote-surface", 0, offset, pagination.ImageWidth, pagination.ImageHeight, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}

	return &ExportResult{
		Bytes:    out.Bytes(),
		Filename: ExportFilename(quote),
		Pages:    pagination.PageCount(),
	}, nil
}

// ExportFilename derives the download name from the recipient and the frozen
// issue date: "견적서_<recipient>_<date>.pdf".
func ExportFilename(quote *models.QuoteData) string {
	name := fmt.Sprintf("견적서_%s_%s.pdf", quote.Recipient.CompanyName, quote.Date)
	// Path separators would break Content-Disposition and on-disk writes.
	name = strings.ReplaceAll(name, "/", "-")
	return strings.ReplaceAll(name, "\\", "-")
}
