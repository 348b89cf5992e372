package pdfs_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/pdfs"
	"bitbucket.org/mmdatafocus/quotes_backend/utils"
	"github.com/disintegration/imaging"
)

// stubRasterizer returns a fixed-size white surface, standing in for the
// template renderer.
type stubRasterizer struct {
	width  int
	height int
	err    error
}

func (s *stubRasterizer) Rasterize(ctx context.Context, quote *models.QuoteData) (image.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	return imaging.New(s.width, s.height, color.White), nil
}

func testQuote() *models.QuoteData {
	return &models.QuoteData{
		Date:      "2026년 9월 1일",
		Recipient: models.RecipientInfo{CompanyName: "한빛건설"},
	}
}

func TestExportPageCountFollowsPagination(t *testing.T) {
	cases := []struct {
		height int
		pages  int
	}{
		{100, 1},  // under one page
		{297, 2},  // exact multiple boundary
		{400, 2},  // one page and a remainder
		{1000, 4}, // 3*297 + 109
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("height_%dmm", tc.height), func(t *testing.T) {
			exporter := pdfs.NewExporter(&stubRasterizer{width: 210, height: tc.height})

			result, err := exporter.Export(context.Background(), testQuote())
			if err != nil {
				t.Fatalf("Export: %v", err)
			}
			if result.Pages != tc.pages {
				t.Errorf("pages = %d, want %d", result.Pages, tc.pages)
			}
			if !bytes.HasPrefix(result.Bytes, []byte("%PDF")) {
				t.Errorf("output does not look like a PDF")
			}
		})
	}
}

func TestExportFilename(t *testing.T) {
	result, err := pdfs.NewExporter(&stubRasterizer{width: 210, height: 100}).Export(context.Background(), testQuote())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.Filename != "견적서_한빛건설_2026년 9월 1일.pdf" {
		t.Errorf("filename = %q", result.Filename)
	}
}

func TestExportCaptureFailureAbortsWholeExport(t *testing.T) {
	exporter := pdfs.NewExporter(&stubRasterizer{err: errors.New("surface missing")})

	result, err := exporter.Export(context.Background(), testQuote())
	if !errors.Is(err, utils.ErrorSurfaceUnavailable) {
		t.Fatalf("err = %v, want ErrorSurfaceUnavailable", err)
	}
	if result != nil {
		t.Error("a failed capture must not produce a partial file")
	}
}
