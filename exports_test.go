package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/pdfs"
	"github.com/disintegration/imaging"
)

type fixedRasterizer struct {
	height int
}

func (f *fixedRasterizer) Rasterize(ctx context.Context, quote *models.QuoteData) (image.Image, error) {
	return imaging.New(210, f.height, color.White), nil
}

func testQuoteData() *models.QuoteData {
	return &models.QuoteData{
		Date:      "2026년 9월 1일",
		Recipient: models.RecipientInfo{CompanyName: "수신사"},
	}
}

func TestExportServicePreviewIsSameBuffer(t *testing.T) {
	svc := newExportService(pdfs.NewExporter(&fixedRasterizer{height: 400}))

	id, result, err := svc.run(context.Background(), testQuoteData())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	preview, ok := svc.get(id)
	if !ok {
		t.Fatal("preview not retrievable right after export")
	}
	// Same backing buffer, not a recomputed copy.
	if &preview.Bytes[0] != &result.Bytes[0] || !bytes.Equal(preview.Bytes, result.Bytes) {
		t.Error("preview bytes are not the exported bytes")
	}
}

func TestExportServiceUnknownId(t *testing.T) {
	svc := newExportService(pdfs.NewExporter(&fixedRasterizer{height: 100}))
	if _, ok := svc.get("nope"); ok {
		t.Error("unknown id returned a preview")
	}
}

func TestExportServicePreviewExpires(t *testing.T) {
	svc := newExportService(pdfs.NewExporter(&fixedRasterizer{height: 100}))

	current := time.Now()
	svc.now = func() time.Time { return current }

	id, _, err := svc.run(context.Background(), testQuoteData())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	current = current.Add(previewTTL + time.Second)
	if _, ok := svc.get(id); ok {
		t.Error("expired preview still retrievable")
	}
}
