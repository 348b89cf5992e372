package tpl_test

import (
	"bytes"
	"context"
	"image"
	"testing"

	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/tpl"
	"github.com/shopspring/decimal"
)

func renderQuote(t *testing.T, quote *models.QuoteData) *image.NRGBA {
	t.Helper()
	img, err := tpl.NewRenderer().Rasterize(context.Background(), quote)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("unexpected image type %T", img)
	}
	return nrgba
}

func quoteWithItems(n int) *models.QuoteData {
	items := make([]models.QuoteItem, n)
	for i := range items {
		items[i] = models.QuoteItem{
			Name:      "item",
			Quantity:  decimal.NewFromInt(int64(i + 1)),
			UnitPrice: decimal.NewFromInt(1000),
		}
		items[i].RecalculateAmounts()
	}
	totalSupply, totalTax, total := models.CalculateQuoteTotals(items)
	return &models.QuoteData{
		Date:             "2026년 9월 1일",
		Type:             models.QuoteTypeInvoice,
		ProjectName:      "현장 A",
		Recipient:        models.RecipientInfo{CompanyName: "수신사"},
		Supplier:         models.SupplierInfo{RegistrationNumber: "123-45-67890", CompanyName: "공급사", Representative: "대표"},
		Items:            items,
		TotalSupplyPrice: totalSupply,
		TotalTax:         totalTax,
		TotalAmount:      total,
	}
}

func TestRasterizeIsDeterministic(t *testing.T) {
	quote := quoteWithItems(3)

	first := renderQuote(t, quote)
	second := renderQuote(t, quote)

	if !first.Bounds().Eq(second.Bounds()) {
		t.Fatalf("bounds differ: %v vs %v", first.Bounds(), second.Bounds())
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("two renders of the same quote differ")
	}
}

func TestRasterizeWidthMatchesA4Oversampled(t *testing.T) {
	img := renderQuote(t, quoteWithItems(1))
	if got := img.Bounds().Dx(); got != 1260 {
		t.Errorf("width = %dpx, want 1260 (210mm at 2x)", got)
	}
}

func TestRasterizePadsToTenRows(t *testing.T) {
	// Up to ten items the table keeps its padded height, so the surface
	// height must not change.
	short := renderQuote(t, quoteWithItems(1)).Bounds().Dy()
	padded := renderQuote(t, quoteWithItems(10)).Bounds().Dy()
	if short != padded {
		t.Errorf("height changed within the padded range: %d vs %d", short, padded)
	}

	long := renderQuote(t, quoteWithItems(40)).Bounds().Dy()
	if long <= padded {
		t.Errorf("40 items did not grow the surface: %d <= %d", long, padded)
	}
}

func TestRasterizeBrokenStampIsNotFatal(t *testing.T) {
	quote := quoteWithItems(1)
	quote.StampImage = "data:image/png;base64,%%%not-base64%%%"

	if _, err := tpl.NewRenderer().Rasterize(context.Background(), quote); err != nil {
		t.Errorf("broken stamp aborted the render: %v", err)
	}
}

func TestRasterizeNilQuote(t *testing.T) {
	if _, err := tpl.NewRenderer().Rasterize(context.Background(), nil); err == nil {
		t.Error("expected an error for a nil quote")
	}
}
