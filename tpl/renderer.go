package tpl

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"strings"

	"bitbucket.org/mmdatafocus/quotes_backend/config"
	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/utils"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
)

// Geometry is in millimetres; pxPerMM already includes the 2x print
// oversampling (210mm -> 1260px).
const pxPerMM = 6.0

const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	marginMM     = 12.0

	// The item table always shows at least this many visual rows; shorter
	// quotes are padded with blank rows.
	minVisualRows = 10

	stampSizeMM = 18.0
)

var (
	black     = color.NRGBA{0, 0, 0, 255}
	lightGray = color.NRGBA{208, 208, 208, 255}
	headerBg  = color.NRGBA{245, 245, 245, 255}
)

// Renderer draws the fixed quote template onto a bitmap. Given the same
// QuoteData the output is byte-identical: no time, randomness or external
// state is read during a render.
type Renderer struct {
	faces faceSet
}

// NewRenderer loads the configured CJK font once. A missing or unreadable
// font degrades to the built-in fixed face (ASCII coverage only) rather than
// failing; the layout contract is unaffected.
func NewRenderer() *Renderer {
	fontPath := config.GetQuoteFontPath()
	if fontPath == "" {
		return &Renderer{faces: builtinFaces()}
	}
	faces, err := loadFaces(fontPath)
	if err != nil {
		config.LogError(config.GetLogger(), "tpl", "NewRenderer", "loading quote font, falling back to built-in face", nil, err)
		faces = builtinFaces()
	}
	return &Renderer{faces: faces}
}

// Rasterize implements the surface-to-bitmap capability consumed by the
// export pipeline.
func (r *Renderer) Rasterize(ctx context.Context, quote *models.QuoteData) (image.Image, error) {
	if quote == nil {
		return nil, fmt.Errorf("no quote to render")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := len(quote.Items)
	if rows < minVisualRows {
		rows = minVisualRows
	}

	// Fixed blocks above the table end at tableTopMM; the surface grows past
	// one page only when the item list does.
	tableTop := 118.0
	rowH := 8.0
	tableBottom := tableTop + 9.0 + float64(rows)*rowH + 10.0 // header + rows + totals
	contentHeight := tableBottom + 22.0
	if contentHeight < pageHeightMM {
		contentHeight = pageHeightMM
	}

	canvas := imaging.New(px(pageWidthMM), px(contentHeight), color.White)

	r.drawTitle(canvas)
	r.drawHeader(canvas, quote)
	r.drawProjectBanner(canvas, quote)
	r.drawItemTable(canvas, quote, tableTop, rowH, rows)

	if quote.StampImage != "" {
		if err := overlayStamp(canvas, quote.StampImage); err != nil {
			// A broken stamp only loses the overlay, never the document.
			config.LogError(config.GetLogger(), "tpl", "Rasterize", "decoding stamp image", nil, err)
		}
	}

	return canvas, nil
}

func (r *Renderer) drawTitle(canvas *image.NRGBA) {
	title := "견  적  서"
	w := textWidth(r.faces.title, title)
	drawText(canvas, r.faces.title, black, (px(pageWidthMM)-w)/2, px(26), title)
	hLine(canvas, px(marginMM), px(pageWidthMM-marginMM), px(30), 2, black)
}

func (r *Renderer) drawHeader(canvas *image.NRGBA, quote *models.QuoteData) {
	left := px(marginMM)
	y := px(42.0)

	drawText(canvas, r.faces.body, black, left, y, quote.Date)
	drawText(canvas, r.faces.body, black, left, y+px(9), quote.Supplier.CompanyName)
	drawText(canvas, r.faces.emphasis, black, left, y+px(20), quote.Recipient.CompanyName+" 귀하")
	drawText(canvas, r.faces.body, black, left, y+px(31), "아래와 같이 견적합니다.")

	r.drawSupplierBox(canvas, quote)
}

// drawSupplierBox renders the bordered supplier info grid on the right of the
// header: label cells on a gray background, value cells beside them.
func (r *Renderer) drawSupplierBox(canvas *image.NRGBA, quote *models.QuoteData) {
	boxW := 94.0
	boxX := pageWidthMM - marginMM - boxW
	boxY := 36.0
	rowH := 7.5
	labelW := 24.0

	rows := []struct {
		label string
		value string
	}{
		{"사업자번호", quote.InvoiceNumber},
		{"등록번호", quote.Supplier.RegistrationNumber},
		{"상호", quote.Supplier.CompanyName},
		{"대표자", quote.Supplier.Representative},
		{"주소", quote.Supplier.Address},
		{"업태 / 종목", joinNonEmpty(quote.Supplier.BusinessType, quote.Supplier.BusinessItem)},
		{"연락처", quote.Supplier.Contact},
	}

	boxH := rowH * float64(len(rows))
	strokeRect(canvas, px(boxX), px(boxY), px(boxX+boxW), px(boxY+boxH), 2, black)

	for i, row := range rows {
		top := boxY + rowH*float64(i)
		if i > 0 {
			hLine(canvas, px(boxX), px(boxX+boxW), px(top), 1, lightGray)
		}
		fillRect(canvas, px(boxX)+1, px(top)+1, px(boxX+labelW), px(top+rowH)-1, headerBg)
		vLine(canvas, px(boxX+labelW), px(top), px(top+rowH), 1, lightGray)

		drawText(canvas, r.faces.small, black, px(boxX+2), px(top+rowH-2), row.label)
		drawText(canvas, r.faces.small, black, px(boxX+labelW+2), px(top+rowH-2), row.value)
	}
}

func (r *Renderer) drawProjectBanner(canvas *image.NRGBA, quote *models.QuoteData) {
	top := 98.0
	h := 10.0
	strokeRect(canvas, px(marginMM), px(top), px(pageWidthMM-marginMM), px(top+h), 2, black)
	fillRect(canvas, px(marginMM)+2, px(top)+2, px(marginMM+30), px(top+h)-2, headerBg)
	drawText(canvas, r.faces.body, black, px(marginMM+4), px(top+h-3), "공 사 명")
	drawText(canvas, r.faces.body, black, px(marginMM+34), px(top+h-3), quote.ProjectName)
}

var itemColumns = []struct {
	title string
	width float64
}{
	{"품목명", 44},
	{"규격", 24},
	{"수량", 14},
	{"단위", 12},
	{"단가", 24},
	{"공급가액", 26},
	{"세액", 20},
	{"비고", 22},
}

func (r *Renderer) drawItemTable(canvas *image.NRGBA, quote *models.QuoteData, top float64, rowH float64, rows int) {
	tableW := 0.0
	for _, col := range itemColumns {
		tableW += col.width
	}
	left := (pageWidthMM - tableW) / 2
	headerH := 9.0
	bottom := top + headerH + float64(rows)*rowH + 10.0

	strokeRect(canvas, px(left), px(top), px(left+tableW), px(bottom), 2, black)

	// Header row.
	fillRect(canvas, px(left)+1, px(top)+1, px(left+tableW)-1, px(top+headerH), headerBg)
	hLine(canvas, px(left), px(left+tableW), px(top+headerH), 1, black)
	x := left
	for _, col := range itemColumns {
		cw := textWidth(r.faces.small, col.title)
		drawText(canvas, r.faces.small, black, px(x)+(px(col.width)-cw)/2, px(top+headerH-2.5), col.title)
		x += col.width
	}

	// Column separators run the full table height.
	x = left
	for _, col := range itemColumns[:len(itemColumns)-1] {
		x += col.width
		vLine(canvas, px(x), px(top), px(bottom), 1, lightGray)
	}

	// Item rows, blank-padded up to the row budget.
	for i := 0; i < rows; i++ {
		rowTop := top + headerH + float64(i)*rowH
		if i > 0 {
			hLine(canvas, px(left), px(left+tableW), px(rowTop), 1, lightGray)
		}
		if i >= len(quote.Items) {
			continue
		}
		item := quote.Items[i]
		baseline := px(rowTop + rowH - 2.5)

		x := left
		drawText(canvas, r.faces.small, black, px(x+2), baseline, item.Name)
		x += itemColumns[0].width
		drawText(canvas, r.faces.small, black, px(x+2), baseline, item.Spec)
		x += itemColumns[1].width
		drawTextRight(canvas, r.faces.small, black, px(x+itemColumns[2].width-2), baseline, item.Quantity.String())
		x += itemColumns[2].width
		drawText(canvas, r.faces.small, black, px(x+2), baseline, item.Unit)
		x += itemColumns[3].width
		drawTextRight(canvas, r.faces.small, black, px(x+itemColumns[4].width-2), baseline, utils.FormatAmount(item.UnitPrice))
		x += itemColumns[4].width
		drawTextRight(canvas, r.faces.small, black, px(x+itemColumns[5].width-2), baseline, utils.FormatAmount(item.SupplyPrice))
		x += itemColumns[5].width
		drawTextRight(canvas, r.faces.small, black, px(x+itemColumns[6].width-2), baseline, utils.FormatAmount(item.Tax))
		x += itemColumns[6].width
		drawText(canvas, r.faces.small, black, px(x+2), baseline, item.Note)
	}

	// Totals row.
	totalsTop := top + headerH + float64(rows)*rowH
	hLine(canvas, px(left), px(left+tableW), px(totalsTop), 2, black)
	fillRect(canvas, px(left)+1, px(totalsTop)+2, px(left+tableW)-1, px(bottom)-1, headerBg)
	baseline := px(bottom - 3)
	drawText(canvas, r.faces.body, black, px(left+2), baseline, "합계")

	x = left
	for _, col := range itemColumns[:4] {
		x += col.width
	}
	drawTextRight(canvas, r.faces.body, black, px(x+itemColumns[4].width+itemColumns[5].width-2), baseline, utils.FormatAmount(quote.TotalSupplyPrice))
	drawTextRight(canvas, r.faces.body, black, px(x+itemColumns[4].width+itemColumns[5].width+itemColumns[6].width-2), baseline, utils.FormatAmount(quote.TotalTax))

	label := "합계금액"
	if quote.Type == models.QuoteTypeReceipt {
		label = "영수금액"
	}
	amount := fmt.Sprintf("%s: %s원", label, utils.FormatAmount(quote.TotalAmount))
	drawTextRight(canvas, r.faces.emphasis, black, px(left+tableW-2), px(bottom+8), amount)
}

// overlayStamp decodes the inline stamp image and overlays it on the
// representative's cell of the supplier box.
func overlayStamp(canvas *image.NRGBA, dataURI string) error {
	raw, err := decodeDataURI(dataURI)
	if err != nil {
		return err
	}
	stamp, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	size := px(stampSizeMM)
	resized := imaging.Resize(stamp, size, size, imaging.Lanczos)

	// Over the representative row of the supplier box (third/fourth rows).
	x := px(pageWidthMM - marginMM - 26)
	y := px(52.0)
	result := imaging.Overlay(canvas, resized, image.Pt(x, y), 1.0)
	copy(canvas.Pix, result.Pix)
	return nil
}

func decodeDataURI(uri string) ([]byte, error) {
	idx := strings.Index(uri, ",")
	if !strings.HasPrefix(uri, "data:") || idx < 0 {
		return nil, fmt.Errorf("not a data URI")
	}
	return base64.StdEncoding.DecodeString(uri[idx+1:])
}

func joinNonEmpty(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + " / " + b
	case a != "":
		return a
	default:
		return b
	}
}

func px(mm float64) int {
	return int(mm*pxPerMM + 0.5)
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
