package pdfs

// PaperSize in millimetres (gofpdf unit "mm").
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

var (
	A4Size     = PaperSize{Name: "A4", Width: 210, Height: 297}
	LetterSize = PaperSize{Name: "Letter", Width: 215.9, Height: 279.4} // 8.5" x 11"
)
