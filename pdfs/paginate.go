package pdfs

// Pagination describes how one tall captured surface maps onto fixed-height
// pages. The full image is drawn once per page; every page after the first
// places it at a negative vertical offset so the page window reveals the next
// unseen slice.
type Pagination struct {
	// ImageWidth and ImageHeight are the captured surface scaled to paper
	// units, aspect ratio preserved (width pinned to the paper width).
	ImageWidth  float64
	ImageHeight float64
	// Offsets holds the y position of the full image on each page, in order.
	Offsets []float64
}

func (p Pagination) PageCount() int {
	return len(p.Offsets)
}

// Paginate slices a captured bitmap into page windows of the given paper.
//
// The loop keeps the original exporter's `heightLeft >= 0` condition: a
// surface exactly k pages tall emits k+1 pages, the last one blank. Callers
// and tests rely on that boundary staying put.
func Paginate(bitmapWidth int, bitmapHeight int, paper PaperSize) Pagination {
	if bitmapWidth <= 0 || bitmapHeight <= 0 {
		return Pagination{ImageWidth: paper.Width, Offsets: []float64{0}}
	}

	imageHeight := float64(bitmapHeight) * paper.Width / float64(bitmapWidth)

	offsets := []float64{0}
	heightLeft := imageHeight - paper.Height
	for heightLeft >= 0 {
		offsets = append(offsets, heightLeft-imageHeight)
		heightLeft -= paper.Height
	}

	return Pagination{
		ImageWidth:  paper.Width,
		ImageHeight: imageHeight,
		Offsets:     offsets,
	}
}
