package tpl

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func drawText(dst *image.NRGBA, face font.Face, col color.NRGBA, x int, y int, s string) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawTextRight places s so its right edge sits on x.
func drawTextRight(dst *image.NRGBA, face font.Face, col color.NRGBA, x int, y int, s string) {
	drawText(dst, face, col, x-textWidth(face, s), y, s)
}

func fillRect(dst *image.NRGBA, x0, y0, x1, y1 int, col color.NRGBA) {
	draw.Draw(dst, image.Rect(x0, y0, x1, y1), image.NewUniform(col), image.Point{}, draw.Src)
}

func hLine(dst *image.NRGBA, x0, x1, y, thickness int, col color.NRGBA) {
	fillRect(dst, x0, y, x1, y+thickness, col)
}

func vLine(dst *image.NRGBA, x, y0, y1, thickness int, col color.NRGBA) {
	fillRect(dst, x, y0, x+thickness, y1, col)
}

func strokeRect(dst *image.NRGBA, x0, y0, x1, y1, thickness int, col color.NRGBA) {
	hLine(dst, x0, x1, y0, thickness, col)
	hLine(dst, x0, x1, y1-thickness, thickness, col)
	vLine(dst, x0, y0, y1, thickness, col)
	vLine(dst, x1-thickness, y0, y1, thickness, col)
}
