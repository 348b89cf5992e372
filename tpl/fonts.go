package tpl

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

type faceSet struct {
	title    font.Face
	emphasis font.Face
	body     font.Face
	small    font.Face
}

// loadFaces parses one TTF/OTF file into the sizes the template uses.
func loadFaces(path string) (faceSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return faceSet{}, err
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return faceSet{}, err
	}

	newFace := func(size float64) (font.Face, error) {
		return opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	var faces faceSet
	if faces.title, err = newFace(52); err != nil {
		return faceSet{}, err
	}
	if faces.emphasis, err = newFace(28); err != nil {
		return faceSet{}, err
	}
	if faces.body, err = newFace(22); err != nil {
		return faceSet{}, err
	}
	if faces.small, err = newFace(18); err != nil {
		return faceSet{}, err
	}
	return faces, nil
}

// builtinFaces covers ASCII only; Hangul text degrades to missing glyphs but
// layout geometry and determinism are unchanged.
func builtinFaces() faceSet {
	f := basicfont.Face7x13
	return faceSet{title: f, emphasis: f, body: f, small: f}
}
