package charts

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/mitsiuTrimble/CV-dashboard/internal/util"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Placeholder returns a light grey w x h image with text centred on it. It
// stands in for charts with no data and previews that fail to load.
func Placeholder(w, h int, text string) image.Image {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 241, G: 245, B: 249, A: 255}), image.Point{}, draw.Src)

	text = strings.TrimSpace(text)
	if text == "" {
		return img
	}
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 51, G: 65, B: 85, A: 255}), Face: face}
	lines := util.WrapLines(text, (w-8)/face.Advance)
	lineHeight := face.Height
	y := (h-len(lines)*lineHeight)/2 + face.Metrics().Ascent.Ceil()
	for _, line := range lines {
		x := (w - dr.MeasureString(line).Ceil()) / 2
		if x < 4 {
			x = 4
		}
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(line)
		y += lineHeight
	}
	return img
}

// WritePlaceholder encodes Placeholder(w, h, text) as PNG.
func WritePlaceholder(out io.Writer, w, h int, text string) error {
	return png.Encode(out, Placeholder(w, h, text))
}
