package bananagen

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// PlaceholderSize is the edge length in pixels of every placeholder image.
const PlaceholderSize = 512

// PlaceholderColor is the solid fill of a placeholder image.
type PlaceholderColor color.RGBA

var (
	// PlaceholderTextToImage fills placeholders of a degraded text-to-image result.
	PlaceholderTextToImage = PlaceholderColor{R: 128, G: 0, B: 128, A: 255} // purple

	// PlaceholderImageToImage fills the placeholder of a degraded image+text result.
	PlaceholderImageToImage = PlaceholderColor{R: 255, G: 165, B: 0, A: 255} // orange
)

// NewPlaceholderImage returns a PlaceholderSize square filled with c.
func NewPlaceholderImage(c PlaceholderColor) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA(c)}, image.Point{}, draw.Src)
	return img
}

// Placeholder returns the PNG encoding of NewPlaceholderImage(c).
func Placeholder(c PlaceholderColor) []byte {
	var buf bytes.Buffer
	// Encoding an in-memory RGBA into a bytes.Buffer cannot fail.
	_ = png.Encode(&buf, NewPlaceholderImage(c))
	return buf.Bytes()
}
