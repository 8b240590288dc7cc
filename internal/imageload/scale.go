package imageload

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale shrinks src so neither side exceeds maxPixels. Smaller images and
// non-positive limits return src unchanged.
func Scale(src image.Image, maxPixels int) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxPixels <= 0 || (width <= maxPixels && height <= maxPixels) {
		return src
	}

	var scale float64
	if width > height {
		scale = float64(maxPixels) / float64(width)
	} else {
		scale = float64(maxPixels) / float64(height)
	}

	newWidth := max(int(float64(width)*scale), 1)
	newHeight := max(int(float64(height)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
