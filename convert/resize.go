package convert

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// resize scales img to fit within width x height keeping its aspect ratio. A
// zero dimension follows from the other one.
func resize(logger *slog.Logger, img image.Image, width, height int) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())
	srcAR := srcWidth / srcHeight

	destWidth := float64(width)
	destHeight := float64(height)
	switch {
	case width == 0 && height == 0:
		return img
	case width == 0:
		destWidth = math.Round(destHeight * srcAR)
	case height == 0:
		destHeight = math.Round(destWidth / srcAR)
	default:
		if srcAR < destWidth/destHeight {
			destWidth = math.Round(destHeight * srcAR)
		} else {
			destHeight = math.Round(destWidth / srcAR)
		}
	}

	destSize := image.Rect(0, 0, max(int(destWidth), 1), max(int(destHeight), 1))
	if destSize.Dx() == srcBounds.Dx() && destSize.Dy() == srcBounds.Dy() {
		return img
	}

	logger.Info("resizing", "width", destSize.Dx(), "height", destSize.Dy())
	dest := image.NewNRGBA(destSize)
	draw.CatmullRom.Scale(dest, destSize, img, srcBounds, draw.Src, nil)

	return dest
}
