// Package ppm reads and writes the plain text (P3) variant of the portable
// pixmap format.
package ppm

import (
	"fmt"
)

const Magic = "P3"

// MaxPixels bounds width*height for parsed images.
const MaxPixels = 1 << 28

const (
	Red = iota
	Green
	Blue
)

// Pixel holds the red, green and blue channel values of one pixel. Values are
// not clamped to the image's declared maximum.
type Pixel [3]uint

// Image is a parsed P3 raster. Pixels are stored row-major, so the pixel at
// column x of row y is Pixels[y*Width+x].
type Image struct {
	Width    int
	Height   int
	Max      uint
	Comments []string
	Pixels   []Pixel
}

func New(width, height int, maxVal uint) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	} else if width > MaxPixels/height {
		return nil, fmt.Errorf("image size %dx%d exceeds %d pixels", width, height, MaxPixels)
	}
	if maxVal > 255 {
		return nil, fmt.Errorf("invalid maximum channel value: %d", maxVal)
	}

	return &Image{
		Width:  width,
		Height: height,
		Max:    maxVal,
		Pixels: make([]Pixel, width*height),
	}, nil
}

func (m *Image) PixelCount() int {
	return m.Width * m.Height
}

// AddComment appends a comment line. A missing leading '#' or trailing newline
// is supplied.
func (m *Image) AddComment(text string) {
	if len(text) == 0 || text[0] != '#' {
		text = "# " + text
	}
	if text[len(text)-1] != '\n' {
		text += "\n"
	}
	m.Comments = append(m.Comments, text)
}

func (m *Image) Clone() *Image {
	c := *m
	c.Comments = append([]string(nil), m.Comments...)
	c.Pixels = append([]Pixel(nil), m.Pixels...)
	return &c
}

type Stage int

const (
	StageMagic Stage = iota
	StageComment
	StageDimensions
	StageMaxValue
	StagePixels
)

func (s Stage) String() string {
	switch s {
	case StageMagic:
		return "magic marker"
	case StageComment:
		return "comment"
	case StageDimensions:
		return "dimensions"
	case StageMaxValue:
		return "max value"
	case StagePixels:
		return "pixel stream"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// FormatError reports malformed or unsupported P3 input. Stage names the part
// of the stream that could not be read.
type FormatError struct {
	Stage Stage
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("ppm: invalid %s: %v", e.Stage, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
