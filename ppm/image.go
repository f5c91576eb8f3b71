package ppm

import (
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("ppm", Magic, decode, decodeConfig)
}

func decode(r io.Reader) (image.Image, error) {
	return Parse(r)
}

func decodeConfig(r io.Reader) (image.Config, error) {
	img, err := ParseHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: img.ColorModel(),
		Width:      img.Width,
		Height:     img.Height,
	}, nil
}

var _ image.Image = &Image{}

func (m *Image) ColorModel() color.Model {
	return color.RGBA64Model
}

func (m *Image) Opaque() bool {
	return true
}

func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At scales channels from [0, Max] to 16 bits. Values pushed above Max by
// embedding saturate.
func (m *Image) At(x, y int) color.Color {
	if !image.Pt(x, y).In(m.Bounds()) {
		return color.RGBA64{}
	}

	px := m.Pixels[y*m.Width+x]
	return color.RGBA64{
		R: m.scale(px[Red]),
		G: m.scale(px[Green]),
		B: m.scale(px[Blue]),
		A: 0xffff,
	}
}

func (m *Image) scale(v uint) uint16 {
	if m.Max == 0 {
		return 0
	}
	s := uint64(v) * 0xffff / uint64(m.Max)
	if s > 0xffff {
		return 0xffff
	}
	return uint16(s)
}

// FromImage converts m to an 8-bit P3 image. Transparent areas end up
// composited over black.
func FromImage(m image.Image) *Image {
	b := m.Bounds()
	img := &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Max:    255,
		Pixels: make([]Pixel, 0, b.Dx()*b.Dy()),
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
			img.Pixels = append(img.Pixels, Pixel{uint(c.R), uint(c.G), uint(c.B)})
		}
	}
	return img
}
