// Package steg hides bytes in the channel parity of a P3 image. Pixels are
// visited in a pseudo-random order seeded by a shared secret, and every byte
// occupies three pixels: bits 7-5, 4-2 and 1 in the red channel of the third.
package steg

import (
	"fmt"

	"ppmsteg/ppm"
)

const pixelsPerByte = 3

type CapacityError struct {
	Message int
	Pixels  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("message of %d bytes needs %d pixels, image has %d",
		e.Message, e.Message*pixelsPerByte, e.Pixels)
}

// Capacity is the number of bytes an image can carry, and the number Decode
// always returns.
func Capacity(img *ppm.Image) int {
	return img.PixelCount() / pixelsPerByte
}

// Encode embeds msg into img in place. The image is left untouched when msg
// does not fit.
func Encode(img *ppm.Image, msg []byte, secret uint32) error {
	pixels := img.PixelCount()
	if pixels < len(msg)*pixelsPerByte {
		return &CapacityError{Message: len(msg), Pixels: pixels}
	}

	s := NewSampler(secret, pixels)
	for _, c := range msg {
		bit := 7
		for bit >= 0 {
			idx, err := s.Next()
			if err != nil {
				return fmt.Errorf("could not pick pixel for byte: %w", err)
			}

			px := &img.Pixels[idx]
			for ch := ppm.Red; ch <= ppm.Blue && bit >= 0; ch++ {
				px[ch] = EmbedBit(px[ch], uint(c>>bit))
				bit--
			}
		}
	}

	return nil
}

// Decode reads Capacity(img) bytes back using the same pixel order as Encode.
// The message length is not stored, so bytes past the real message are
// whatever the untouched pixels' parities spell. A wrong secret is not an
// error, it yields different bytes.
func Decode(img *ppm.Image, secret uint32) ([]byte, error) {
	length := Capacity(img)
	msg := make([]byte, 0, length)

	s := NewSampler(secret, img.PixelCount())
	for range length {
		var c byte
		bit := 7
		for bit >= 0 {
			idx, err := s.Next()
			if err != nil {
				return msg, fmt.Errorf("could not pick pixel for byte %d: %w", len(msg), err)
			}

			px := img.Pixels[idx]
			for ch := ppm.Red; ch <= ppm.Blue && bit >= 0; ch++ {
				c |= byte(ExtractBit(px[ch])) << bit
				bit--
			}
		}
		msg = append(msg, c)
	}

	return msg, nil
}

// Overflow counts channels above the image's declared max value.
func Overflow(img *ppm.Image) int {
	var n int
	for _, px := range img.Pixels {
		for _, v := range px {
			if v > img.Max {
				n++
			}
		}
	}
	return n
}
