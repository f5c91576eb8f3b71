package ppm

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
)

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// WriteTo serializes m as P3 text: the magic line, the comments verbatim, the
// size and max value lines, then one line of space separated triplets per
// row.
func (m *Image) WriteTo(w io.Writer) (int64, error) {
	if len(m.Pixels) != m.PixelCount() {
		return 0, fmt.Errorf("ppm: image holds %d pixels, %dx%d needs %d", len(m.Pixels), m.Width, m.Height, m.PixelCount())
	}

	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)

	bw.WriteString(Magic)
	bw.WriteByte('\n')
	for _, c := range m.Comments {
		bw.WriteString(c)
	}
	fmt.Fprintf(bw, "%d %d\n%d\n", m.Width, m.Height, m.Max)

	var num []byte
	for i, px := range m.Pixels {
		if i > 0 {
			if i%m.Width == 0 {
				bw.WriteByte('\n')
			} else {
				bw.WriteByte(' ')
			}
		}

		num = strconv.AppendUint(num[:0], uint64(px[Red]), 10)
		num = append(num, ' ')
		num = strconv.AppendUint(num, uint64(px[Green]), 10)
		num = append(num, ' ')
		num = strconv.AppendUint(num, uint64(px[Blue]), 10)
		bw.Write(num)
	}
	bw.WriteByte('\n')

	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("could not write ppm: %w", err)
	}
	return cw.n, nil
}

// Encode writes any image as P3 with 8-bit channels. A *Image is written
// unchanged.
func Encode(w io.Writer, m image.Image) error {
	img, ok := m.(*Image)
	if !ok {
		img = FromImage(m)
	}
	_, err := img.WriteTo(w)
	return err
}
