package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

type parser struct {
	r   *bufio.Reader
	img *Image
}

// Parse reads a P3 image. Reading stops right after the last declared pixel,
// anything that follows in r is left unread.
func Parse(r io.Reader) (*Image, error) {
	p := newParser(r)
	if err := p.header(); err != nil {
		return nil, err
	}
	if err := p.raster(); err != nil {
		return nil, err
	}
	return p.img, nil
}

// ParseHeader reads everything up to and including the max value. The
// returned image has no pixels.
func ParseHeader(r io.Reader) (*Image, error) {
	p := newParser(r)
	if err := p.header(); err != nil {
		return nil, err
	}
	return p.img, nil
}

func newParser(r io.Reader) *parser {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &parser{r: br, img: &Image{}}
}

func (p *parser) header() error {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(p.r, magic); err != nil {
		return &FormatError{StageMagic, noEOF(err)}
	} else if string(magic) != Magic {
		return &FormatError{StageMagic, fmt.Errorf("unsupported marker %q", magic)}
	}

	b, err := p.r.ReadByte()
	if err != nil {
		return &FormatError{StageDimensions, noEOF(err)}
	} else if !isSpace(b) {
		return &FormatError{StageMagic, fmt.Errorf("unsupported marker %q", append(magic, b))}
	}

	width, err := p.headerInt(StageDimensions)
	if err != nil {
		return err
	}
	height, err := p.headerInt(StageDimensions)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return &FormatError{StageDimensions, fmt.Errorf("non-positive size %dx%d", width, height)}
	} else if width > MaxPixels/height {
		return &FormatError{StageDimensions, fmt.Errorf("size %dx%d exceeds %d pixels", width, height, MaxPixels)}
	}

	maxVal, err := p.headerInt(StageMaxValue)
	if err != nil {
		return err
	}
	if maxVal < 0 || maxVal > 255 {
		return &FormatError{StageMaxValue, fmt.Errorf("%d out of range [0, 255]", maxVal)}
	}

	p.img.Width, p.img.Height, p.img.Max = width, height, uint(maxVal)
	return nil
}

func (p *parser) raster() error {
	count := p.img.PixelCount()
	// grow as data arrives so a lying header cannot force a huge allocation
	p.img.Pixels = make([]Pixel, 0, min(count, 1<<16))

	for i := range count {
		var px Pixel
		for ch := range px {
			if err := p.skipSpace(false); err != nil {
				return &FormatError{StagePixels, fmt.Errorf("pixel %d/%d: %w", i, count, err)}
			}
			tok, err := p.token()
			if err != nil {
				return &FormatError{StagePixels, fmt.Errorf("pixel %d/%d: %w", i, count, err)}
			}
			v, err := strconv.ParseUint(tok, 10, 32)
			if err != nil {
				return &FormatError{StagePixels, fmt.Errorf("pixel %d/%d: %w", i, count, err)}
			}
			px[ch] = uint(v)
		}
		p.img.Pixels = append(p.img.Pixels, px)
	}

	return nil
}

func (p *parser) headerInt(stage Stage) (int, error) {
	if err := p.skipSpace(true); err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			return 0, err
		}
		return 0, &FormatError{stage, err}
	}

	tok, err := p.token()
	if err != nil {
		return 0, &FormatError{stage, err}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &FormatError{stage, err}
	}
	return n, nil
}

// skipSpace consumes whitespace and, in the header, '#' comment lines which
// are collected into the image.
func (p *parser) skipSpace(comments bool) error {
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			return noEOF(err)
		}

		switch {
		case isSpace(b):
			continue
		case b == '#' && comments:
			line, err := p.r.ReadString('\n')
			if err != nil {
				return &FormatError{StageComment, noEOF(err)}
			}
			p.img.Comments = append(p.img.Comments, "#"+line)
		default:
			return p.r.UnreadByte()
		}
	}
}

func (p *parser) token() (string, error) {
	var buf []byte
	for {
		b, err := p.r.ReadByte()
		if err == io.EOF {
			if len(buf) == 0 {
				return "", io.ErrUnexpectedEOF
			}
			break
		} else if err != nil {
			return "", err
		}

		if isSpace(b) {
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
