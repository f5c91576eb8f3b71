package steg

import (
	"errors"
	"math/rand"
)

var ErrSamplerExhausted = errors.New("every pixel has already been drawn")

// Sampler yields distinct pixel indices in an order fixed by the secret. Two
// samplers built from the same secret and pixel count yield the same sequence.
type Sampler struct {
	rng    *rand.Rand
	pixels int
	chosen map[int]struct{}
}

func NewSampler(secret uint32, pixels int) *Sampler {
	return &Sampler{
		rng:    rand.New(rand.NewSource(int64(secret))),
		pixels: pixels,
		chosen: make(map[int]struct{}),
	}
}

// Next draws indices in [0, pixels) and redraws any already returned.
func (s *Sampler) Next() (int, error) {
	if len(s.chosen) >= s.pixels {
		return 0, ErrSamplerExhausted
	}

	idx := s.rng.Intn(s.pixels)
	for {
		if _, ok := s.chosen[idx]; !ok {
			break
		}
		idx = s.rng.Intn(s.pixels)
	}

	s.chosen[idx] = struct{}{}
	return idx, nil
}

func (s *Sampler) Drawn() int {
	return len(s.chosen)
}
