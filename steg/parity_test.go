package steg

import "testing"

func TestEmbedBit(t *testing.T) {
	tests := []struct {
		v, bit, want uint
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 1, 1},
		{1, 0, 2},
		{254, 1, 255},
		{255, 0, 256},
		{255, 1, 255},
	}

	for _, tt := range tests {
		if got := EmbedBit(tt.v, tt.bit); got != tt.want {
			t.Errorf("EmbedBit(%d, %d) = %d, want %d", tt.v, tt.bit, got, tt.want)
		}
		if got := ExtractBit(EmbedBit(tt.v, tt.bit)); got != tt.bit {
			t.Errorf("ExtractBit(EmbedBit(%d, %d)) = %d", tt.v, tt.bit, got)
		}
	}
}

func TestExtractBit(t *testing.T) {
	for v := range uint(300) {
		if got := ExtractBit(v); got != v%2 {
			t.Errorf("ExtractBit(%d) = %d, want %d", v, got, v%2)
		}
	}
}
