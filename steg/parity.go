package steg

// EmbedBit returns v, or v+1 when the parity of v differs from bit. It never
// decrements, so the result may exceed the image's max value.
func EmbedBit(v uint, bit uint) uint {
	if v&1 == bit&1 {
		return v
	}
	return v + 1
}

func ExtractBit(v uint) uint {
	return v & 1
}
