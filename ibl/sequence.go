package ibl

// ReverseBits mirrors all 32 bits of v, bit 0 becomes bit 31.
func ReverseBits(v uint32) uint32 {
	v = ((v >> 1) & 0x55555555) | ((v & 0x55555555) << 1)
	v = ((v >> 2) & 0x33333333) | ((v & 0x33333333) << 2)
	v = ((v >> 4) & 0x0F0F0F0F) | ((v & 0x0F0F0F0F) << 4)
	v = ((v >> 8) & 0x00FF00FF) | ((v & 0x00FF00FF) << 8)
	v = (v >> 16) | (v << 16)
	return v
}

// RadicalInverse is the base 2 van der Corput sequence.
// The division by 2^32 happens in float64, the result is narrowed afterwards.
func RadicalInverse(i uint32) float32 {
	return float32(float64(ReverseBits(i)) / 0x100000000)
}

// Hammersley returns the i-th of n points of the 2D Hammersley set.
func Hammersley(i, n uint32) (e1, e2 float32) {
	return float32(i) / float32(n), RadicalInverse(i)
}

func generateHammersleySequence(count int) [][2]float32 {
	samples := make([][2]float32, count)
	for i := 0; i < count; i++ {
		samples[i][0], samples[i][1] = Hammersley(uint32(i), uint32(count))
	}
	return samples
}
