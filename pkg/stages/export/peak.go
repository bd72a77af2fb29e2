package export

import "math"

// peak returns the largest absolute sample of a little-endian chunk,
// normalized to 0..1.
func peak(chunk []byte, width int) float64 {
	if width < 1 || width > 4 {
		return 0
	}
	var top int64
	for i := 0; i+width <= len(chunk); i += width {
		var v uint32
		for b := 0; b < width; b++ {
			v |= uint32(chunk[i+b]) << (8 * b)
		}
		// Sign-extend from the top bit of the sample.
		shift := 32 - 8*width
		s := int64(int32(v<<shift) >> shift)
		if s < 0 {
			s = -s
		}
		top = max(top, s)
	}
	return math.Min(1, float64(top)/math.Ldexp(1, 8*width-1))
}
