package sources

import "math"

// clipLevel keeps quantized samples away from the integer limits.
const clipLevel = 0.99

// quantize converts float samples to signed little-endian integers of the
// given byte width. Samples are clipped to ±0.99, scaled by 2^(8*width-1)
// and truncated toward zero.
func quantize(samples []float64, width int) []byte {
	out := make([]byte, len(samples)*width)
	scale := math.Ldexp(1, 8*width-1)
	for i, s := range samples {
		s = max(-clipLevel, min(clipLevel, s))
		v := uint32(int32(s * scale))
		for b := 0; b < width; b++ {
			out[i*width+b] = byte(v >> (8 * b))
		}
	}
	return out
}
