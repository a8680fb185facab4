package libio

import (
	"github.com/chewxy/math32"
	"github.com/x448/float16"
)

const (
	halfInf  = 0x7c00
	halfQNaN = 0x7e00
)

// FloatToHalf converts f to a binary16 bit pattern.
//
// The rounding is the one of https://gist.github.com/rygorous/2156668
// (float_to_half_fast3): ties round away from zero, NaN collapses to a quiet
// NaN and values past the half range clamp to infinity.
func FloatToHalf(f float32) uint16 {
	const (
		f32infty  = uint32(255 << 23)
		f16infty  = uint32(31 << 23)
		signMask  = uint32(0x80000000)
		roundMask = ^uint32(0xfff)
	)
	// 2^-112 rebiases the exponent from 127 to 15
	magic := math32.Float32frombits(15 << 23)

	u := math32.Float32bits(f)
	sign := u & signMask
	u ^= sign

	var o uint16
	if u >= f32infty {
		// all exponent bits set
		if u > f32infty {
			o = halfQNaN
		} else {
			o = halfInf
		}
	} else {
		u &= roundMask
		u = math32.Float32bits(math32.Float32frombits(u) * magic)
		u -= roundMask
		if u > f16infty {
			u = f16infty
		}
		o = uint16(u >> 13)
	}

	return o | uint16(sign>>16)
}

// HalfToFloat is exact, every binary16 value is representable as float32.
func HalfToFloat(h uint16) float32 {
	return float16.Frombits(h).Float32()
}

func FloatsToHalfs(dst []uint16, src []float32) {
	for i, f := range src {
		dst[i] = FloatToHalf(f)
	}
}

func HalfsToFloats(dst []float32, src []uint16) {
	for i, h := range src {
		dst[i] = HalfToFloat(h)
	}
}
