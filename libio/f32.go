package libio

import "github.com/pierrec/lz4/v4"

const MagicNumberF32 = 0x6d16837d

type FloatImageVersion uint32

const (
	F32Version1_001_000 = FloatImageVersion(1_001_000)
	// adds FloatImageCompressionHalf16Lz4
	F32Version1_002_000 = FloatImageVersion(1_002_000)
)

type FloatImageCompression uint32

const (
	FloatImageCompressionNone = FloatImageCompression(iota)
	// per channel [min, max] range followed by 16 bit fixed point values
	FloatImageCompressionFixedPoint16Lz4
	// binary16 values, see FloatToHalf
	FloatImageCompressionHalf16Lz4
)

func (c FloatImageCompression) valid() bool {
	return c <= FloatImageCompressionHalf16Lz4
}

type FloatImageHeader struct {
	Check         uint32
	Version       FloatImageVersion
	Width, Height uint32
	Channels      uint8
	Compression   FloatImageCompression
	Unused        [14]uint8
}

var lz4Levels = []lz4.CompressionLevel{lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9}

// clamps level into the lz4 range, 0 being the fast mode
func lz4Level(level int) lz4.CompressionLevel {
	if level < 0 {
		level = 0
	}
	if level >= len(lz4Levels) {
		level = len(lz4Levels) - 1
	}
	return lz4Levels[level]
}
