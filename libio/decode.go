package libio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/pierrec/lz4/v4"
)

// limits of a decoded image, checked before the pixels are allocated
const (
	maxF32Dimension = 1 << 16
	maxF32Values    = 1 << 28
)

func DecodeFloatImage(r io.Reader) (img *FloatImage, err error) {
	br := NewBinaryReader(r)

	header := FloatImageHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected f32 header; byte 0x%08x: %w", br.LastIndex, br.Err)
	}

	if header.Check != MagicNumberF32 {
		return nil, fmt.Errorf("f32 header is corrupt; byte 0x%08x", br.LastIndex)
	}

	if header.Version != F32Version1_001_000 && header.Version != F32Version1_002_000 {
		return nil, fmt.Errorf("f32 version %d unsupported; byte 0x%08x", header.Version, br.LastIndex)
	}

	if header.Compression == FloatImageCompressionHalf16Lz4 && header.Version < F32Version1_002_000 {
		return nil, fmt.Errorf("f32 version %d does not support half compression", header.Version)
	}

	if header.Channels == 0 || header.Width == 0 || header.Height == 0 {
		return nil, fmt.Errorf("f32 image %dx%dx%d is empty", header.Width, header.Height, header.Channels)
	}
	if header.Width > maxF32Dimension || header.Height > maxF32Dimension ||
		uint64(header.Width)*uint64(header.Height)*uint64(header.Channels) > maxF32Values {
		return nil, fmt.Errorf("f32 image %dx%dx%d is too large", header.Width, header.Height, header.Channels)
	}

	channels, width, height := int(header.Channels), int(header.Width), int(header.Height)
	count := width * height
	data := make([]float32, count*channels)

	switch header.Compression {
	case FloatImageCompressionNone:
		if !br.ReadRef(data) {
			err = br.Err
		}
	case FloatImageCompressionFixedPoint16Lz4:
		rangeBytes := 4 * 2 * channels
		buf := make([]byte, rangeBytes+count*channels*2)
		if _, err = io.ReadFull(lz4.NewReader(br.Src), buf); err != nil {
			break
		}
		err = decompressFixedPoint16(channels, count, buf, data)
	case FloatImageCompressionHalf16Lz4:
		halfs := make([]uint16, count*channels)
		if err = binary.Read(lz4.NewReader(br.Src), binary.LittleEndian, halfs); err != nil {
			break
		}
		HalfsToFloats(data, halfs)
	default:
		err = fmt.Errorf("compression %d unsupported", header.Compression)
	}

	if err != nil {
		return nil, fmt.Errorf("could not decompress f32 pixels: %w", err)
	}

	return NewFloatImage(data, channels, width, height), nil
}

func decompressFixedPoint16(channels, count int, data []byte, dst []float32) error {
	br := &BinaryReader{
		Src:   bytes.NewReader(data),
		Order: binary.LittleEndian,
	}
	fix := make([]uint16, count)
	for ch := 0; ch < channels; ch++ {
		var imin, imax uint32
		br.ReadUInt32(&imin)
		br.ReadUInt32(&imax)
		br.ReadRef(fix)
		if br.Err != nil {
			return br.Err
		}

		min := math32.Float32frombits(imin)
		max := math32.Float32frombits(imax)
		r := max - min
		for i := 0; i < count; i++ {
			dst[i*channels+ch] = (float32(fix[i])/0xffff)*r + min
		}
	}
	return nil
}
