package libio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/pierrec/lz4/v4"
)

// EncodeFloatImage writes img in the f32 container. level selects the lz4
// compression level for the compressed modes and is ignored otherwise.
func EncodeFloatImage(w io.Writer, img *FloatImage, compression FloatImageCompression, level int) (err error) {
	if !compression.valid() {
		return fmt.Errorf("f32 compression %d unsupported", compression)
	}

	bw := NewBinaryWriter(w)
	defer func() {
		if bw.Err != nil {
			if err == nil {
				err = bw.Err
			} else {
				err = fmt.Errorf("%v: %w", err, bw.Err)
			}
		}
	}()

	version := F32Version1_001_000
	if compression == FloatImageCompressionHalf16Lz4 {
		version = F32Version1_002_000
	}

	header := FloatImageHeader{
		Check:       MagicNumberF32,
		Version:     version,
		Width:       uint32(img.Width),
		Height:      uint32(img.Height),
		Channels:    uint8(img.Channels),
		Compression: compression,
	}

	if !bw.WriteRef(header) {
		return fmt.Errorf("could not write f32 header: %w", bw.Err)
	}

	var data []byte

	switch compression {
	case FloatImageCompressionNone:
		if !bw.WriteRef(img.Pix) {
			return fmt.Errorf("could not write f32 pixels: %w", bw.Err)
		}
		return nil
	case FloatImageCompressionFixedPoint16Lz4:
		data, err = compressFixedPoint16(img.Channels, img.Count(), img.Pix)
	case FloatImageCompressionHalf16Lz4:
		data, err = compressHalf16(img.Pix)
	}
	if err == nil {
		data, err = compressLz4(data, level)
	}
	if err != nil {
		return fmt.Errorf("could not compress f32 pixels: %w", err)
	}

	if !bw.WriteBytes(data) {
		return fmt.Errorf("could not write f32 encoded pixels: %w", bw.Err)
	}

	return nil
}

func compressLz4(data []byte, level int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	lzw := lz4.NewWriter(buf)
	if err := lzw.Apply(lz4.CompressionLevelOption(lz4Level(level))); err != nil {
		return nil, err
	}
	if _, err := lzw.Write(data); err != nil {
		return nil, err
	}
	if err := lzw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressHalf16(pix []float32) ([]byte, error) {
	halfs := make([]uint16, len(pix))
	FloatsToHalfs(halfs, pix)
	buf := bytes.NewBuffer(make([]byte, 0, len(halfs)*2))
	bw := &BinaryWriter{Order: binary.LittleEndian, Dst: buf}
	bw.WriteRef(halfs)
	return buf.Bytes(), bw.Err
}

func compressFixedPoint16(channels int, count int, pix []float32) ([]byte, error) {
	rangeBytes := 4 * 2 * channels
	dataBytes := count * channels * 2
	buf := bytes.NewBuffer(make([]byte, 0, rangeBytes+dataBytes))
	bw := &BinaryWriter{Order: binary.LittleEndian, Dst: buf}
	for ch := 0; ch < channels; ch++ {
		compressChannelFixedPoint16(channels, count, pix, bw, ch)
		if bw.Err != nil {
			return nil, bw.Err
		}
	}
	return buf.Bytes(), nil
}

func compressChannelFixedPoint16(channels int, count int, pix []float32, bw *BinaryWriter, ch int) {
	min, max := channelRange(channels, count, pix, ch)

	bw.WriteUInt32(math32.Float32bits(min))
	bw.WriteUInt32(math32.Float32bits(max))

	// constant channels, like the unused blue and alpha of a lut, store zeros
	r := max - min
	for i := 0; i < count; i++ {
		var fix uint16
		if r > 0 {
			fix = uint16(((pix[i*channels+ch]-min)/r)*0xffff + 0.5)
		}
		bw.WriteUInt16(fix)
	}
}
