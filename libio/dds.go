package libio

import (
	"encoding/binary"
	"fmt"
	"io"
)

const MagicNumberDDS = 0x20534444 // "DDS "

type DDSFormat int

const (
	// DXGI_FORMAT_R32G32B32A32_FLOAT behind a DX10 extension header
	DDSFormatRGBA32F = DDSFormat(iota)
	// DXGI_FORMAT_R16G16_FLOAT behind a DX10 extension header
	DDSFormatRG16F
	// D3DFMT_A32B32G32R32F, readable by loaders that predate DX10
	DDSFormatLegacyRGBA32F
)

func (f DDSFormat) String() string {
	switch f {
	case DDSFormatRGBA32F:
		return "RGBA32F"
	case DDSFormatRG16F:
		return "RG16F"
	case DDSFormatLegacyRGBA32F:
		return "RGBA32F (legacy)"
	}
	return fmt.Sprintf("DDSFormat(%d)", int(f))
}

const (
	ddsdCaps        = 0x1
	ddsdHeight      = 0x2
	ddsdWidth       = 0x4
	ddsdPitch       = 0x8
	ddsdPixelFormat = 0x1000
	ddpfFourCC      = 0x4
	ddsCapsTexture  = 0x1000

	fourCCDX10            = 0x30315844 // "DX10"
	d3dFmtA32B32G32R32F   = 116
	dxgiR32G32B32A32Float = 2
	dxgiR16G16Float       = 34
	d3d10DimTexture2D     = 3
)

type DDSPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

type DDSHeader struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       DDSPixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

type DDSHeaderDX10 struct {
	DXGIFormat        uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

// EncodeDDS writes an uncompressed single level 2D texture. pix must hold exactly
// width*height*bytesPerPixel bytes of fixed size data ([]float32, []uint16, ...),
// stored row-major.
func EncodeDDS(w io.Writer, format DDSFormat, bytesPerPixel, width, height int, pix any) (err error) {
	expected := width * height * bytesPerPixel
	if size := binary.Size(pix); size != expected {
		return fmt.Errorf("dds %v pixel data is %d bytes, expected %d", format, size, expected)
	}

	bw := NewBinaryWriter(w)
	defer func() {
		if bw.Err != nil && err == nil {
			err = bw.Err
		}
	}()

	header := DDSHeader{
		Size:              124,
		Flags:             ddsdCaps | ddsdHeight | ddsdWidth | ddsdPixelFormat | ddsdPitch,
		Height:            uint32(height),
		Width:             uint32(width),
		PitchOrLinearSize: uint32(width * bytesPerPixel),
		PixelFormat: DDSPixelFormat{
			Size:   32,
			Flags:  ddpfFourCC,
			FourCC: fourCCDX10,
		},
		Caps: ddsCapsTexture,
	}

	var ext *DDSHeaderDX10
	switch format {
	case DDSFormatRGBA32F:
		ext = &DDSHeaderDX10{DXGIFormat: dxgiR32G32B32A32Float}
	case DDSFormatRG16F:
		ext = &DDSHeaderDX10{DXGIFormat: dxgiR16G16Float}
	case DDSFormatLegacyRGBA32F:
		header.PixelFormat.FourCC = d3dFmtA32B32G32R32F
	default:
		return fmt.Errorf("dds format %v unsupported", format)
	}

	bw.WriteUInt32(MagicNumberDDS)
	if !bw.WriteRef(&header) {
		return fmt.Errorf("could not write dds header: %w", bw.Err)
	}
	if ext != nil {
		ext.ResourceDimension = d3d10DimTexture2D
		ext.ArraySize = 1
		if !bw.WriteRef(ext) {
			return fmt.Errorf("could not write dds dx10 header: %w", bw.Err)
		}
	}

	if !bw.WriteRef(pix) {
		return fmt.Errorf("could not write dds pixels: %w", bw.Err)
	}

	return nil
}

// DecodeDDSHeader reads the headers written by [EncodeDDS] and reports the format.
// The reader is left at the first pixel byte.
func DecodeDDSHeader(r io.Reader) (header DDSHeader, format DDSFormat, err error) {
	br := NewBinaryReader(r)

	var magic uint32
	if !br.ReadUInt32(&magic) {
		return header, 0, fmt.Errorf("expected dds magic number: %w", br.Err)
	}
	if magic != MagicNumberDDS {
		return header, 0, fmt.Errorf("expected dds magic number 0x%08x but was 0x%08x; byte 0x%08x", MagicNumberDDS, magic, br.LastIndex)
	}

	if !br.ReadRef(&header) {
		return header, 0, fmt.Errorf("expected dds header: %w", br.Err)
	}

	switch header.PixelFormat.FourCC {
	case d3dFmtA32B32G32R32F:
		return header, DDSFormatLegacyRGBA32F, nil
	case fourCCDX10:
	default:
		return header, 0, fmt.Errorf("dds fourcc 0x%08x unsupported", header.PixelFormat.FourCC)
	}

	ext := DDSHeaderDX10{}
	if !br.ReadRef(&ext) {
		return header, 0, fmt.Errorf("expected dds dx10 header: %w", br.Err)
	}

	switch ext.DXGIFormat {
	case dxgiR32G32B32A32Float:
		format = DDSFormatRGBA32F
	case dxgiR16G16Float:
		format = DDSFormatRG16F
	default:
		return header, 0, fmt.Errorf("dxgi format %d unsupported", ext.DXGIFormat)
	}
	return header, format, nil
}

// EncodeFloatImageDDS picks the format from the channel layout of img.
func EncodeFloatImageDDS(w io.Writer, img *FloatImage, legacy bool) error {
	if img.Channels != 4 {
		return fmt.Errorf("dds float export needs 4 channels, image has %d", img.Channels)
	}
	format := DDSFormatRGBA32F
	if legacy {
		format = DDSFormatLegacyRGBA32F
	}
	return EncodeDDS(w, format, 16, img.Width, img.Height, img.Pix)
}

func EncodeHalfImageDDS(w io.Writer, img *HalfImage) error {
	if img.Channels != 2 {
		return fmt.Errorf("dds half export needs 2 channels, image has %d", img.Channels)
	}
	return EncodeDDS(w, DDSFormatRG16F, 4, img.Width, img.Height, img.Pix)
}
