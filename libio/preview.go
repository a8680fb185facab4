package libio

import (
	"fmt"
	goimg "image"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

type PreviewFormat string

const (
	PreviewPNG  PreviewFormat = "png"
	PreviewWebP PreviewFormat = "webp"
)

func (f *PreviewFormat) String() string {
	return string(*f)
}

func (f *PreviewFormat) Set(s string) error {
	switch PreviewFormat(strings.ToLower(s)) {
	case PreviewPNG:
		*f = PreviewPNG
	case PreviewWebP:
		*f = PreviewWebP
	case "":
		*f = ""
	default:
		return fmt.Errorf("%s is not a valid preview format", s)
	}
	return nil
}

func (f PreviewFormat) Ext() string {
	return "." + string(f)
}

// PreviewImage normalizes the first three channels of img and converts them
// to an 8 bit image, upscaled by scale with nearest neighbour filtering so
// individual cells stay visible.
func PreviewImage(img *FloatImage, scale int) *goimg.RGBA {
	channels := []int{0, 1, 2}
	if img.Channels < 3 {
		channels = channels[:img.Channels]
	}
	norm := img.Shuffle(channels)
	norm.Normalize()
	rgba := norm.ToIntImage(1.0, 1.0).ToRGBA()

	if scale <= 1 {
		return rgba
	}

	dst := goimg.NewRGBA(goimg.Rect(0, 0, img.Width*scale, img.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), rgba, rgba.Bounds(), draw.Src, nil)
	return dst
}

func EncodePreview(w io.Writer, img *FloatImage, format PreviewFormat, scale int) error {
	rgba := PreviewImage(img, scale)

	var err error
	switch format {
	case PreviewPNG:
		err = png.Encode(w, rgba)
	case PreviewWebP:
		err = nativewebp.Encode(w, rgba, nil)
	default:
		return fmt.Errorf("preview format %q unsupported", string(format))
	}
	if err != nil {
		return fmt.Errorf("could not encode %s preview: %w", format, err)
	}
	return nil
}
