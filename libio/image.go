package libio

import (
	goimg "image"

	"github.com/chewxy/math32"
)

type image struct {
	Channels      int
	Width, Height int
}

// Calculates the tuple index into the images data.
//
// Note that the origin (0,0) is in the bottom left, as opposed to Go's top left origin
func (img *image) Index(x, y int) int {
	return x*img.Channels + y*img.Channels*img.Width
}

// Offset is the element index of channel ch of the tuple at (x, y).
func (img *image) Offset(x, y, ch int) int {
	return img.Index(x, y) + ch
}

func (img *image) Count() int {
	return img.Width * img.Height
}

func (img *image) Len() int {
	return img.Width * img.Height * img.Channels
}

type IntImage struct {
	image
	Pix []uint8
}

func NewIntImage(pix []uint8, channels int, width, height int) *IntImage {
	return &IntImage{
		Pix: pix,
		image: image{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

// ToRGBA converts to a Go image, flipped so that row 0 ends up at the bottom.
func (img *IntImage) ToRGBA() *goimg.RGBA {
	rgba := goimg.NewRGBA(goimg.Rect(0, 0, img.Width, img.Height))

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := img.Index(x, y)
			j := (x + (img.Height-y-1)*img.Width) * 4
			for c := 0; c < img.Channels && c < 4; c++ {
				rgba.Pix[j+c] = img.Pix[i+c]
			}
			for c := img.Channels; c < 3; c++ {
				rgba.Pix[j+c] = 0
			}
			if img.Channels < 4 {
				rgba.Pix[j+3] = 0xff
			}
		}
	}

	return rgba
}

type FloatImage struct {
	image
	Pix []float32
}

func NewFloatImage(pix []float32, channels int, width, height int) *FloatImage {
	return &FloatImage{
		Pix: pix,
		image: image{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

// AllocFloatImage returns a zero filled image.
func AllocFloatImage(channels int, width, height int) *FloatImage {
	return NewFloatImage(make([]float32, width*height*channels), channels, width, height)
}

func (img *FloatImage) At(x, y, ch int) float32 {
	return img.Pix[img.Offset(x, y, ch)]
}

func (img *FloatImage) Set(x, y, ch int, v float32) {
	img.Pix[img.Offset(x, y, ch)] = v
}

func (img *FloatImage) Bytes() int {
	return img.Width * img.Height * img.Channels * 4
}

// Shuffle builds a new image from the given source channels, e.g. {1, 0} swaps
// the first two and drops the rest.
func (img *FloatImage) Shuffle(channels []int) *FloatImage {
	dst := AllocFloatImage(len(channels), img.Width, img.Height)
	for i := 0; i < img.Count(); i++ {
		for c, src := range channels {
			dst.Pix[i*dst.Channels+c] = img.Pix[i*img.Channels+src]
		}
	}
	return dst
}

// Normalize remaps every channel to [0, 1] in place. Constant channels become 0.
func (img *FloatImage) Normalize() {
	for ch := 0; ch < img.Channels; ch++ {
		min, max := channelRange(img.Channels, img.Count(), img.Pix, ch)
		r := max - min
		for i := 0; i < img.Count(); i++ {
			o := i*img.Channels + ch
			if r == 0 {
				img.Pix[o] = 0
			} else {
				img.Pix[o] = (img.Pix[o] - min) / r
			}
		}
	}
}

func channelRange(channels, count int, pix []float32, ch int) (min, max float32) {
	min, max = math32.Inf(1), math32.Inf(-1)
	for i := 0; i < count; i++ {
		v := pix[i*channels+ch]
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func (img *FloatImage) ToIntImage(gamma, scale float32) *IntImage {
	pix := make([]uint8, len(img.Pix))

	for i := 0; i < len(img.Pix); i++ {
		pix[i] = uint8(tonemap(img.Pix[i], 1.0/gamma, scale) * 0xff)
	}

	return NewIntImage(pix, img.Channels, img.Width, img.Height)
}

func tonemap(value, gamma, scale float32) float32 {
	value = math32.Pow(value, gamma) * scale
	return math32.Min(math32.Max(0.0, value), 1.0)
}

// HalfImage stores raw half-precision bit patterns, see [FloatToHalf].
type HalfImage struct {
	image
	Pix []uint16
}

func NewHalfImage(pix []uint16, channels int, width, height int) *HalfImage {
	return &HalfImage{
		Pix: pix,
		image: image{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

func AllocHalfImage(channels int, width, height int) *HalfImage {
	return NewHalfImage(make([]uint16, width*height*channels), channels, width, height)
}

func (img *HalfImage) At(x, y, ch int) uint16 {
	return img.Pix[img.Offset(x, y, ch)]
}

// Set encodes v and stores it at (x, y, ch).
func (img *HalfImage) Set(x, y, ch int, v float32) {
	img.Pix[img.Offset(x, y, ch)] = FloatToHalf(v)
}

func (img *HalfImage) Bytes() int {
	return img.Width * img.Height * img.Channels * 2
}

func (img *HalfImage) ToFloatImage() *FloatImage {
	dst := AllocFloatImage(img.Channels, img.Width, img.Height)
	HalfsToFloats(dst.Pix, img.Pix)
	return dst
}
