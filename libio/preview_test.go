package libio_test

import (
	"bytes"
	"image/png"
	"integrate-dfg/libio"
	"testing"
)

func TestPreviewImage(t *testing.T) {
	img := libio.AllocFloatImage(4, 4, 2)
	// row 0 is the bottom row of the preview
	img.Set(0, 0, 0, 1)

	rgba := libio.PreviewImage(img, 3)
	if b := rgba.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Fatalf("preview should be 12x6 but was %dx%d\n", b.Dx(), b.Dy())
	}

	bottomLeft := rgba.RGBAAt(1, 5)
	if bottomLeft.R != 0xff || bottomLeft.A != 0xff {
		t.Errorf("bottom left cell should be red and opaque but was %v\n", bottomLeft)
	}
	topLeft := rgba.RGBAAt(1, 0)
	if topLeft.R != 0 {
		t.Errorf("top left cell should be black but was %v\n", topLeft)
	}
}

func TestEncodePreview(t *testing.T) {
	img := libio.AllocFloatImage(4, 8, 8)
	for i := range img.Pix {
		img.Pix[i] = float32(i%7) / 7
	}

	buf := &bytes.Buffer{}
	if err := libio.EncodePreview(buf, img, libio.PreviewPNG, 2); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("png preview should be 16x16 but was %dx%d\n", b.Dx(), b.Dy())
	}

	buf.Reset()
	if err := libio.EncodePreview(buf, img, libio.PreviewWebP, 2); err != nil {
		t.Fatal(err)
	}
	if data := buf.Bytes(); len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("webp preview should be a RIFF WEBP container\n")
	}

	if err := libio.EncodePreview(buf, img, libio.PreviewFormat("bmp"), 1); err == nil {
		t.Errorf("unknown preview format should be rejected\n")
	}
}

func TestPreviewFormatFlag(t *testing.T) {
	var f libio.PreviewFormat
	if err := f.Set("WebP"); err != nil || f != libio.PreviewWebP {
		t.Errorf("WebP should parse, got %q, %v\n", f, err)
	}
	if err := f.Set("gif"); err == nil {
		t.Errorf("gif should not parse\n")
	}
	if libio.PreviewPNG.Ext() != ".png" {
		t.Errorf("png extension should be .png but was %s\n", libio.PreviewPNG.Ext())
	}
}
