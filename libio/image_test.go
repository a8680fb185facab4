package libio_test

import (
	"integrate-dfg/libio"
	"testing"
)

func TestImageOffset(t *testing.T) {
	img := libio.AllocFloatImage(4, 32, 64)
	if is := img.Offset(5, 10, 1); is != 5*4+10*32*4+1 {
		t.Errorf("offset of (5,10,1) should be 1301 but was %d\n", is)
	}
	if is := img.Len(); is != 32*64*4 {
		t.Errorf("length should be %d but was %d\n", 32*64*4, is)
	}

	half := libio.AllocHalfImage(2, 32, 64)
	if is := half.Offset(5, 10, 1); is != 5*2+10*32*2+1 {
		t.Errorf("half offset of (5,10,1) should be %d but was %d\n", 5*2+10*32*2+1, is)
	}
	if is := half.Bytes(); is != 32*64*2*2 {
		t.Errorf("half image should be %d bytes but was %d\n", 32*64*2*2, is)
	}
}

func TestFloatImageShuffle(t *testing.T) {
	img := libio.NewFloatImage([]float32{1, 2, 3, 4, 5, 6, 7, 8}, 4, 2, 1)
	dst := img.Shuffle([]int{1, 0})
	expected := []float32{2, 1, 6, 5}
	if dst.Channels != 2 {
		t.Fatalf("shuffled image should have 2 channels but has %d\n", dst.Channels)
	}
	for i, should := range expected {
		if dst.Pix[i] != should {
			t.Errorf("shuffled value %d should be %v but was %v\n", i, should, dst.Pix[i])
		}
	}
}

func TestFloatImageNormalize(t *testing.T) {
	img := libio.NewFloatImage([]float32{2, 5, 4, 5, 6, 5}, 2, 3, 1)
	img.Normalize()
	expected := []float32{0, 0, 0.5, 0, 1, 0}
	for i, should := range expected {
		if img.Pix[i] != should {
			t.Errorf("normalized value %d should be %v but was %v\n", i, should, img.Pix[i])
		}
	}
}

func TestHalfImageToFloat(t *testing.T) {
	img := libio.AllocHalfImage(2, 2, 2)
	img.Set(1, 1, 0, 0.25)
	if is := img.At(1, 1, 0); is != 0x3400 {
		t.Errorf("0.25 should be stored as 0x3400 but was 0x%04x\n", is)
	}
	if is := img.ToFloatImage().At(1, 1, 0); is != 0.25 {
		t.Errorf("0.25 should decode back but was %v\n", is)
	}
}
