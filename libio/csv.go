package libio

import (
	"bufio"
	"fmt"
	"io"
)

const csvSeparator = ", "

// EncodeSampleRow writes the cell centers (i+0.5)/sampleNum as a single row.
func EncodeSampleRow(w io.Writer, sampleNum int) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < sampleNum; i++ {
		sample := (float32(i) + 0.5) / float32(sampleNum)
		writeCsvValue(bw, sample, i+1 < sampleNum)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write csv samples: %w", err)
	}
	return nil
}

// EncodeChannel writes channel ch of img as Height rows of Width values.
// There is no newline after the last row.
func EncodeChannel(w io.Writer, img *FloatImage, ch int) error {
	if ch < 0 || ch >= img.Channels {
		return fmt.Errorf("channel %d out of range, image has %d", ch, img.Channels)
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			writeCsvValue(bw, img.At(x, y, ch), x+1 < img.Width)
		}
		if y+1 < img.Height {
			bw.WriteByte('\n')
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write csv channel %d: %w", ch, err)
	}
	return nil
}

// errors are sticky in bufio.Writer and reported by Flush
func writeCsvValue(bw *bufio.Writer, v float32, more bool) {
	fmt.Fprintf(bw, "%f", v)
	if more {
		bw.WriteString(csvSeparator)
	}
}
