package ibl

import (
	"fmt"
	"time"

	"integrate-dfg/libio"
	"integrate-dfg/libutil"
)

const (
	ChannelScale = 0
	ChannelBias  = 1
)

// Table is a baked lut. RGBA32F holds (scale, bias, 0, 0) per cell,
// RG16F holds (scale, bias) as half floats and is nil unless the variant
// emits it. Rows are view angles, columns roughness or gloss.
type Table struct {
	Variant Variant
	RGBA32F *libio.FloatImage
	RG16F   *libio.HalfImage
}

func NewTable(v Variant, width, height int) *Table {
	table := &Table{
		Variant: v,
		RGBA32F: libio.AllocFloatImage(4, width, height),
	}
	if v.EmitHalf {
		table.RG16F = libio.AllocHalfImage(2, width, height)
	}
	return table
}

func (t *Table) Width() int {
	return t.RGBA32F.Width
}

func (t *Table) Height() int {
	return t.RGBA32F.Height
}

// Bytes is the pixel memory of every buffer of the table.
func (t *Table) Bytes() int {
	n := t.RGBA32F.Bytes()
	if t.RG16F != nil {
		n += t.RG16F.Bytes()
	}
	return n
}

// Store writes the result of cell (x, y) into every buffer of the table.
func (t *Table) Store(x, y int, r CellResult) {
	t.RGBA32F.Set(x, y, 0, r.Scale)
	t.RGBA32F.Set(x, y, 1, r.Bias)
	t.RGBA32F.Set(x, y, 2, 0.0)
	t.RGBA32F.Set(x, y, 3, 0.0)

	if t.RG16F != nil {
		t.RG16F.Set(x, y, 0, r.Scale)
		t.RG16F.Set(x, y, 1, r.Bias)
	}
}

// Cell reads back what Store wrote into the float table.
func (t *Table) Cell(x, y int) (scale, bias float32) {
	return t.RGBA32F.At(x, y, ChannelScale), t.RGBA32F.At(x, y, ChannelBias)
}

// NdotV is the view angle cosine of row y.
func NdotV(y, height int) float32 {
	return (float32(y) + 0.5) / float32(height)
}

// Axis is the column coordinate, roughness or gloss, of column x.
func Axis(x, width int) float32 {
	return (float32(x) + 0.5) / float32(width)
}

type BakeOptions struct {
	Width, Height int
	Samples       int
	// 0 uses every cpu, 1 bakes on the calling goroutine
	Workers int
}

var DefaultBakeOptions = BakeOptions{
	Width:   32,
	Height:  64,
	Samples: 512,
}

func (o BakeOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("lut size %dx%d is invalid", o.Width, o.Height)
	}
	if o.Samples <= 0 {
		return fmt.Errorf("sample count %d is invalid", o.Samples)
	}
	return nil
}

type Stats struct {
	Cells   int
	Samples int
	// cells with valid sample count 0
	Degenerate int
	// lowest valid sample count of any cell
	MinValid int
	Elapsed  time.Duration
}

// Bake integrates every cell of the table. The result does not depend on
// the number of workers.
func Bake(v Variant, opts BakeOptions) (*Table, Stats, error) {
	if err := v.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if err := opts.Validate(); err != nil {
		return nil, Stats{}, err
	}

	start := time.Now()
	table := NewTable(v, opts.Width, opts.Height)
	samples := generateHammersleySequence(opts.Samples)

	// per row, merged after all workers are done
	cells := make([][]CellResult, opts.Height)

	libutil.ForEachRow(opts.Height, opts.Workers, func(y int) {
		ndotv := NdotV(y, opts.Height)
		cells[y] = make([]CellResult, opts.Width)
		for x := 0; x < opts.Width; x++ {
			roughness := v.Roughness(Axis(x, opts.Width))
			res := integrate(v, ndotv, roughness, samples)
			table.Store(x, y, res)
			cells[y][x] = res
		}
	})

	stats := Stats{
		Cells:    opts.Width * opts.Height,
		Samples:  opts.Samples,
		MinValid: opts.Samples,
		Elapsed:  time.Since(start),
	}
	for y, row := range cells {
		for x, res := range row {
			stats.MinValid = libutil.MinI(stats.MinValid, res.Valid)
			if res.Degenerate() {
				stats.Degenerate++
				logger().Warn("cell has no valid samples", "variant", v.Name, "x", x, "y", y)
			}
		}
	}

	logger().Info("baked lut", "variant", v.Name,
		"width", opts.Width, "height", opts.Height, "samples", opts.Samples, "bytes", table.Bytes(),
		"min_valid", stats.MinValid, "degenerate", stats.Degenerate, "elapsed", stats.Elapsed)

	return table, stats, nil
}
