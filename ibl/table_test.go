package ibl_test

import (
	"bytes"
	"integrate-dfg/ibl"
	"integrate-dfg/libio"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestTableLayout(t *testing.T) {
	table := ibl.NewTable(ibl.VariantRoughness, 32, 64)

	if is := len(table.RGBA32F.Pix); is != 32*64*4 {
		t.Errorf("float table should hold %d values but holds %d\n", 32*64*4, is)
	}
	if is := len(table.RG16F.Pix); is != 32*64*2 {
		t.Errorf("half table should hold %d values but holds %d\n", 32*64*2, is)
	}
	if is := table.Bytes(); is != 32*64*16+32*64*4 {
		t.Errorf("table should use %d pixel bytes but uses %d\n", 32*64*16+32*64*4, is)
	}
	if is := table.RGBA32F.Offset(5, 10, ibl.ChannelBias); is != 1301 {
		t.Errorf("bias of cell (5,10) should be at 1301 but is at %d\n", is)
	}

	table.Store(5, 10, ibl.CellResult{Scale: 0.75, Bias: 0.125})

	float := table.RGBA32F.Pix
	if float[1300] != 0.75 || float[1301] != 0.125 || float[1302] != 0 || float[1303] != 0 {
		t.Errorf("float cell should be (0.75, 0.125, 0, 0) but was %v\n", float[1300:1304])
	}
	half := table.RG16F.Pix
	if half[5*2+10*32*2] != 0x3a00 || half[5*2+10*32*2+1] != 0x3000 {
		t.Errorf("half cell should be (0x3a00, 0x3000) but was (0x%04x, 0x%04x)\n", half[650], half[651])
	}

	nonZero := 0
	for _, v := range float {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero != 2 {
		t.Errorf("Store should touch exactly one cell, %d values are set\n", nonZero)
	}

	scale, bias := table.Cell(5, 10)
	if scale != 0.75 || bias != 0.125 {
		t.Errorf("Cell should read back (0.75, 0.125) but was (%v, %v)\n", scale, bias)
	}
}

func TestTableWithoutHalf(t *testing.T) {
	table := ibl.NewTable(ibl.VariantGloss, 4, 4)
	if table.RG16F != nil {
		t.Errorf("gloss variant should not allocate a half table\n")
	}
	if is := table.Bytes(); is != 4*4*16 {
		t.Errorf("table without half buffer should use %d pixel bytes but uses %d\n", 4*4*16, is)
	}
	table.Store(3, 3, ibl.CellResult{Scale: 1})
}

func TestGridCellCenters(t *testing.T) {
	for _, n := range []int{1, 2, 32, 64} {
		for i := 0; i < n; i++ {
			for _, c := range []float32{ibl.NdotV(i, n), ibl.Axis(i, n)} {
				if c <= 0 || c >= 1 {
					t.Errorf("cell %d of %d has coordinate %v outside (0, 1)\n", i, n, c)
				}
			}
		}
	}
	if is := ibl.NdotV(0, 4); is != 0.125 {
		t.Errorf("first of 4 rows should be at 0.125 but was %v\n", is)
	}
}

var smallBake = ibl.BakeOptions{Width: 8, Height: 16, Samples: 128}

func TestBakeDeterministic(t *testing.T) {
	for _, v := range ibl.Variants {
		opts := smallBake
		opts.Workers = 1
		a, _, err := ibl.Bake(v, opts)
		if err != nil {
			t.Fatal(err)
		}
		opts.Workers = 4
		b, _, err := ibl.Bake(v, opts)
		if err != nil {
			t.Fatal(err)
		}

		for i := range a.RGBA32F.Pix {
			if math.Float32bits(a.RGBA32F.Pix[i]) != math.Float32bits(b.RGBA32F.Pix[i]) {
				t.Fatalf("%s: value %d differs between sequential and parallel bake, %v != %v\n", v.Name, i, a.RGBA32F.Pix[i], b.RGBA32F.Pix[i])
			}
		}
		if v.EmitHalf {
			for i := range a.RG16F.Pix {
				if a.RG16F.Pix[i] != b.RG16F.Pix[i] {
					t.Fatalf("%s: half %d differs between sequential and parallel bake\n", v.Name, i)
				}
			}
		}
	}
}

func TestBakeMatchesIntegrate(t *testing.T) {
	table, stats, err := ibl.Bake(ibl.VariantRoughness, smallBake)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Cells != 8*16 || stats.Samples != 128 {
		t.Errorf("stats should count 128 cells and 128 samples, got %+v\n", stats)
	}
	if stats.Degenerate != 0 {
		t.Errorf("no cell should be degenerate, %d are\n", stats.Degenerate)
	}
	if stats.MinValid <= 0 || stats.MinValid > 128 {
		t.Errorf("min valid sample count %d out of range\n", stats.MinValid)
	}

	for y := 0; y < table.Height(); y++ {
		for x := 0; x < table.Width(); x++ {
			res := ibl.Integrate(ibl.VariantRoughness, ibl.NdotV(y, 16), ibl.Axis(x, 8), 128)
			scale, bias := table.Cell(x, y)
			if scale != res.Scale || bias != res.Bias {
				t.Fatalf("cell (%d,%d) should be (%v, %v) but was (%v, %v)\n", x, y, res.Scale, res.Bias, scale, bias)
			}
			if is, should := table.RG16F.At(x, y, 0), libio.FloatToHalf(scale); is != should {
				t.Fatalf("half scale of cell (%d,%d) should be 0x%04x but was 0x%04x\n", x, y, should, is)
			}
			if is, should := table.RG16F.At(x, y, 1), libio.FloatToHalf(bias); is != should {
				t.Fatalf("half bias of cell (%d,%d) should be 0x%04x but was 0x%04x\n", x, y, should, is)
			}
		}
	}
}

func TestBakeEnergy(t *testing.T) {
	opts := ibl.DefaultBakeOptions

	// normalized by the total count the terms are a plain estimate of the
	// directional albedo and can not exceed one
	table, _, err := ibl.Bake(ibl.VariantGloss, opts)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < table.Height(); y++ {
		for x := 0; x < table.Width(); x++ {
			scale, bias := table.Cell(x, y)
			if scale < 0 || scale > 1.05 || bias < 0 || scale+bias > 1.05 {
				t.Errorf("gloss cell (%d,%d) = (%v, %v) is not energy conserving\n", x, y, scale, bias)
			}
		}
	}

	// normalizing by the valid count over weights rough grazing cells
	table, _, err = ibl.Bake(ibl.VariantRoughness, opts)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < table.Height(); y++ {
		for x := 0; x < table.Width(); x++ {
			scale, bias := table.Cell(x, y)
			if math.IsNaN(float64(scale)) || math.IsNaN(float64(bias)) {
				t.Fatalf("roughness cell (%d,%d) is NaN\n", x, y)
			}
			if scale < 0 || bias < 0 || scale+bias > 2 {
				t.Errorf("roughness cell (%d,%d) = (%v, %v) out of bounds\n", x, y, scale, bias)
			}
		}
	}
	// the smooth head on row has no fresnel term left
	scale, bias := table.Cell(0, 63)
	if math.Abs(float64(scale-1)) > 0.01 || bias > 0.01 {
		t.Errorf("smooth head on cell should be (1, 0) but was (%v, %v)\n", scale, bias)
	}
}

func TestBakeInvalidOptions(t *testing.T) {
	for _, opts := range []ibl.BakeOptions{
		{Width: 0, Height: 4, Samples: 4},
		{Width: 4, Height: -1, Samples: 4},
		{Width: 4, Height: 4, Samples: 0},
	} {
		if _, _, err := ibl.Bake(ibl.VariantRoughness, opts); err == nil {
			t.Errorf("options %+v should be rejected\n", opts)
		}
	}
}

func TestBakeLogs(t *testing.T) {
	buf := &bytes.Buffer{}
	ibl.SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	defer ibl.SetLogger(nil)

	if _, _, err := ibl.Bake(ibl.VariantGloss, ibl.BakeOptions{Width: 2, Height: 2, Samples: 8}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "variant=gloss") {
		t.Errorf("bake should log the variant, got %q\n", buf.String())
	}
	if !strings.Contains(buf.String(), "bytes=64") {
		t.Errorf("bake should log the table size, got %q\n", buf.String())
	}
}
