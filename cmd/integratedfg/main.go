package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"integrate-dfg/ibl"
	"integrate-dfg/libio"

	"golang.org/x/exp/slices"
)

var args = struct {
	width        int
	height       int
	samples      int
	workers      int
	out          string
	quiet        bool
	preview      libio.PreviewFormat
	previewScale int
	f32          int
	f32Level     int
}{
	width:        ibl.DefaultBakeOptions.Width,
	height:       ibl.DefaultBakeOptions.Height,
	samples:      ibl.DefaultBakeOptions.Samples,
	workers:      0,
	out:          "",
	quiet:        false,
	previewScale: 8,
	f32:          -1,
	f32Level:     0,
}

func printGeneralUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [arguments]\n\n", exe)
	fmt.Fprintf(os.Stderr, "Bakes the split sum DFG luts into the output directory.\n\n")
	fmt.Fprintf(os.Stderr, "The arguments are:\n\n")
	flag.CommandLine.SetOutput(os.Stderr)
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.IntVar(&args.width, "width", args.width, "lut width, roughness or gloss resolution")
	flag.IntVar(&args.height, "height", args.height, "lut height, view angle resolution")
	flag.IntVar(&args.samples, "samples", args.samples, "samples of the integral per cell")
	flag.IntVar(&args.workers, "workers", args.workers, "parallel workers, 0 uses every cpu")
	flag.StringVar(&args.out, "out", args.out, "the output directory")
	flag.StringVar(&args.out, "o", args.out, "shorthand for out")
	flag.BoolVar(&args.quiet, "quiet", args.quiet, "disables informational logging")
	flag.BoolVar(&args.quiet, "q", args.quiet, "shorthand for quiet")
	flag.Var(&args.preview, "preview", "also write a normalized preview image; png or webp")
	flag.IntVar(&args.previewScale, "preview-scale", args.previewScale, "preview pixels per lut cell")
	flag.IntVar(&args.f32, "f32", args.f32, "also write an f32 image; -1=off, 0=none, 1=fixed-point + lz4, 2=half + lz4")
	flag.IntVar(&args.f32Level, "f32-level", args.f32Level, "lz4 level of the f32 image from 0 (fast) to 9")
	flag.Usage = printGeneralUsage

	flag.Parse()

	if flag.NArg() != 0 {
		printGeneralUsage()
	}

	if !args.quiet {
		ibl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	if args.out == "" {
		var err error
		args.out, err = os.Getwd()
		harderr(err)
	}
	if _, err := os.Stat(args.out); err != nil {
		harderr(fmt.Errorf("cannot stat output directory: %w", err))
	}

	opts := ibl.BakeOptions{
		Width:   args.width,
		Height:  args.height,
		Samples: args.samples,
		Workers: args.workers,
	}

	files := []string{}
	files = append(files, writeAxes(opts)...)
	for _, v := range ibl.Variants {
		table, _, err := ibl.Bake(v, opts)
		harderr(err)
		files = append(files, writeTable(table)...)
	}

	slices.Sort(files)
	info("wrote %d files to %s:\n    %s", len(files), args.out, strings.Join(files, "\n    "))
}

// writes the cell center coordinates of both axes
func writeAxes(opts ibl.BakeOptions) []string {
	names := []string{"ndotv.csv"}
	save(names[0], func(w io.Writer) error {
		return libio.EncodeSampleRow(w, opts.Height)
	})

	for _, v := range ibl.Variants {
		name := v.AxisName() + ".csv"
		if slices.Contains(names, name) {
			continue
		}
		save(name, func(w io.Writer) error {
			return libio.EncodeSampleRow(w, opts.Width)
		})
		names = append(names, name)
	}
	return names
}

func writeTable(table *ibl.Table) []string {
	v := table.Variant
	names := []string{}

	name := v.Prefix + "_RGBA32F.dds"
	save(name, func(w io.Writer) error {
		return libio.EncodeFloatImageDDS(w, table.RGBA32F, v.LegacyContainer)
	})
	names = append(names, name)

	if table.RG16F != nil {
		name = v.Prefix + "_RG16F.dds"
		save(name, func(w io.Writer) error {
			return libio.EncodeHalfImageDDS(w, table.RG16F)
		})
		names = append(names, name)
	}

	csvPrefix := ""
	if v.Name != ibl.VariantRoughness.Name {
		csvPrefix = v.Name + "_"
	}
	for _, ch := range []struct {
		name  string
		index int
	}{{"scale", ibl.ChannelScale}, {"bias", ibl.ChannelBias}} {
		name = csvPrefix + ch.name + ".csv"
		index := ch.index
		save(name, func(w io.Writer) error {
			return libio.EncodeChannel(w, table.RGBA32F, index)
		})
		names = append(names, name)
	}

	if args.f32 >= 0 {
		name = v.Prefix + ".f32"
		save(name, func(w io.Writer) error {
			return libio.EncodeFloatImage(w, table.RGBA32F, libio.FloatImageCompression(args.f32), args.f32Level)
		})
		names = append(names, name)
	}

	if args.preview != "" {
		name = v.Prefix + args.preview.Ext()
		save(name, func(w io.Writer) error {
			return libio.EncodePreview(w, table.RGBA32F, args.preview, args.previewScale)
		})
		names = append(names, name)
	}

	return names
}

func save(name string, encode func(w io.Writer) error) {
	harderr(libio.WriteFile(filepath.Join(args.out, name), encode))
}

func info(format string, a ...any) {
	if !args.quiet {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
