// Command slicetool inspects, validates and converts CLI slice files.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/leap71/slicefile/cli"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to CLI slice file")
		outFile     = flag.String("out", "", "Re-encode to this path")
		info        = flag.Bool("info", false, "Print metadata and per-layer stats")
		validate    = flag.Bool("validate", false, "Decode only; report warnings")
		base        = flag.Bool("base", false, "Emit a synthetic empty base layer on re-encode")
		units       = flag.Float64("units", 1.0, "Working units per file unit on re-encode")
		date        = flag.String("date", "", "Header date on re-encode (yyyy-MM-dd, default today)")
		verbose     = flag.Bool("v", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive layer browser")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: slicetool -in <file.cli> [-info] [-validate] [-out <file.cli>] [-base] [-units f]")
		fmt.Fprintln(os.Stderr, "       slicetool -in <file.cli> -i  (interactive layer browser)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			cli.SetLogger(logger)
			defer logger.Sync()
		}
	}

	if *interactive {
		if err := runInteractive(*inFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, *outFile, *info, *validate, *base, *units, *date); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, outFile string, info, validate, base bool, units float64, date string) error {
	var opts []cli.DecodeOption
	onTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	if onTerminal {
		opts = append(opts, cli.WithProgress(func(f float64) {
			fmt.Fprintf(os.Stderr, "\rreading... %3.0f%%", f*100)
		}, 250*time.Millisecond))
	}

	res, err := cli.NewDecoder(opts...).DecodeFile(inFile)
	if onTerminal {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: line %d: %s\n", w.Line, w.Text)
	}
	if validate || (!info && outFile == "") {
		fmt.Printf("%s: %d layers, %d warnings\n",
			inFile, res.Stack.SliceCount(), len(res.Warnings))
	}
	if info {
		printInfo(res)
	}

	if outFile != "" {
		mode := cli.FirstLayerHasContent
		if base {
			mode = cli.EmptyFirstLayer
		}
		encOpts := []cli.EncodeOption{cli.WithUnitScale(units)}
		if date != "" {
			encOpts = append(encOpts, cli.WithDate(date))
		}
		enc := cli.NewEncoder(mode, encOpts...)
		if err := enc.EncodeFile(outFile, res.Stack); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
	}
	return nil
}

func printInfo(res *cli.DecodeResult) {
	m := res.Meta
	fmt.Printf("Units:          %g\n", m.Units)
	fmt.Printf("Version:        %d\n", m.Version)
	fmt.Printf("Object:         %d (%s)\n", m.ObjectID, m.ObjectName)
	if m.Date != "" {
		fmt.Printf("Date:           %s\n", m.Date)
	}
	fmt.Printf("Declared layers: %d\n", m.DeclaredLayers)
	if !m.DeclaredBBox.IsEmpty() {
		fmt.Printf("Declared bounds: [%.3f %.3f %.3f] .. [%.3f %.3f %.3f]\n",
			m.DeclaredBBox.XMin, m.DeclaredBBox.YMin, m.DeclaredBBox.ZMin,
			m.DeclaredBBox.XMax, m.DeclaredBBox.YMax, m.DeclaredBBox.ZMax)
	}
	b := res.Stack.BoundingBox()
	if !b.IsEmpty() {
		fmt.Printf("Computed bounds: [%.3f %.3f %.3f] .. [%.3f %.3f %.3f]\n",
			b.XMin, b.YMin, b.ZMin, b.XMax, b.YMax, b.ZMax)
	}
	for i := 0; i < res.Stack.SliceCount(); i++ {
		s := res.Stack.SliceAt(i)
		fmt.Printf("  layer %4d  z=%-12.5f contours=%d\n", i, s.Z(), s.ContourCount())
	}
}
