// Package main is a demonstration driver for the textcore engine: it
// loads a file, shapes it under a chosen wrap configuration, and prints
// the resulting screen rows with their metrics.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/textcore/config"
	"github.com/dshills/textcore/editor"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		wrapMode   string
		width      int
		showCtrl   bool
		metrics    bool
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&wrapMode, "wrap", "", "Wrap mode: none, hard, word (overrides config)")
	flag.IntVar(&width, "width", 80, "Viewport width in screen columns")
	flag.BoolVar(&showCtrl, "ctrl", false, "Show control characters as picture glyphs")
	flag.BoolVar(&metrics, "metrics", false, "Print per-line metrics instead of text")
	flag.Parse()

	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if wrapMode != "" {
		settings.WrapMode = wrapMode
	}
	if showCtrl {
		settings.ShowControl = true
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	content, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	opts := append(settings.Options(), editor.WithContent(content))
	ed, err := editor.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	mode := ed.WrapMode()
	ed.SetWrap(mode, width)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if metrics {
		return printMetrics(out, ed)
	}
	return printRows(out, ed)
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func printRows(out io.Writer, ed *editor.Editor) int {
	for line := 0; line < ed.LenLines(); line++ {
		it, err := ed.LineGlyphs(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: line %d: %v\n", line, err)
			return 1
		}
		var row strings.Builder
		for {
			gl, ok := it.Next()
			if !ok {
				break
			}
			row.WriteString(gl.Text)
			// Pad expanded tabs to their full width.
			for pad := gl.Width - 1; pad > 0 && gl.Text == " "; pad-- {
				row.WriteByte(' ')
			}
			if gl.LineBreak {
				fmt.Fprintln(out, row.String())
				row.Reset()
			}
		}
		if row.Len() > 0 {
			fmt.Fprintln(out, row.String())
		}
	}
	return 0
}

func printMetrics(out io.Writer, ed *editor.Editor) int {
	total := 0
	for line := 0; line < ed.LenLines(); line++ {
		w, err := ed.LineWidth(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: line %d: %v\n", line, err)
			return 1
		}
		segs, err := ed.WrapSegments(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: line %d: %v\n", line, err)
			return 1
		}
		fmt.Fprintf(out, "line %d: width %d, %d row(s)\n", line, w, len(segs))
		total += len(segs)
	}
	stats := ed.CacheStats()
	fmt.Fprintf(out, "%d line(s), %d screen row(s), wrap %s\n",
		ed.LenLines(), total, ed.WrapMode())
	fmt.Fprintf(out, "cache: %d hit(s), %d miss(es)\n", stats.Hits, stats.Misses)
	return 0
}
