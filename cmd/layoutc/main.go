// Command layoutc compiles uniform layout declaration files and prints the resulting
// offsets and sizes.
//
// Usage:
//
//	layoutc -f layouts.yaml [-layout name] [-workers n] [-v]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Carmen-Shannon/oxy-layout/common"
	"github.com/Carmen-Shannon/oxy-layout/engine/renderer/uniform"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// column widths of the field table
var columnWidths = []int{24, 8, 8, 8, 6}

func main() {
	var (
		file    = flag.String("f", "", "Path to a .yaml, .yml or .toml layout declaration file")
		layout  = flag.String("layout", "", "Only print the named layout")
		workers = flag.Int("workers", 0, "Number of compile workers (default: CPUs-1)")
		verbose = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: layoutc -f <layouts.yaml> [-layout name] [-workers n] [-v]")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			common.SetLogger(logger)
			defer logger.Sync()
		}
	}

	if err := run(os.Stdout, *file, *layout, *workers); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func run(w io.Writer, path, only string, workers int) error {
	lf, err := uniform.LoadLayoutFile(path)
	if err != nil {
		return err
	}

	cat := uniform.NewCatalog(uniform.WithWorkers(workers))
	if _, err := cat.CompileFile(lf); err != nil {
		return err
	}

	if only != "" {
		f, ok := cat.Lookup(only)
		if !ok {
			return fmt.Errorf("layout %q not declared in %s", only, path)
		}
		printFormat(w, only, f)
		return nil
	}

	// declaration order rather than the catalog's sorted order
	for i, l := range lf.Layouts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f, _ := cat.Lookup(l.Name)
		printFormat(w, l.Name, f)
	}
	return nil
}

func printFormat(w io.Writer, name string, f *uniform.Format) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", name, f.Alignment())))
	fmt.Fprintln(w, row(headerStyle, "field", "type", "offset", "bytes", "size"))
	for _, pf := range f.Fields() {
		fmt.Fprintln(w, row(nameStyle,
			pf.Name(),
			pf.Type().String(),
			strconv.FormatUint(pf.Offset(), 10),
			strconv.FormatUint(pf.ByteOffset(), 10),
			strconv.FormatUint(pf.ByteSize(), 10),
		))
	}
	fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("total: %d bytes (%d words)", f.ByteSize(), f.WordSize())))
}

func row(first lipgloss.Style, cells ...string) string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		style := lipgloss.NewStyle()
		if i == 0 {
			style = first
		}
		out[i] = style.Width(columnWidths[i]).Render(cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}
