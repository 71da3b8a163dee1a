// Command curveinfo prints sampled fade and automation curve shapes.
//
// Usage:
//
//	curveinfo [flags] [type ...]
//
// Without arguments it prints every curve type.
//
// Examples:
//
//	curveinfo s-curve equal-power
//	curveinfo -points 5 -falling exponential
//	curveinfo -tension 1 -ctrl 0.5,1.5 bezier linear
//	curveinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-edit/dsp/curve"
)

func main() {
	points := flag.Int("points", 11, "number of samples across the segment (>= 2)")
	tension := flag.Float64("tension", 0.5, "blend toward the Bezier: 0.5 base shape, 1 Bezier, 0 inverse")
	ctrlFlag := flag.String("ctrl", "0.5,0.5", "Bezier control point as x,y")
	falling := flag.Bool("falling", false, "evaluate the falling (1 to 0) segment")
	list := flag.Bool("list", false, "list available curve types")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: curveinfo [flags] [type ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints normalized curve shapes sampled over one segment.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints all curve types.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  curveinfo s-curve equal-power\n")
		fmt.Fprintf(os.Stderr, "  curveinfo -points 5 -falling exponential\n")
		fmt.Fprintf(os.Stderr, "  curveinfo -tension 1 -ctrl 0.5,1.5 bezier\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	if *points < 2 {
		fmt.Fprintf(os.Stderr, "error: -points must be at least 2\n")
		os.Exit(1)
	}
	ctrl, err := parseControl(*ctrlFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	types := resolveTypes(flag.Args())
	if len(types) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching curve types\n")
		os.Exit(1)
	}

	if err := printShapes(os.Stdout, types, *points, ctrl, !*falling, *tension); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func printList(w io.Writer) {
	for _, t := range curve.Types() {
		fmt.Fprintln(w, t)
	}
}

// parseControl reads "x,y" and clamps it to the control box.
func parseControl(s string) (curve.Control, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return curve.Control{}, fmt.Errorf("invalid -ctrl %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return curve.Control{}, fmt.Errorf("invalid -ctrl x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return curve.Control{}, fmt.Errorf("invalid -ctrl y: %w", err)
	}
	return curve.Control{X: x, Y: y}.Clamp(), nil
}

func resolveTypes(names []string) []curve.Type {
	if len(names) == 0 {
		return curve.Types()
	}
	var result []curve.Type
	for _, name := range names {
		t, err := curve.ParseType(strings.TrimSpace(name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: unknown curve type %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, t)
	}
	return result
}

func printShapes(w io.Writer, types []curve.Type, n int, ctrl curve.Control, rising bool, tension float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{"Type"}
	rule := []string{"----"}
	for i := 0; i < n; i++ {
		label := "u=" + strconv.FormatFloat(float64(i)/float64(n-1), 'f', 2, 64)
		header = append(header, label)
		rule = append(rule, strings.Repeat("-", len(label)))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")+"\t"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, strings.Join(rule, "\t")+"\t"); err != nil {
		return err
	}

	row := make([]float64, n)
	cells := make([]string, n+1)
	for _, t := range types {
		curve.Preview(row, t, ctrl, rising, tension)
		cells[0] = t.String()
		for i, v := range row {
			cells[i+1] = strconv.FormatFloat(v, 'f', 4, 64)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
