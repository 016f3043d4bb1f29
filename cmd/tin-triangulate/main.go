// Command tin-triangulate reads a whitespace-delimited point file, builds a
// constrained Delaunay triangulation, and reports diagnostics.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/terramesh/tin/constraint"
	"github.com/terramesh/tin/tin"
	"github.com/terramesh/tin/types"
)

func main() {
	var (
		input   = flag.String("points", "", "Path to a whitespace-delimited point file (x y per line)")
		spacing = flag.Float64("spacing", 1.0, "Nominal point spacing, used to derive merge tolerance")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: --points flag is required")
		fmt.Fprintln(os.Stderr, "\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*input, *spacing); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, spacing float64) error {
	points, err := readPoints(path)
	if err != nil {
		return fmt.Errorf("failed to read points: %w", err)
	}
	fmt.Printf("Loaded %d points from %s\n", len(points), path)

	tr := tin.New(spacing)
	ids, err := tr.AddBulk(points, nil)
	if err != nil {
		return fmt.Errorf("failed to build triangulation: %w", err)
	}
	fmt.Printf("Triangulation built: %d vertices, perimeter length %d\n", len(tr.Vertices()), len(tr.Perimeter()))

	em := constraint.NewEmbedder(tr)
	if len(ids) >= 3 {
		hull := types.NewPolygonLoop(tr.Perimeter()...)
		if err := em.AddLoop(hull); err != nil {
			fmt.Printf("note: could not force hull as a constraint loop: %v\n", err)
		} else if err := em.IntegrityCheck(); err != nil {
			fmt.Printf("note: %v\n", err)
		}
	}

	fmt.Printf("Triangles: %d\n", len(tr.Triangles()))

	if err := tr.IntegrityCheck(); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}
	fmt.Println("Integrity check passed")
	return nil
}

// readPoints parses "x y" pairs, one per line, ignoring blank lines and
// lines starting with '#'.
func readPoints(path string) ([]types.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var points []types.Point
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		var x, y float64
		n, err := fmt.Sscan(line, &x, &y)
		if err != nil || n != 2 {
			continue
		}
		points = append(points, types.Point{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}
