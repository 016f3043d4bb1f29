// Command tin-voronoi builds a bounded Voronoi diagram over a point file and
// reports per-cell area.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/terramesh/tin/tin"
	"github.com/terramesh/tin/types"
	"github.com/terramesh/tin/voronoi"
)

func main() {
	var (
		input   = flag.String("points", "", "Path to a whitespace-delimited point file (x y per line)")
		spacing = flag.Float64("spacing", 1.0, "Nominal point spacing, used to derive merge tolerance")
		margin  = flag.Float64("margin", 1.0, "Fraction of the point cloud's extent to pad the clip rectangle by on each side")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: --points flag is required")
		fmt.Fprintln(os.Stderr, "\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*input, *spacing, *margin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, spacing, margin float64) error {
	points, err := readPoints(path)
	if err != nil {
		return fmt.Errorf("failed to read points: %w", err)
	}
	fmt.Printf("Loaded %d points from %s\n", len(points), path)

	tr := tin.New(spacing)
	if _, err := tr.AddBulk(points, nil); err != nil {
		return fmt.Errorf("failed to build triangulation: %w", err)
	}

	bounds := expandedBounds(points, margin)
	builder := voronoi.NewBuilder(tr, bounds)
	cells, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to build Voronoi diagram: %w", err)
	}

	if err := builder.IntegrityCheck(cells); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}

	var total float64
	for _, c := range cells {
		area := polygonArea(c.Polygon)
		total += area
		fmt.Printf("site %d: %d vertices, open=%v, area=%.4f\n", c.Site, len(c.Polygon), c.Open, area)
	}
	fmt.Printf("Total cell area: %.4f (bound area: %.4f)\n", total, (bounds.Max.X-bounds.Min.X)*(bounds.Max.Y-bounds.Min.Y))
	return nil
}

func polygonArea(poly []types.Point) float64 {
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

func expandedBounds(points []types.Point, margin float64) types.AABB {
	if len(points) == 0 {
		return types.AABB{}
	}
	box := types.AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.X > box.Max.X {
			box.Max.X = p.X
		}
		if p.Y > box.Max.Y {
			box.Max.Y = p.Y
		}
	}
	w := box.Max.X - box.Min.X
	h := box.Max.Y - box.Min.Y
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return types.AABB{
		Min: types.Point{X: box.Min.X - margin*w, Y: box.Min.Y - margin*h},
		Max: types.Point{X: box.Max.X + margin*w, Y: box.Max.Y + margin*h},
	}
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
