// Package render draws carved grids and solved paths as SVG documents.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/maeln/r-astar/maze"
)

const (
	defaultCellSize   = 20
	defaultMargin     = 10
	defaultWallColor  = "#212121"
	defaultPathColor  = "#FF6D00"
	defaultBackground = "#FAFAFA"
	startColor        = "#4CAF50"
	goalColor         = "#F44336"
)

// Options controls the look of the SVG output. Zero fields fall back to defaults.
type Options struct {
	CellSize   int
	Margin     int
	WallColor  string
	PathColor  string
	Background string
}

func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = defaultCellSize
	}
	if o.Margin < 0 {
		o.Margin = 0
	} else if o.Margin == 0 {
		o.Margin = defaultMargin
	}
	if o.WallColor == "" {
		o.WallColor = defaultWallColor
	}
	if o.PathColor == "" {
		o.PathColor = defaultPathColor
	}
	if o.Background == "" {
		o.Background = defaultBackground
	}
	return o
}

// SVG writes the grid, and the path when it is non-empty, to w.
func SVG(w io.Writer, grid *maze.Grid, path maze.Path, opts Options) error {
	opts = opts.withDefaults()
	cs, m := opts.CellSize, opts.Margin
	width := grid.Width()*cs + 2*m
	height := grid.Height()*cs + 2*m

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
<rect width="%d" height="%d" fill="%s"/>
`, width, height, width, height, width, height, opts.Background)

	fmt.Fprintf(bw, `<g stroke="%s" stroke-width="2" stroke-linecap="square">
`, opts.WallColor)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			cell, err := grid.Cell(maze.Point{X: x, Y: y})
			if err != nil {
				return err
			}
			x0, y0 := m+x*cs, m+y*cs
			x1, y1 := x0+cs, y0+cs

			// Interior edges are drawn once, from the east and south sides.
			if y == 0 && cell.NorthWall {
				line(bw, x0, y0, x1, y0)
			}
			if x == 0 && cell.WestWall {
				line(bw, x0, y0, x0, y1)
			}
			if cell.EastWall {
				line(bw, x1, y0, x1, y1)
			}
			if cell.SouthWall {
				line(bw, x0, y1, x1, y1)
			}
		}
	}
	fmt.Fprint(bw, "</g>\n")

	if len(path) > 0 {
		center := func(p maze.Point) (int, int) {
			return m + p.X*cs + cs/2, m + p.Y*cs + cs/2
		}

		fmt.Fprintf(bw, `<polyline fill="none" stroke="%s" stroke-width="%d" stroke-linecap="round" stroke-linejoin="round" points="`, opts.PathColor, max(cs/4, 1))
		for i, p := range path {
			cx, cy := center(p)
			if i > 0 {
				fmt.Fprint(bw, " ")
			}
			fmt.Fprintf(bw, "%d,%d", cx, cy)
		}
		fmt.Fprint(bw, "\"/>\n")

		r := max(cs/3, 1)
		sx, sy := center(path[0])
		gx, gy := center(path[len(path)-1])
		fmt.Fprintf(bw, `<circle cx="%d" cy="%d" r="%d" fill="%s"/>
<circle cx="%d" cy="%d" r="%d" fill="%s"/>
`, sx, sy, r, startColor, gx, gy, r, goalColor)
	}

	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

// SVGFile writes the SVG document to a file at name, replacing it if present.
func SVGFile(name string, grid *maze.Grid, path maze.Path, opts Options) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := SVG(f, grid, path, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func line(w io.Writer, x0, y0, x1, y1 int) {
	fmt.Fprintf(w, `<line x1="%d" y1="%d" x2="%d" y2="%d"/>
`, x0, y0, x1, y1)
}
