/*
Package maze provides tools for carving and solving rectangular mazes.

It defines the `Grid` structure, a flat arena of `Cell` values with one wall flag per
side. Walls are only ever removed in pairs through `RemoveWallPair`, which keeps the two
sides of every shared edge in agreement.

The package includes a randomized iterative backtracker (`Generator`) that turns a fully
walled grid into a spanning tree, and an A* search (`Search`) that finds a shortest route
between two cells of a carved grid.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// MaxCells bounds width*height so the cell arena stays addressable.
const MaxCells = 1 << 28

var (
	ErrInvalidDimension = errors.New("invalid maze dimension")
	ErrOutOfBounds      = errors.New("point out of bounds")
	ErrNotAdjacent      = errors.New("points are not adjacent")
)

// Grid is a width x height rectangle of cells, origin (0,0) at the top-left.
type Grid struct {
	width  int
	height int
	cells  []Cell // row-major, index y*width+x
}

// New creates a fully walled grid with every cell unvisited.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if width > MaxCells/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidDimension, width, height, MaxCells)
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = walledCell()
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) index(p Point) int {
	return p.Y*g.width + p.X
}

func (g *Grid) point(i int) Point {
	return Point{X: i % g.width, Y: i / g.width}
}

func (g *Grid) cell(p Point) (*Cell, error) {
	if !g.InBounds(p) {
		return nil, fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, p, g.width, g.height)
	}
	return &g.cells[g.index(p)], nil
}

// Cell returns a copy of the cell at p.
func (g *Grid) Cell(p Point) (Cell, error) {
	c, err := g.cell(p)
	if err != nil {
		return Cell{}, err
	}
	return *c, nil
}

// HasWall reports whether the side of p facing d is walled.
func (g *Grid) HasWall(p Point, d Direction) (bool, error) {
	c, err := g.cell(p)
	if err != nil {
		return false, err
	}
	return c.HasWall(d), nil
}

// RemoveWallPair opens the edge shared by two 4-neighbors, clearing it from both sides.
func (g *Grid) RemoveWallPair(p1, p2 Point) error {
	from, err := g.cell(p1)
	if err != nil {
		return err
	}
	to, err := g.cell(p2)
	if err != nil {
		return err
	}

	d, err := DirectionTo(p1, p2)
	if err != nil {
		return err
	}

	from.openSide(d)
	to.openSide(d.Opposite())
	return nil
}

// OpenNeighbors returns the in-bounds neighbors of p reachable without crossing a wall,
// in North, South, East, West order.
func (g *Grid) OpenNeighbors(p Point) ([]Point, error) {
	c, err := g.cell(p)
	if err != nil {
		return nil, err
	}

	result := make([]Point, 0, len(Directions))
	for _, d := range Directions {
		n := d.Step(p)
		if g.InBounds(n) && !c.HasWall(d) {
			result = append(result, n)
		}
	}
	return result, nil
}

// UnvisitedNeighbors returns the in-bounds neighbors of p not yet visited, walls ignored.
func (g *Grid) UnvisitedNeighbors(p Point) ([]Point, error) {
	if !g.InBounds(p) {
		return nil, fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, p, g.width, g.height)
	}

	result := make([]Point, 0, len(Directions))
	for _, d := range Directions {
		n := d.Step(p)
		if g.InBounds(n) && !g.cells[g.index(n)].visited {
			result = append(result, n)
		}
	}
	return result, nil
}

// MarkVisited flags p as reached by the carver.
func (g *Grid) MarkVisited(p Point) error {
	c, err := g.cell(p)
	if err != nil {
		return err
	}
	c.visited = true
	return nil
}

// IsVisited reports whether p has been reached by the carver.
func (g *Grid) IsVisited(p Point) (bool, error) {
	c, err := g.cell(p)
	if err != nil {
		return false, err
	}
	return c.visited, nil
}

// OpenEdges counts the carved passages. A perfect maze has exactly Size()-1.
func (g *Grid) OpenEdges() int {
	edges := 0
	for i := range g.cells {
		// Count each edge once from its west / north endpoint.
		if !g.cells[i].EastWall && i%g.width < g.width-1 {
			edges++
		}
		if !g.cells[i].SouthWall && i/g.width < g.height-1 {
			edges++
		}
	}
	return edges
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for col := 0; col < g.width; col++ {
		if g.cells[col].NorthWall {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for row := 0; row < g.height; row++ {
		// Cell rows
		if g.cells[row*g.width].WestWall {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for col := 0; col < g.width; col++ {
			if g.cells[row*g.width+col].EastWall {
				output.WriteString("   |")
			} else {
				output.WriteString("    ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for col := 0; col < g.width; col++ {
			if g.cells[row*g.width+col].SouthWall {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
