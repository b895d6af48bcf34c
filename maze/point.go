package maze

import "fmt"

// Point identifies a cell by column (X) and row (Y), origin at the top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Manhattan returns |dx| + |dy| between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Direction is one of the four axis-aligned moves.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in the order used for neighbor queries.
var Directions = [...]Direction{North, South, East, West}

var directionDeltas = [...]Point{
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Step returns the point one move away from p in direction d. The result may lie outside the grid.
func (d Direction) Step(p Point) Point {
	delta := directionDeltas[d]
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// DirectionTo returns the direction leading from p to q when they are 4-neighbors.
func DirectionTo(p, q Point) (Direction, error) {
	for _, d := range Directions {
		if d.Step(p) == q {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %v and %v", ErrNotAdjacent, p, q)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
