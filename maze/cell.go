package maze

// Cell represents a single cell in a maze grid.
// It holds one wall flag per side and the visited marker used while carving.
type Cell struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the cell.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the cell.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the cell.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the cell.

	visited bool
}

func walledCell() Cell {
	return Cell{
		NorthWall: true,
		SouthWall: true,
		EastWall:  true,
		WestWall:  true,
	}
}

// HasWall reports whether the side facing d is walled.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case North:
		return c.NorthWall
	case South:
		return c.SouthWall
	case East:
		return c.EastWall
	case West:
		return c.WestWall
	default:
		return true
	}
}

// Visited reports whether the carver has already reached the cell.
func (c *Cell) Visited() bool {
	return c.visited
}

// openSide clears the wall facing d. Only Grid.RemoveWallPair calls it.
func (c *Cell) openSide(d Direction) {
	switch d {
	case North:
		c.NorthWall = false
	case South:
		c.SouthWall = false
	case East:
		c.EastWall = false
	case West:
		c.WestWall = false
	}
}

// WallMask packs the walls into the low four bits: N=1, S=2, E=4, W=8.
func (c *Cell) WallMask() uint8 {
	var mask uint8
	for _, d := range Directions {
		if c.HasWall(d) {
			mask |= 1 << d
		}
	}
	return mask
}
