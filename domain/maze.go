package domain

import "github.com/maeln/r-astar/maze"

// MazeRequest describes a maze to carve and the route to solve in it.
// Nil fields take defaults: a fresh random seed, start at (0,0), goal at the opposite corner.
type MazeRequest struct {
	Width  int
	Height int
	Seed   *int64
	Start  *maze.Point
	Goal   *maze.Point
}

// MazeResult is a carved grid together with its solution. The same seed and dimensions
// always reproduce the same grid.
type MazeResult struct {
	Seed   int64
	Grid   *maze.Grid
	Start  maze.Point
	Goal   maze.Point
	Search maze.Result
	Stats  maze.CarveStats
}

// TraceStep is one carve step: the wall between From and Active was removed.
type TraceStep struct {
	Index  int        `json:"index"`
	From   maze.Point `json:"from"`
	Active maze.Point `json:"active"`
}
