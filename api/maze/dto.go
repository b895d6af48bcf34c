// Package mazeapi exposes maze generation and solving over HTTP.
package mazeapi

import (
	dmn "github.com/maeln/r-astar/domain"
	"github.com/maeln/r-astar/maze"
)

// MazeRequest is the body of the maze endpoints.
type MazeRequest struct {
	Width  int         `json:"width" binding:"required,min=1"`
	Height int         `json:"height" binding:"required,min=1"`
	Seed   *int64      `json:"seed"`
	Start  *maze.Point `json:"start"`
	Goal   *maze.Point `json:"goal"`
}

// TraceQuery holds the query parameters of the trace stream.
type TraceQuery struct {
	Width  int    `form:"width" binding:"required,min=1"`
	Height int    `form:"height" binding:"required,min=1"`
	Seed   *int64 `form:"seed"`
}

// MazeResponse describes a carved and solved maze.
// Walls holds one row per y, each cell packed as N=1, S=2, E=4, W=8.
type MazeResponse struct {
	Seed     int64        `json:"seed"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Walls    [][]int      `json:"walls"`
	Start    maze.Point   `json:"start"`
	Goal     maze.Point   `json:"goal"`
	Found    bool         `json:"found"`
	Path     []maze.Point `json:"path"`
	Steps    int          `json:"steps"`
	Expanded int          `json:"expanded"`
}

func (r MazeRequest) toDomain() dmn.MazeRequest {
	return dmn.MazeRequest{
		Width:  r.Width,
		Height: r.Height,
		Seed:   r.Seed,
		Start:  r.Start,
		Goal:   r.Goal,
	}
}

func newMazeResponse(res *dmn.MazeResult) *MazeResponse {
	g := res.Grid
	walls := make([][]int, g.Height())
	for y := range walls {
		walls[y] = make([]int, g.Width())
		for x := range walls[y] {
			// In-bounds by construction.
			cell, _ := g.Cell(maze.Point{X: x, Y: y})
			walls[y][x] = int(cell.WallMask())
		}
	}

	path := []maze.Point(res.Search.Path)
	if path == nil {
		path = []maze.Point{}
	}

	return &MazeResponse{
		Seed:     res.Seed,
		Width:    g.Width(),
		Height:   g.Height(),
		Walls:    walls,
		Start:    res.Start,
		Goal:     res.Goal,
		Found:    res.Search.Found,
		Path:     path,
		Steps:    res.Search.Path.Steps(),
		Expanded: res.Search.Expanded,
	}
}
