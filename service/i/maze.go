package i

import (
	"context"

	dmn "github.com/maeln/r-astar/domain"
)

// MazeBuilder carves and solves mazes on behalf of a subject (usually a user ID).
type MazeBuilder interface {
	// Build carves the requested maze and searches it from start to goal.
	Build(ctx context.Context, subject string, req dmn.MazeRequest) (*dmn.MazeResult, error)

	// Trace is Build that also reports every carve step to emit, until emit returns false.
	Trace(ctx context.Context, subject string, req dmn.MazeRequest, emit func(dmn.TraceStep) bool) (*dmn.MazeResult, error)
}
