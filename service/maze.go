package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	dmn "github.com/maeln/r-astar/domain"
	"github.com/maeln/r-astar/maze"
	"github.com/maeln/r-astar/service/i"
)

const (
	defaultMaxDimension  = 200
	defaultMaxTraceCells = 400
)

var (
	ErrMazeTooLarge = errors.New("maze too large")
)

// MazeConfig configures a MazeService.
type MazeConfig struct {
	Limiter       i.RateLimiter // Limiter may be nil to disable rate limiting.
	Logger        i.Logger
	MaxDimension  int          // MaxDimension bounds both width and height.
	MaxTraceCells int          // MaxTraceCells bounds width*height for traced builds.
	SeedSource    func() int64 // SeedSource picks seeds for requests without one.
}

// MazeService carves mazes from seeds and solves them. Nothing is stored between calls.
type MazeService struct {
	limiter       i.RateLimiter
	logger        i.Logger
	maxDimension  int
	maxTraceCells int
	seedSource    func() int64
}

// NewMazeService creates a MazeService, filling unset limits with defaults.
func NewMazeService(c *MazeConfig) (*MazeService, error) {
	if c == nil || c.Logger == nil {
		return nil, errors.New("maze service requires a logger")
	}

	ms := &MazeService{
		limiter:       c.Limiter,
		logger:        c.Logger,
		maxDimension:  c.MaxDimension,
		maxTraceCells: c.MaxTraceCells,
		seedSource:    c.SeedSource,
	}

	if ms.maxDimension <= 0 {
		ms.maxDimension = defaultMaxDimension
	}

	if ms.maxTraceCells <= 0 {
		ms.maxTraceCells = defaultMaxTraceCells
	}

	if ms.seedSource == nil {
		src := rand.New(rand.NewSource(time.Now().UnixNano()))
		ms.seedSource = src.Int63
	}

	return ms, nil
}

// Build implements i.MazeBuilder.
func (ms *MazeService) Build(ctx context.Context, subject string, req dmn.MazeRequest) (*dmn.MazeResult, error) {
	return ms.build(ctx, subject, req, ms.maxDimension*ms.maxDimension, nil)
}

// Trace implements i.MazeBuilder. The carve always runs to completion; emit only
// stops receiving steps once it returns false or ctx is done.
func (ms *MazeService) Trace(ctx context.Context, subject string, req dmn.MazeRequest, emit func(dmn.TraceStep) bool) (*dmn.MazeResult, error) {
	streaming := true
	step := 0
	trace := func(g *maze.Grid, active maze.Point) {
		step++
		if !streaming {
			return
		}
		if ctx.Err() != nil {
			streaming = false
			return
		}

		// A freshly carved cell has exactly one passage: the one it was entered through.
		open, err := g.OpenNeighbors(active)
		if err != nil || len(open) != 1 {
			ms.logger.Error(fmt.Sprintf("trace step %d: unexpected passages at %v", step, active))
			streaming = false
			return
		}

		streaming = emit(dmn.TraceStep{Index: step, From: open[0], Active: active})
	}

	return ms.build(ctx, subject, req, ms.maxTraceCells, trace)
}

func (ms *MazeService) build(ctx context.Context, subject string, req dmn.MazeRequest, maxCells int, trace maze.TraceFunc) (*dmn.MazeResult, error) {
	if req.Width > ms.maxDimension || req.Height > ms.maxDimension || req.Width*req.Height > maxCells {
		return nil, fmt.Errorf("%w: %dx%d", ErrMazeTooLarge, req.Width, req.Height)
	}

	grid, err := maze.New(req.Width, req.Height)
	if err != nil {
		return nil, err
	}

	start, goal := maze.Point{}, maze.Point{X: req.Width - 1, Y: req.Height - 1}
	if req.Start != nil {
		start = *req.Start
	}
	if req.Goal != nil {
		goal = *req.Goal
	}
	if !grid.InBounds(start) {
		return nil, fmt.Errorf("%w: start %v", maze.ErrOutOfBounds, start)
	}
	if !grid.InBounds(goal) {
		return nil, fmt.Errorf("%w: goal %v", maze.ErrOutOfBounds, goal)
	}

	if ms.limiter != nil {
		if err := ms.limiter.Allow(ctx, subject); err != nil {
			return nil, err
		}
	}

	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		seed = ms.seedSource()
	}

	opts := []maze.Option{maze.WithSeed(seed)}
	if trace != nil {
		opts = append(opts, maze.WithTrace(trace))
	}

	stats, err := maze.NewGenerator(opts...).CarveWithStats(grid, start)
	if err != nil {
		return nil, err
	}

	result, err := maze.Search(grid, start, goal)
	if err != nil {
		return nil, err
	}

	ms.logger.Info(fmt.Sprintf("built %dx%d maze for %s: seed=%d found=%t steps=%d expanded=%d",
		req.Width, req.Height, subject, seed, result.Found, result.Path.Steps(), result.Expanded))

	return &dmn.MazeResult{
		Seed:   seed,
		Grid:   grid,
		Start:  start,
		Goal:   goal,
		Search: result,
		Stats:  stats,
	}, nil
}
