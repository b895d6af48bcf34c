package maze

import (
	"fmt"
	"math/rand"
	"time"
)

// Chooser picks a uniformly random index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
	Intn(n int) int
}

// TraceFunc is called after every carve step with the grid and the newly opened cell.
// It must treat the grid as read-only and must not retain it.
type TraceFunc func(grid *Grid, active Point)

// CarveStats summarizes one run of the carver.
type CarveStats struct {
	Steps      int // Steps is the number of walls removed.
	Backtracks int // Backtracks is the number of dead ends popped off the stack.
	MaxDepth   int // MaxDepth is the largest stack size reached.
}

// Generator carves perfect mazes with a randomized iterative backtracker.
type Generator struct {
	chooser Chooser
	trace   TraceFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithChooser sets the random source used to pick the next neighbor.
func WithChooser(c Chooser) Option {
	return func(g *Generator) { g.chooser = c }
}

// WithSeed uses a math/rand source seeded with seed, making carving reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.chooser = rand.New(rand.NewSource(seed)) }
}

// WithTrace registers a callback invoked once per carve step.
func WithTrace(fn TraceFunc) Option {
	return func(g *Generator) { g.trace = fn }
}

// NewGenerator creates a Generator. Without options it draws from a time-seeded source.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.chooser == nil {
		g.chooser = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Carve turns a fully walled grid into a spanning tree rooted at start.
func (g *Generator) Carve(grid *Grid, start Point) error {
	_, err := g.CarveWithStats(grid, start)
	return err
}

// CarveWithStats is Carve that also reports how the walk went.
func (g *Generator) CarveWithStats(grid *Grid, start Point) (CarveStats, error) {
	var stats CarveStats
	if err := grid.MarkVisited(start); err != nil {
		return stats, err
	}

	stack := make([]Point, 0, grid.Size())
	stack = append(stack, start)
	stats.MaxDepth = 1

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		candidates, err := grid.UnvisitedNeighbors(current)
		if err != nil {
			return stats, err
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			stats.Backtracks++
			continue
		}

		next := candidates[g.chooser.Intn(len(candidates))]
		if err := grid.RemoveWallPair(current, next); err != nil {
			// Candidates come from UnvisitedNeighbors, so they are always in-bounds 4-neighbors.
			panic(fmt.Sprintf("maze: carving %v -> %v: %v", current, next, err))
		}
		grid.cells[grid.index(next)].visited = true
		stack = append(stack, next)

		stats.Steps++
		if len(stack) > stats.MaxDepth {
			stats.MaxDepth = len(stack)
		}

		if g.trace != nil {
			g.trace(grid, next)
		}
	}

	return stats, nil
}
