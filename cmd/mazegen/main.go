// Command mazegen carves a maze, solves it corner to corner and writes both as SVG files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/maeln/r-astar/config"
	"github.com/maeln/r-astar/logger"
	"github.com/maeln/r-astar/maze"
	"github.com/maeln/r-astar/render"
)

const (
	mazeFile       = "maze.svg"
	solvedMazeFile = "solved_maze.svg"
)

type options struct {
	width    int
	height   int
	seed     int64
	outDir   string
	ascii    bool
	cellSize int
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("mazegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.width, "width", 32, "number of columns")
	fs.IntVar(&opts.height, "height", 16, "number of rows")
	fs.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "random seed")
	fs.StringVar(&opts.outDir, "out", ".", "directory for the SVG files")
	fs.BoolVar(&opts.ascii, "ascii", false, "also print the maze as text")
	fs.IntVar(&opts.cellSize, "cell", 20, "cell size in pixels")
	err := fs.Parse(args)
	return opts, err
}

func run(opts options, stdout io.Writer, log *logger.Logger) error {
	grid, err := maze.New(opts.width, opts.height)
	if err != nil {
		return err
	}

	start := maze.Point{}
	goal := maze.Point{X: opts.width - 1, Y: opts.height - 1}
	if err := maze.NewGenerator(maze.WithSeed(opts.seed)).Carve(grid, start); err != nil {
		return err
	}
	log.Info(fmt.Sprintf("carved %dx%d maze with seed %d", opts.width, opts.height, opts.seed))

	renderOpts := render.Options{CellSize: opts.cellSize}
	if err := render.SVGFile(filepath.Join(opts.outDir, mazeFile), grid, nil, renderOpts); err != nil {
		return err
	}

	if opts.ascii {
		fmt.Fprint(stdout, grid.String())
	}

	result, err := maze.Search(grid, start, goal)
	if err != nil {
		return err
	}
	if !result.Found {
		fmt.Fprintln(stdout, "No Path in maze.")
		return nil
	}

	log.Info(fmt.Sprintf("solved in %d steps, %d nodes expanded", result.Path.Steps(), result.Expanded))
	return render.SVGFile(filepath.Join(opts.outDir, solvedMazeFile), grid, result.Path, renderOpts)
}

func main() {
	log, _ := logger.New("MAZEGEN", config.ColorCyan, os.Stderr)

	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	if err := run(opts, os.Stdout, log); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
