package maze

import (
	"container/heap"
	"fmt"
)

// Path is a route from start to goal, both endpoints included.
type Path []Point

// Steps returns the number of moves along the path.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Valid reports whether the path is non-empty and every consecutive pair of points is
// joined by an open passage.
func (p Path) Valid(grid *Grid) bool {
	if len(p) == 0 {
		return false
	}
	for i := 1; i < len(p); i++ {
		d, err := DirectionTo(p[i-1], p[i])
		if err != nil {
			return false
		}
		walled, err := grid.HasWall(p[i-1], d)
		if err != nil || walled {
			return false
		}
	}
	return true
}

// Result contains the outcome of a search.
type Result struct {
	Path     Path // Path is nil when Found is false.
	Found    bool // Found is false when goal cannot be reached from start.
	Expanded int  // Expanded counts the nodes moved to the closed set.
}

// Search runs A* from start to goal over the open passages of grid, with unit step cost and
// a Manhattan heuristic. An unreachable goal is reported through Result.Found, not an error.
func Search(grid *Grid, start, goal Point) (Result, error) {
	if !grid.InBounds(start) {
		return Result{}, fmt.Errorf("%w: start %v", ErrOutOfBounds, start)
	}
	if !grid.InBounds(goal) {
		return Result{}, fmt.Errorf("%w: goal %v", ErrOutOfBounds, goal)
	}

	size := grid.Size()
	gScore := make([]int, size)
	for i := range gScore {
		gScore[i] = -1
	}
	cameFrom := make([]int, size)
	closed := make([]bool, size)
	inOpen := make([]*openItem, size)

	openSet := make(openQueue, 0, 64)
	heap.Init(&openSet)

	seq := 0
	startIndex := grid.index(start)
	h := start.Manhattan(goal)
	startItem := &openItem{index: startIndex, gScore: 0, fScore: h, hScore: h, seq: seq}
	heap.Push(&openSet, startItem)
	inOpen[startIndex] = startItem
	gScore[startIndex] = 0
	cameFrom[startIndex] = -1

	goalIndex := grid.index(goal)
	expanded := 0

	for openSet.Len() > 0 {
		current := heap.Pop(&openSet).(*openItem)
		inOpen[current.index] = nil

		if current.index == goalIndex {
			return Result{
				Path:     reconstructPath(grid, cameFrom, goalIndex),
				Found:    true,
				Expanded: expanded,
			}, nil
		}

		closed[current.index] = true
		expanded++

		currentPoint := grid.point(current.index)
		neighbors, err := grid.OpenNeighbors(currentPoint)
		if err != nil {
			return Result{}, err
		}

		for _, n := range neighbors {
			ni := grid.index(n)
			if closed[ni] {
				continue
			}

			tentativeG := current.gScore + 1
			if gScore[ni] >= 0 && tentativeG >= gScore[ni] {
				continue
			}

			cameFrom[ni] = current.index
			gScore[ni] = tentativeG
			nh := n.Manhattan(goal)

			if item := inOpen[ni]; item != nil {
				item.gScore = tentativeG
				item.fScore = tentativeG + nh
				heap.Fix(&openSet, item.indexInQueue)
				continue
			}

			seq++
			item := &openItem{index: ni, gScore: tentativeG, fScore: tentativeG + nh, hScore: nh, seq: seq}
			heap.Push(&openSet, item)
			inOpen[ni] = item
		}
	}

	return Result{Expanded: expanded}, nil
}

// reconstructPath follows cameFrom back from the goal and returns the route start-first.
func reconstructPath(grid *Grid, cameFrom []int, goalIndex int) Path {
	path := Path{grid.point(goalIndex)}
	for i := cameFrom[goalIndex]; i >= 0; i = cameFrom[i] {
		path = append(path, grid.point(i))
	}

	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
