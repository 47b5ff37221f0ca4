// Package grid provides a small 2D grid type for Advent of Code style
// puzzle solutions. (0,0) is the upper left corner and coordinates
// advance rightward and down.
package grid

import (
	"fmt"
	"iter"
	"strings"
)

// Location is an x,y coordinate on a grid.
type Location struct {
	X int
	Y int
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// Distance computes the Manhattan distance between two locations.
func (l Location) Distance(other Location) int {
	return abs(l.X-other.X) + abs(l.Y-other.Y)
}

// Less orders locations by row, then column.
func (l Location) Less(other Location) bool {
	if l.Y != other.Y {
		return l.Y < other.Y
	}
	return l.X < other.X
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Cell pairs a location with the value stored there.
type Cell[T any] struct {
	Loc   Location
	Value T
}

// Grid is a width x height grid of T backed by a single slice.
type Grid[T any] struct {
	cells  []T
	width  int
	height int
}

// New creates a grid of the given dimensions filled with zero values.
// Both dimensions must be positive.
func New[T any](width, height int) *Grid[T] {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", width, height))
	}
	return &Grid[T]{
		cells:  make([]T, width*height),
		width:  width,
		height: height,
	}
}

// Width returns the grid width. The grid is indexed from 0, so this is
// one past the last valid X.
func (g *Grid[T]) Width() int {
	return g.width
}

// Height returns the grid height. The grid is indexed from 0, so this is
// one past the last valid Y.
func (g *Grid[T]) Height() int {
	return g.height
}

// InBounds reports whether the location is on the grid.
func (g *Grid[T]) InBounds(l Location) bool {
	return l.X >= 0 && l.Y >= 0 && l.X < g.width && l.Y < g.height
}

func (g *Grid[T]) index(l Location) int {
	if !g.InBounds(l) {
		panic(fmt.Sprintf("grid: location %s out of bounds for %dx%d grid", l, g.width, g.height))
	}
	return l.Y*g.width + l.X
}

// Get returns the value at the given location.
func (g *Grid[T]) Get(l Location) T {
	return g.cells[g.index(l)]
}

// Set replaces the value at the given location.
func (g *Grid[T]) Set(l Location, v T) {
	g.cells[g.index(l)] = v
}

// All iterates the grid in row order: (0,0), (1,0), ... (0,1), ...
func (g *Grid[T]) All() iter.Seq2[Location, T] {
	return func(yield func(Location, T) bool) {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				l := Location{X: x, Y: y}
				if !yield(l, g.cells[g.index(l)]) {
					return
				}
			}
		}
	}
}

// Neighbors returns the 4 compass direction neighbors (N/S/E/W),
// accounting for grid edges.
func (g *Grid[T]) Neighbors(l Location) []Cell[T] {
	return g.neighbors(l, false)
}

// NeighborsAll returns the 8 compass direction neighbors
// (N/S/E/W/NE/NW/SE/SW), accounting for grid edges.
func (g *Grid[T]) NeighborsAll(l Location) []Cell[T] {
	return g.neighbors(l, true)
}

func (g *Grid[T]) neighbors(l Location, diagonal bool) []Cell[T] {
	candidates := []Location{
		{X: l.X + 1, Y: l.Y},
		{X: l.X - 1, Y: l.Y},
		{X: l.X, Y: l.Y + 1},
		{X: l.X, Y: l.Y - 1},
	}
	if diagonal {
		candidates = append(candidates,
			Location{X: l.X + 1, Y: l.Y + 1},
			Location{X: l.X + 1, Y: l.Y - 1},
			Location{X: l.X - 1, Y: l.Y + 1},
			Location{X: l.X - 1, Y: l.Y - 1},
		)
	}

	var out []Cell[T]
	for _, c := range candidates {
		if g.InBounds(c) {
			out = append(out, Cell[T]{Loc: c, Value: g.Get(c)})
		}
	}
	return out
}

// Render formats the grid one row per line using the given cell
// formatter. Kept off the type itself so formatting constraints are only
// paid by callers that print.
func Render[T any](g *Grid[T], format func(T) string) string {
	var b strings.Builder
	for l, v := range g.All() {
		b.WriteString(format(v))
		if l.X == g.Width()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
