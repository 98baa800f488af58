// Package grid implements the uniform-cell broad phase for collision
// detection. Cells hold body indices, not pointers, and their backing
// arrays are reused between steps to avoid allocation churn.
package grid

import "math"

// Grid partitions a rectangular domain into fixed-size square cells.
// Cell size must be at least the maximum collision distance (2*radius)
// so that every colliding pair lands in the same or an adjacent cell.
type Grid struct {
	cellSize    float64
	invCellSize float64
	cols, rows  int
	cells       []cell
}

type cell struct {
	items []int
}

// halfStencil covers every unordered pair of 8-adjacent cells exactly
// once when iterated over all cells: no offset's negation is in the set.
var halfStencil = [4][2]int{{1, 0}, {1, -1}, {0, -1}, {-1, -1}}

func New(width, height, cellSize float64) *Grid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]cell, cols*rows),
	}
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Clear empties every cell while keeping its capacity.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert buckets body index i by position. Out-of-range positions are
// clamped into the boundary cells to absorb floating-point edge cases.
func (g *Grid) Insert(i int, x, y float64) {
	gx := int(x * g.invCellSize)
	gy := int(y * g.invCellSize)
	if gx < 0 {
		gx = 0
	} else if gx >= g.cols {
		gx = g.cols - 1
	}
	if gy < 0 {
		gy = 0
	} else if gy >= g.rows {
		gy = g.rows - 1
	}
	idx := gy*g.cols + gx
	g.cells[idx].items = append(g.cells[idx].items, i)
}

// ForEachPair calls fn once for every unordered pair of indices that
// share a cell or sit in 8-adjacent cells. Pairs further apart than one
// cell step are never visited.
func (g *Grid) ForEachPair(fn func(i, j int)) {
	for gy := 0; gy < g.rows; gy++ {
		for gx := 0; gx < g.cols; gx++ {
			items := g.cells[gy*g.cols+gx].items

			for a := 0; a < len(items); a++ {
				for b := a + 1; b < len(items); b++ {
					fn(items[a], items[b])
				}
			}

			for _, off := range halfStencil {
				nx, ny := gx+off[0], gy+off[1]
				if nx < 0 || nx >= g.cols || ny < 0 || ny >= g.rows {
					continue
				}
				neighbor := g.cells[ny*g.cols+nx].items
				for _, i := range items {
					for _, j := range neighbor {
						fn(i, j)
					}
				}
			}
		}
	}
}
