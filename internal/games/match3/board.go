package match3

import (
	"math/rand"
	"sort"
)

// Cell addresses a board position.
type Cell struct {
	Row, Col int
}

// adjacent reports whether a and b share an edge.
func (a Cell) adjacent(b Cell) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	return dr*dr+dc*dc == 1
}

// Board is a grid of gem indices.
type Board [][]int

// NewBoard fills a rows x cols board with gems in [0, gems) so that no run of
// three exists at the start.
func NewBoard(rng *rand.Rand, rows, cols, gems int) Board {
	b := make(Board, rows)
	for r := range b {
		b[r] = make([]int, cols)
		for c := range b[r] {
			for {
				g := rng.Intn(gems)
				if c >= 2 && b[r][c-1] == g && b[r][c-2] == g {
					continue
				}
				if r >= 2 && b[r-1][c] == g && b[r-2][c] == g {
					continue
				}
				b[r][c] = g
				break
			}
		}
	}
	return b
}

func (b Board) rows() int { return len(b) }

func (b Board) cols() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Contains reports whether c is on the board.
func (b Board) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < b.rows() && c.Col >= 0 && c.Col < b.cols()
}

// Swap exchanges two cells in place.
func (b Board) Swap(a, c Cell) {
	b[a.Row][a.Col], b[c.Row][c.Col] = b[c.Row][c.Col], b[a.Row][a.Col]
}

// Matches returns every cell that is part of a horizontal or vertical run of
// three or more equal gems, each cell once, in row-major order.
func (b Board) Matches() []Cell {
	set := make(map[Cell]struct{})
	mark := func(cells ...Cell) {
		for _, c := range cells {
			set[c] = struct{}{}
		}
	}
	for r := 0; r < b.rows(); r++ {
		for c := 0; c+2 < b.cols(); c++ {
			if g := b[r][c]; b[r][c+1] == g && b[r][c+2] == g {
				mark(Cell{r, c}, Cell{r, c + 1}, Cell{r, c + 2})
			}
		}
	}
	for r := 0; r+2 < b.rows(); r++ {
		for c := 0; c < b.cols(); c++ {
			if g := b[r][c]; b[r+1][c] == g && b[r+2][c] == g {
				mark(Cell{r, c}, Cell{r + 1, c}, Cell{r + 2, c})
			}
		}
	}

	cells := make([]Cell, 0, len(set))
	for c := range set {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}
