package game

import (
	"fmt"
)

// Point addresses a cell by row and column.
type Point struct {
	Row, Col int
}

func (point Point) String() string {
	return fmt.Sprintf("(%d, %d)", point.Row, point.Col)
}

type Cell struct {
	board *Board

	row, col int

	isMine, isRevealed, isFlagged bool
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.row, cell.col)
}

func (cell *Cell) Row() int {
	return cell.row
}

func (cell *Cell) Col() int {
	return cell.col
}

func (cell *Cell) Point() Point {
	return Point{Row: cell.row, Col: cell.col}
}

func (cell *Cell) IsMine() bool {
	return cell.isMine
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) IsFlagged() bool {
	return cell.isFlagged
}

// AdjacentMines counts the mines among the up-to-8 surrounding cells.
func (cell *Cell) AdjacentMines() int {
	numMines := 0
	for _, neighbor := range cell.Neighbors() {
		if neighbor.isMine {
			numMines++
		}
	}
	return numMines
}

// Neighbors returns the in-bounds cells of the Moore neighborhood.
func (cell *Cell) Neighbors() []*Cell {
	neighbors := make([]*Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if neighbor := cell.board.CellAt(cell.row+dr, cell.col+dc); neighbor != nil {
				neighbors = append(neighbors, neighbor)
			}
		}
	}
	return neighbors
}

// orthogonalNeighbors returns the in-bounds cells to the north, south, east and west.
func (cell *Cell) orthogonalNeighbors() []*Cell {
	neighbors := make([]*Cell, 0, 4)
	for _, offset := range [...]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if neighbor := cell.board.CellAt(cell.row+offset.Row, cell.col+offset.Col); neighbor != nil {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

func (cell *Cell) reveal() {
	cell.isRevealed = true
	cell.isFlagged = false
}

func (cell *Cell) toggleFlagged() {
	cell.isFlagged = !cell.isFlagged
}

// state is the render state of the cell. Once the game is lost, mines and
// wrongly placed flags are exposed and losing marks the mine that was clicked.
func (cell *Cell) state(lost bool, losing *Cell) CellState {
	switch {
	case cell.isRevealed:
		return CellState(cell.AdjacentMines())
	case lost && cell == losing:
		return MineLosing
	case lost && cell.isMine:
		return Mine
	case lost && cell.isFlagged:
		return FlagWrong
	case cell.isFlagged:
		return Flag
	}
	return Unrevealed
}
