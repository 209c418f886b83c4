package game

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/they4kman/gosweep/util/collections"
)

type Board struct {
	height, width int // in number of cells
	numMines      int
	cells         [][]Cell
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumCells() int {
	return board.width * board.height
}

func (board *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < board.height && col < board.width
}

// CellAt returns the cell at row, col, or nil when outside the board.
func (board *Board) CellAt(row, col int) *Cell {
	if board.InBounds(row, col) {
		return &board.cells[row][col]
	}
	return nil
}

// Cells returns every cell in row-major order.
func (board *Board) Cells() []*Cell {
	cells := make([]*Cell, 0, board.NumCells())
	for row := range board.cells {
		for col := range board.cells[row] {
			cells = append(cells, &board.cells[row][col])
		}
	}
	return cells
}

// Mines returns the positions of every mine.
func (board *Board) Mines() collections.Set[Point] {
	mines := make(collections.Set[Point], board.numMines)
	for _, cell := range board.Cells() {
		if cell.isMine {
			mines.Add(cell.Point())
		}
	}
	return mines
}

func (board *Board) NumRevealed() int {
	numRevealed := 0
	for _, cell := range board.Cells() {
		if cell.isRevealed {
			numRevealed++
		}
	}
	return numRevealed
}

func (board *Board) NumFlags() int {
	numFlags := 0
	for _, cell := range board.Cells() {
		if cell.isFlagged {
			numFlags++
		}
	}
	return numFlags
}

// isCleared reports whether every cell is either revealed or flagged. Flags
// count regardless of whether they sit on a mine.
func (board *Board) isCleared() bool {
	return board.NumRevealed()+board.NumFlags() == board.NumCells()
}

func newBoard(height, width int) *Board {
	board := &Board{
		height: height,
		width:  width,
		cells:  make([][]Cell, height),
	}

	for row := 0; row < height; row++ {
		board.cells[row] = make([]Cell, width)

		for col := 0; col < width; col++ {
			cell := &board.cells[row][col]
			cell.board = board
			cell.row, cell.col = row, col
		}
	}

	return board
}

// createBoard builds a board for the config and places its mines at random.
func createBoard(config GameConfig, rng *rand.Rand) (*Board, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	board := newBoard(config.Height, config.Width)
	if err := board.spawnMines(config.NumMines, rng); err != nil {
		return nil, err
	}
	return board, nil
}

// spawnMines marks numMines distinct cells as mines, sampled uniformly without
// replacement from the linear index space.
func (board *Board) spawnMines(numMines int, rng *rand.Rand) error {
	numCells := board.NumCells()
	if numMines <= 0 || numMines >= numCells {
		return errors.Wrapf(ErrInvalidConfiguration, "cannot place %d mines in %d cells", numMines, numCells)
	}

	// Shuffle cell indexes and take a prefix
	cellIndexes := rng.Perm(numCells)
	for _, cellIdx := range cellIndexes[:numMines] {
		board.cells[cellIdx/board.width][cellIdx%board.width].isMine = true
	}
	board.numMines = numMines
	return nil
}

// placeMines marks the given positions as mines.
func (board *Board) placeMines(mines collections.Set[Point]) error {
	for point := range mines {
		cell := board.CellAt(point.Row, point.Col)
		if cell == nil {
			return errors.Wrapf(ErrInvalidCoordinate, "mine at %v", point)
		}
		cell.isMine = true
	}
	board.numMines = len(mines)
	return nil
}
