package game

import "github.com/gammazero/deque"

type Visitor func(*Cell)

// flood reveals the region reachable from start. The frontier is worked as a
// LIFO stack, so the fill expands depth-first. Only cells with no adjacent
// mines propagate, and only to orthogonal neighbors that are not mines.
func flood(start *Cell, visit Visitor) {
	frontier := deque.New[*Cell]()
	frontier.PushBack(start)

	for frontier.Len() > 0 {
		cell := frontier.PopBack()
		if cell.isRevealed {
			continue
		}

		cell.reveal()
		if visit != nil {
			visit(cell)
		}

		if cell.AdjacentMines() != 0 {
			continue
		}
		for _, neighbor := range cell.orthogonalNeighbors() {
			if !neighbor.isRevealed && !neighbor.isMine {
				frontier.PushBack(neighbor)
			}
		}
	}
}
