package random

import (
	"context"
	"math/rand"
	"time"

	"github.com/they4kman/gosweep/game"
)

var _ game.Director = (*Director)(nil)

// Director reveals hidden cells in a random order until the game ends.
type Director struct {
	rng    *rand.Rand
	player game.Player
	order  []game.Point
}

func New(seed int64) *Director {
	return &Director{rng: rand.New(rand.NewSource(seed))}
}

func (director *Director) Init(player game.Player) {
	director.player = player

	board := player.Session().Board()
	director.order = make([]game.Point, 0, board.NumCells())
	for _, cell := range board.Cells() {
		director.order = append(director.order, cell.Point())
	}

	director.rng.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

// Act reveals the next hidden, unflagged cell.
func (director *Director) Act() (bool, error) {
	session := director.player.Session()
	if session.Status().IsOver() {
		return false, nil
	}

	board := session.Board()
	for len(director.order) > 0 {
		point := director.order[0]
		director.order = director.order[1:]

		cell := board.CellAt(point.Row, point.Col)
		if cell.IsRevealed() || cell.IsFlagged() {
			continue
		}
		if _, err := director.player.Reveal(point.Row, point.Col); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// ActContinuously acts every interval until the game ends, nothing is left
// to do, or ctx is done.
func (director *Director) ActContinuously(ctx context.Context, interval time.Duration) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			acted, err := director.Act()
			if err != nil {
				return err
			}
			if !acted {
				return nil
			}
		}
	}
}
