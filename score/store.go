package score

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/they4kman/gosweep/game"
)

var (
	// ErrStoreUnavailable matches every failure to read or write persisted scores.
	ErrStoreUnavailable = errors.New("score store unavailable")

	// ErrNoScoreboard is returned for difficulties that keep no scores.
	ErrNoScoreboard = errors.New("no scoreboard for difficulty")
)

// Store persists scoreboards, one per difficulty.
type Store interface {
	Load(difficulty game.Difficulty) (Scoreboard, error)
	Save(difficulty game.Difficulty, board Scoreboard) error
}

// StoreError describes a failed store operation. It matches ErrStoreUnavailable
// and unwraps to the underlying cause.
type StoreError struct {
	Op         string
	Difficulty game.Difficulty
	Err        error
}

func (err *StoreError) Error() string {
	return fmt.Sprintf("%s %s scores: %v", err.Op, err.Difficulty, err.Err)
}

func (err *StoreError) Unwrap() error {
	return err.Err
}

func (err *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}
