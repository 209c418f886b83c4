package game

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned for board dimensions or mine counts
	// that cannot form a playable board.
	ErrInvalidConfiguration = errors.New("invalid game configuration")

	// ErrInvalidCoordinate is returned when a cell outside the board is addressed.
	ErrInvalidCoordinate = errors.New("invalid cell coordinate")
)
