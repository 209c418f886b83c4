package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Session is a single game: one board, its status and its stopwatch.
//
// Reveal and ToggleFlag are meant to be driven from one control flow. The
// status and timestamps are additionally guarded so a display loop (see
// Watch) may read them concurrently.
type Session struct {
	config GameConfig
	board  *Board
	clock  Clock
	log    logrus.FieldLogger

	lock      sync.RWMutex
	status    Status
	startTime time.Time
	endTime   time.Time
	losing    *Cell
	retired   bool
}

// NewSession creates a game with randomly placed mines. A nil clock uses the
// system clock and a nil logger the logrus standard logger.
func NewSession(config GameConfig, clock Clock, log logrus.FieldLogger) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	board, err := createBoard(config, rand.New(rand.NewSource(config.Seed)))
	if err != nil {
		return nil, err
	}
	return newSession(config, board, clock, log), nil
}

func newSession(config GameConfig, board *Board, clock Clock, log logrus.FieldLogger) *Session {
	if clock == nil {
		clock = SystemClock
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Session{
		config: config,
		board:  board,
		clock:  clock,
		log: log.WithFields(logrus.Fields{
			"difficulty": config.Difficulty,
			"seed":       config.Seed,
		}),
		status: NotStarted,
	}
}

func (session *Session) Config() GameConfig {
	return session.config
}

func (session *Session) Board() *Board {
	return session.board
}

func (session *Session) Status() Status {
	session.lock.RLock()
	defer session.lock.RUnlock()
	return session.status
}

// Elapsed is zero before the first action, runs while the game is in
// progress, and freezes once it is won or lost.
func (session *Session) Elapsed() time.Duration {
	session.lock.RLock()
	defer session.lock.RUnlock()
	return session.elapsed()
}

func (session *Session) elapsed() time.Duration {
	switch session.status {
	case NotStarted:
		return 0
	case InProgress:
		return session.clock.Now().Sub(session.startTime)
	}
	return session.endTime.Sub(session.startTime)
}

func (session *Session) FormatElapsed() string {
	return FormatSeconds(session.Elapsed())
}

// MinesRemaining is the mine count minus placed flags; it goes negative when
// more flags than mines are down.
func (session *Session) MinesRemaining() int {
	return session.board.numMines - session.board.NumFlags()
}

// Retire marks the session as replaced by a newer game.
func (session *Session) Retire() {
	session.lock.Lock()
	defer session.lock.Unlock()
	session.retired = true
}

func (session *Session) IsRetired() bool {
	session.lock.RLock()
	defer session.lock.RUnlock()
	return session.retired
}

// CellState returns the render state of a single cell.
func (session *Session) CellState(row, col int) (CellState, error) {
	cell, err := session.cellAt(row, col)
	if err != nil {
		return Unrevealed, err
	}

	session.lock.RLock()
	defer session.lock.RUnlock()
	return cell.state(session.status == Lost, session.losing), nil
}

// States returns the render state of every cell, indexed [row][col].
func (session *Session) States() [][]CellState {
	session.lock.RLock()
	defer session.lock.RUnlock()

	lost := session.status == Lost
	states := make([][]CellState, session.board.height)
	for row := range session.board.cells {
		states[row] = make([]CellState, session.board.width)
		for col := range session.board.cells[row] {
			states[row][col] = session.board.cells[row][col].state(lost, session.losing)
		}
	}
	return states
}

// Reveal opens a cell. A mine loses the game; anything else flood fills from
// the cell and may win it. Revealing after the game is over, or on a cell
// that is revealed or flagged, does nothing.
func (session *Session) Reveal(row, col int) (Status, error) {
	cell, err := session.cellAt(row, col)
	if err != nil {
		return session.Status(), err
	}

	session.lock.Lock()
	defer session.lock.Unlock()

	if session.status.IsOver() || cell.isRevealed || cell.isFlagged {
		return session.status, nil
	}
	session.start()

	if cell.isMine {
		session.losing = cell
		session.end(Lost)
		return session.status, nil
	}

	flood(cell, func(cell *Cell) {
		session.log.WithField("cell", cell.Point()).Trace("Revealed cell")
	})
	session.checkWin()

	return session.status, nil
}

// ToggleFlag places or removes a flag on a hidden cell. Flagging can win the
// game.
func (session *Session) ToggleFlag(row, col int) (Status, error) {
	cell, err := session.cellAt(row, col)
	if err != nil {
		return session.Status(), err
	}

	session.lock.Lock()
	defer session.lock.Unlock()

	if session.status.IsOver() || cell.isRevealed {
		return session.status, nil
	}
	session.start()

	cell.toggleFlagged()
	session.checkWin()

	return session.status, nil
}

func (session *Session) cellAt(row, col int) (*Cell, error) {
	cell := session.board.CellAt(row, col)
	if cell == nil {
		return nil, errors.Wrapf(
			ErrInvalidCoordinate,
			"(%d, %d) is outside the %dx%d board",
			row, col, session.board.height, session.board.width,
		)
	}
	return cell, nil
}

func (session *Session) start() {
	if session.status != NotStarted {
		return
	}
	session.status = InProgress
	session.startTime = session.clock.Now()
	session.log.Debug("Game started")
}

func (session *Session) checkWin() {
	if session.board.isCleared() {
		session.end(Won)
	}
}

func (session *Session) end(status Status) {
	session.status = status
	session.endTime = session.clock.Now()
	session.log.WithFields(logrus.Fields{
		"status":  status,
		"seconds": session.endTime.Sub(session.startTime).Seconds(),
	}).Info("Game over")
}
