package score

import (
	"io/fs"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/gosweep/game"
)

// Keeper holds the in-memory scoreboards and writes them through to a Store.
// The in-memory copy is authoritative for the life of the process, so a
// failed write never loses a record.
type Keeper struct {
	store  Store
	log    logrus.FieldLogger
	boards map[game.Difficulty]Scoreboard
}

// NewKeeper loads every difficulty's scoreboard. Unreadable scoreboards
// start empty.
func NewKeeper(store Store, log logrus.FieldLogger) *Keeper {
	if log == nil {
		log = logrus.StandardLogger()
	}

	keeper := &Keeper{
		store:  store,
		log:    log,
		boards: make(map[game.Difficulty]Scoreboard, len(game.Difficulties)),
	}
	for _, difficulty := range game.Difficulties {
		keeper.boards[difficulty] = keeper.load(difficulty)
	}
	return keeper
}

func (keeper *Keeper) load(difficulty game.Difficulty) Scoreboard {
	board, err := keeper.store.Load(difficulty)
	if err != nil {
		entry := keeper.log.WithError(err).WithField("difficulty", difficulty)
		if errors.Is(err, fs.ErrNotExist) {
			entry.Debug("No saved scores")
		} else {
			entry.Warn("Could not load scores; starting with an empty scoreboard")
		}
		return Scoreboard{}
	}
	return board
}

// Scoreboard returns a copy of the difficulty's records.
func (keeper *Keeper) Scoreboard(difficulty game.Difficulty) (Scoreboard, error) {
	board, ok := keeper.boards[difficulty]
	if !ok {
		return nil, errors.Wrapf(ErrNoScoreboard, "%s", difficulty)
	}
	return append(Scoreboard{}, board...), nil
}

// Qualifies reports whether a time would enter the difficulty's scoreboard.
func (keeper *Keeper) Qualifies(difficulty game.Difficulty, seconds float64) bool {
	board, ok := keeper.boards[difficulty]
	return ok && board.Qualifies(seconds)
}

// Record inserts the time if it qualifies and persists the scoreboard. It
// reports whether the record was kept. A persistence failure is logged and
// returned, but the record stays in memory.
func (keeper *Keeper) Record(difficulty game.Difficulty, name string, seconds float64) (bool, error) {
	board, ok := keeper.boards[difficulty]
	if !ok {
		return false, errors.Wrapf(ErrNoScoreboard, "%s", difficulty)
	}
	if !board.Qualifies(seconds) {
		return false, nil
	}

	record := Record{Name: SanitizeName(name), Seconds: seconds}
	board = board.Insert(record)
	keeper.boards[difficulty] = board

	log := keeper.log.WithFields(logrus.Fields{
		"difficulty": difficulty,
		"name":       record.Name,
		"seconds":    seconds,
	})
	if err := keeper.store.Save(difficulty, board); err != nil {
		log.WithError(err).Warn("Could not save scores")
		return true, err
	}
	log.Info("Recorded best time")
	return true, nil
}
