// Package engine is the surface a presentation layer drives: it owns the live
// game session and routes winning times into the scoreboards.
package engine

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/score"
)

var (
	ErrNoGame         = errors.New("no game in progress")
	ErrNoPendingScore = errors.New("no score awaiting a name")
)

// PendingScore is a winning time that qualifies for its scoreboard and waits
// for the player's name.
type PendingScore struct {
	Difficulty game.Difficulty
	Seconds    float64
}

type Engine struct {
	keeper *score.Keeper
	clock  game.Clock
	log    logrus.FieldLogger

	session *game.Session
	pending *PendingScore
}

// New creates an engine with no game. A nil keeper disables scoreboards.
func New(keeper *score.Keeper, clock game.Clock, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		keeper: keeper,
		clock:  clock,
		log:    log,
	}
}

// NewGame replaces the current session. An invalid config is rejected and the
// current session stays in play.
func (engine *Engine) NewGame(config game.GameConfig) error {
	if config.Difficulty != game.Custom {
		preset, err := game.Preset(config.Difficulty)
		if err != nil {
			return err
		}
		if preset.Height != config.Height || preset.Width != config.Width || preset.NumMines != config.NumMines {
			return errors.Wrapf(game.ErrInvalidConfiguration, "%s games are %dx%d with %d mines",
				config.Difficulty, preset.Height, preset.Width, preset.NumMines)
		}
	}

	session, err := game.NewSession(config, engine.clock, engine.log)
	if err != nil {
		return err
	}
	engine.replace(session)
	return nil
}

// NewGameFromLayout starts a custom game on a known mine layout.
func (engine *Engine) NewGameFromLayout(layout *game.Layout) error {
	session, err := game.NewSessionFromLayout(layout, engine.clock, engine.log)
	if err != nil {
		return err
	}
	engine.replace(session)
	return nil
}

func (engine *Engine) replace(session *game.Session) {
	if engine.session != nil {
		engine.session.Retire()
	}
	engine.session = session
	engine.pending = nil

	config := session.Config()
	engine.log.WithFields(logrus.Fields{
		"difficulty": config.Difficulty,
		"height":     config.Height,
		"width":      config.Width,
		"mines":      config.NumMines,
	}).Debug("New game")
}

// Session returns the live session, or nil before the first game.
func (engine *Engine) Session() *game.Session {
	return engine.session
}

func (engine *Engine) Reveal(row, col int) (game.Status, error) {
	return engine.act(func(session *game.Session) (game.Status, error) {
		return session.Reveal(row, col)
	})
}

func (engine *Engine) ToggleFlag(row, col int) (game.Status, error) {
	return engine.act(func(session *game.Session) (game.Status, error) {
		return session.ToggleFlag(row, col)
	})
}

func (engine *Engine) act(action func(*game.Session) (game.Status, error)) (game.Status, error) {
	if engine.session == nil {
		return game.NotStarted, ErrNoGame
	}

	before := engine.session.Status()
	status, err := action(engine.session)
	if err != nil {
		return status, err
	}
	if status == game.Won && before != game.Won {
		engine.won()
	}
	return status, nil
}

func (engine *Engine) won() {
	config := engine.session.Config()
	seconds := engine.session.Elapsed().Seconds()

	if engine.keeper == nil || !engine.keeper.Qualifies(config.Difficulty, seconds) {
		return
	}
	engine.pending = &PendingScore{Difficulty: config.Difficulty, Seconds: seconds}
}

// Pending returns the winning time waiting for a name, if any.
func (engine *Engine) Pending() (PendingScore, bool) {
	if engine.pending == nil {
		return PendingScore{}, false
	}
	return *engine.pending, true
}

// SubmitName completes a pending score. The returned error may match
// score.ErrStoreUnavailable, in which case the record is still on the
// in-memory scoreboard.
func (engine *Engine) SubmitName(name string) (bool, error) {
	if engine.pending == nil {
		return false, ErrNoPendingScore
	}
	pending := *engine.pending
	engine.pending = nil

	return engine.keeper.Record(pending.Difficulty, name, pending.Seconds)
}

// Scoreboard returns the best times of a difficulty. Custom games have none
// and yield score.ErrNoScoreboard.
func (engine *Engine) Scoreboard(difficulty game.Difficulty) (score.Scoreboard, error) {
	if engine.keeper == nil {
		return nil, errors.Wrapf(score.ErrNoScoreboard, "%s", difficulty)
	}
	return engine.keeper.Scoreboard(difficulty)
}
