package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/they4kman/gosweep/director/random"
	"github.com/they4kman/gosweep/engine"
	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/score"
)

const textHelp = `commands:
  r ROW COL      reveal a cell
  f ROW COL      toggle a flag
  n [MODE]       new game (easy, medium, hard)
  c H W MINES    new custom game
  s [MODE]       show best times
  q              quit`

// textUI is a line-oriented front end: it reads commands and prints the board.
type textUI struct {
	engine  *engine.Engine
	scanner *bufio.Scanner
	out     io.Writer
}

func newTextUI(engine *engine.Engine, in io.Reader, out io.Writer) *textUI {
	return &textUI{
		engine:  engine,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (ui *textUI) Run() error {
	fmt.Fprintln(ui.out, textHelp)
	ui.printBoard()

	for {
		fmt.Fprint(ui.out, "> ")
		line, ok := ui.readLine()
		if !ok {
			return ui.scanner.Err()
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "q" {
			return nil
		}
		if err := ui.handle(fields); err != nil {
			fmt.Fprintf(ui.out, "error: %v\n", err)
		}
	}
}

func (ui *textUI) readLine() (string, bool) {
	if !ui.scanner.Scan() {
		return "", false
	}
	return ui.scanner.Text(), true
}

func (ui *textUI) handle(fields []string) error {
	switch fields[0] {
	case "r", "f":
		row, col, err := parseInts2(fields[1:])
		if err != nil {
			return err
		}
		act := ui.engine.Reveal
		if fields[0] == "f" {
			act = ui.engine.ToggleFlag
		}
		if _, err := act(row, col); err != nil {
			return err
		}
		ui.printBoard()
		return ui.promptName()
	case "n":
		difficulty := ui.engine.Session().Config().Difficulty
		if len(fields) > 1 {
			var err error
			if difficulty, err = game.ParseDifficulty(fields[1]); err != nil {
				return err
			}
		}
		if difficulty == game.Custom {
			config := ui.engine.Session().Config()
			config.Seed = 0
			return ui.newGame(config)
		}
		config, err := game.Preset(difficulty)
		if err != nil {
			return err
		}
		return ui.newGame(config)
	case "c":
		if len(fields) != 4 {
			return errors.New("usage: c HEIGHT WIDTH MINES")
		}
		height, width, err := parseInts2(fields[1:3])
		if err != nil {
			return err
		}
		numMines, err := strconv.Atoi(fields[3])
		if err != nil {
			return errors.Wrap(err, "mines")
		}
		config, err := game.CustomConfig(height, width, numMines)
		if err != nil {
			return err
		}
		return ui.newGame(config)
	case "s":
		difficulty := ui.engine.Session().Config().Difficulty
		if len(fields) > 1 {
			var err error
			if difficulty, err = game.ParseDifficulty(fields[1]); err != nil {
				return err
			}
		}
		board, err := ui.engine.Scoreboard(difficulty)
		if err != nil {
			return err
		}
		printScoreboard(ui.out, difficulty, board)
		return nil
	}
	return errors.Errorf("unknown command %q", fields[0])
}

func (ui *textUI) newGame(config game.GameConfig) error {
	if err := ui.engine.NewGame(config); err != nil {
		return err
	}
	ui.printBoard()
	return nil
}

// promptName asks for a name when the last action set a best time.
func (ui *textUI) promptName() error {
	pending, ok := ui.engine.Pending()
	if !ok {
		return nil
	}

	fmt.Fprintf(ui.out, "New best time on %s: %s seconds! Your name: ", pending.Difficulty, strconv.FormatFloat(pending.Seconds, 'f', 2, 64))
	name, _ := ui.readLine()
	if _, err := ui.engine.SubmitName(name); err != nil {
		if errors.Is(err, score.ErrStoreUnavailable) {
			fmt.Fprintln(ui.out, "Score kept for this session, but it could not be saved.")
			return nil
		}
		return err
	}

	board, err := ui.engine.Scoreboard(pending.Difficulty)
	if err != nil {
		return err
	}
	printScoreboard(ui.out, pending.Difficulty, board)
	return nil
}

func (ui *textUI) printBoard() {
	printSession(ui.out, ui.engine.Session())
}

func printSession(out io.Writer, session *game.Session) {
	fmt.Fprintf(out, "%s | mines left: %d | time: %s\n",
		session.Status(), session.MinesRemaining(), session.FormatElapsed())

	states := session.States()
	width := len(states[0])

	fmt.Fprint(out, "    ")
	for col := 0; col < width; col++ {
		fmt.Fprintf(out, "%d", col%10)
	}
	fmt.Fprintln(out)
	for row, rowStates := range states {
		fmt.Fprintf(out, "%3d ", row)
		for _, state := range rowStates {
			fmt.Fprint(out, state.Glyph())
		}
		fmt.Fprintln(out)
	}
}

func printScoreboard(out io.Writer, difficulty game.Difficulty, board score.Scoreboard) {
	fmt.Fprintf(out, "%s mode - high scores\n", difficulty)
	if len(board) == 0 {
		fmt.Fprintln(out, "level not solved yet. be the first to solve it.")
		return
	}
	for i, record := range board {
		fmt.Fprintf(out, "No. %d. %s %0.4f\n", i+1, record.Name, record.Seconds)
	}
}

func parseInts2(fields []string) (int, int, error) {
	if len(fields) != 2 {
		return 0, 0, errors.New("expected two numbers")
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// runDirector lets the random director play one game, showing the running
// time while it does.
func runDirector(ctx context.Context, rt *runEnv, out io.Writer) error {
	session := rt.engine.Session()

	director := random.New(session.Config().Seed)
	director.Init(rt.engine)

	watchCtx, stopWatch := context.WithCancel(ctx)
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		game.Watch(watchCtx, session, 100*time.Millisecond, func(elapsed string) {
			fmt.Fprintf(out, "\rtime: %s", elapsed)
		})
	}()

	err := director.ActContinuously(ctx, opts.directorInterval)
	stopWatch()
	<-watchDone
	fmt.Fprintln(out)
	if err != nil {
		return err
	}

	printSession(out, session)
	if pending, ok := rt.engine.Pending(); ok {
		if _, err := rt.engine.SubmitName("director"); err != nil && !errors.Is(err, score.ErrStoreUnavailable) {
			return err
		}
		fmt.Fprintf(out, "Recorded %0.2f seconds on %s\n", pending.Seconds, pending.Difficulty)
	}
	return nil
}
