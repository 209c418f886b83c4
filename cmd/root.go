package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/gosweep/config"
	"github.com/they4kman/gosweep/engine"
	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/score"
)

type options struct {
	difficulty    game.Difficulty
	height, width int
	numMines      int
	seed          int64

	layoutPath       string
	useDirector      bool
	directorInterval time.Duration

	scoresDir    string
	scoreBackend string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "gosweep",
	Short: "Play manual or computer-driven Minesweeper",
	Long: `gosweep is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play an easy game on the terminal
	gosweep

Pick a preset, or give custom dimensions
	gosweep --mode hard
	gosweep -h 10 -w 20 -m 35

Use the director flag to make the computer play for you
	gosweep --director
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.close()

		if opts.layoutPath != "" {
			data, err := os.ReadFile(opts.layoutPath)
			if err != nil {
				return errors.Wrap(err, "read layout")
			}
			layout, err := game.LoadLayout(data)
			if err != nil {
				return err
			}
			if err := rt.engine.NewGameFromLayout(layout); err != nil {
				return err
			}
		} else {
			gameConfig, err := gameConfigFromFlags(cmd)
			if err != nil {
				return err
			}
			if err := rt.engine.NewGame(gameConfig); err != nil {
				return err
			}
		}

		if opts.useDirector {
			return runDirector(cmd.Context(), rt, cmd.OutOrStdout())
		}

		ui := newTextUI(rt.engine, cmd.InOrStdin(), cmd.OutOrStdout())
		return ui.Run()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runEnv bundles what a command needs to run games.
type runEnv struct {
	log    *logrus.Logger
	keeper *score.Keeper
	engine *engine.Engine
	close  func() error
}

func openRuntime(cmd *cobra.Command) (*runEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("scores-dir") {
		cfg.ScoresDir = opts.scoresDir
	}
	if cmd.Flags().Changed("backend") {
		cfg.ScoreBackend = opts.scoreBackend
	}

	log, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		return nil, err
	}

	keeper := score.NewKeeper(store, log)
	return &runEnv{
		log:    log,
		keeper: keeper,
		engine: engine.New(keeper, game.SystemClock, log),
		close:  closeStore,
	}, nil
}

func gameConfigFromFlags(cmd *cobra.Command) (game.GameConfig, error) {
	flags := cmd.Flags()

	var gameConfig game.GameConfig
	if flags.Changed("height") || flags.Changed("width") || flags.Changed("mines") {
		preset, _ := game.Preset(game.Easy)
		height, width, numMines := preset.Height, preset.Width, preset.NumMines
		if flags.Changed("height") {
			height = opts.height
		}
		if flags.Changed("width") {
			width = opts.width
		}
		if flags.Changed("mines") {
			numMines = opts.numMines
		}

		var err error
		if gameConfig, err = game.CustomConfig(height, width, numMines); err != nil {
			return game.GameConfig{}, err
		}
	} else {
		var err error
		if gameConfig, err = game.Preset(opts.difficulty); err != nil {
			return game.GameConfig{}, errors.Wrap(err, "custom mode needs --height, --width or --mines")
		}
	}

	gameConfig.Seed = opts.seed
	return gameConfig, nil
}

type difficultyValue game.Difficulty

func newDifficultyValue(val game.Difficulty, p *game.Difficulty) *difficultyValue {
	*p = val
	return (*difficultyValue)(p)
}

func (value *difficultyValue) String() string {
	return game.Difficulty(*value).String()
}

func (value *difficultyValue) Set(name string) error {
	difficulty, err := game.ParseDifficulty(name)
	if err != nil {
		return err
	}
	*value = difficultyValue(difficulty)
	return nil
}

func (value *difficultyValue) Type() string {
	return "game.Difficulty"
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.PersistentFlags().Bool("help", false, "Help for this command")

	flags := rootCmd.Flags()
	flags.Var(newDifficultyValue(game.Easy, &opts.difficulty), "mode", `Difficulty preset:
easy: 9x9 with 10 mines
medium: 16x16 with 40 mines
hard: 16x30 with 99 mines`)
	flags.IntVarP(&opts.height, "height", "h", 0, "Height of a custom board, in cells")
	flags.IntVarP(&opts.width, "width", "w", 0, "Width of a custom board, in cells")
	flags.IntVarP(&opts.numMines, "mines", "m", 0, "Number of mines on a custom board")
	flags.Int64Var(&opts.seed, "seed", 0, "Seed for mine placement (0 picks one at random)")
	flags.StringVar(&opts.layoutPath, "layout", "", "YAML file with a fixed mine layout")
	flags.BoolVarP(&opts.useDirector, "director", "d", false, "Make the computer play")
	flags.DurationVar(&opts.directorInterval, "director-interval", 200*time.Millisecond, "Delay between computer moves")

	rootCmd.PersistentFlags().StringVar(&opts.scoresDir, "scores-dir", "", "Directory of score files (overrides GOSWEEP_SCORES_DIR)")
	rootCmd.PersistentFlags().StringVar(&opts.scoreBackend, "backend", "", "Score backend, file or sqlite (overrides GOSWEEP_SCORE_BACKEND)")
}
