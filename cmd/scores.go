package cmd

import (
	"github.com/spf13/cobra"

	"github.com/they4kman/gosweep/game"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [easy|medium|hard]",
	Short: "Show the best times",
	Long: `Show the ten best times of a difficulty, or of every difficulty
when none is given. Custom games keep no scores.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.close()

		difficulties := game.Difficulties
		if len(args) == 1 {
			difficulty, err := game.ParseDifficulty(args[0])
			if err != nil {
				return err
			}
			difficulties = []game.Difficulty{difficulty}
		}

		for _, difficulty := range difficulties {
			board, err := rt.keeper.Scoreboard(difficulty)
			if err != nil {
				return err
			}
			printScoreboard(cmd.OutOrStdout(), difficulty, board)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoresCmd)
}
