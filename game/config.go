package game

import (
	"fmt"

	"github.com/pkg/errors"
)

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Custom
)

// Difficulties lists the named presets, the ones that keep a scoreboard.
var Difficulties = []Difficulty{Easy, Medium, Hard}

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
	Custom: "custom",
}

func (difficulty Difficulty) String() string {
	if name, ok := difficultyNames[difficulty]; ok {
		return name
	}
	return fmt.Sprintf("Difficulty(%d)", int(difficulty))
}

// HasScoreboard reports whether best times are kept for the difficulty.
func (difficulty Difficulty) HasScoreboard() bool {
	return difficulty != Custom
}

func ParseDifficulty(name string) (Difficulty, error) {
	for difficulty, difficultyName := range difficultyNames {
		if difficultyName == name {
			return difficulty, nil
		}
	}
	return 0, errors.Errorf("unknown difficulty %q", name)
}

type GameConfig struct {
	Height, Width int
	NumMines      int
	Difficulty    Difficulty

	// Seed for mine placement; zero picks a time-based seed
	Seed int64
}

var presets = map[Difficulty]GameConfig{
	Easy:   {Height: 9, Width: 9, NumMines: 10, Difficulty: Easy},
	Medium: {Height: 16, Width: 16, NumMines: 40, Difficulty: Medium},
	Hard:   {Height: 16, Width: 30, NumMines: 99, Difficulty: Hard},
}

// Preset returns the fixed configuration of a named difficulty.
func Preset(difficulty Difficulty) (GameConfig, error) {
	config, ok := presets[difficulty]
	if !ok {
		return GameConfig{}, errors.Wrapf(ErrInvalidConfiguration, "no preset for %s", difficulty)
	}
	return config, nil
}

// CustomConfig builds and validates a custom configuration.
func CustomConfig(height, width, numMines int) (GameConfig, error) {
	config := GameConfig{
		Height:     height,
		Width:      width,
		NumMines:   numMines,
		Difficulty: Custom,
	}
	if err := config.Validate(); err != nil {
		return GameConfig{}, err
	}
	return config, nil
}

func (config GameConfig) NumCells() int {
	return config.Height * config.Width
}

// Validate checks 0 < NumMines < Height*Width with positive dimensions.
func (config GameConfig) Validate() error {
	switch {
	case config.Height <= 0 || config.Width <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "board must be at least 1x1, got %dx%d", config.Height, config.Width)
	case config.NumMines <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "mine count must be positive, got %d", config.NumMines)
	case config.NumMines >= config.NumCells():
		return errors.Wrapf(ErrInvalidConfiguration, "%d mines do not fit on a %dx%d board", config.NumMines, config.Height, config.Width)
	}
	return nil
}
