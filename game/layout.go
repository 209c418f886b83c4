package game

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/they4kman/gosweep/util/collections"
)

const (
	layoutMine = '*'
	layoutSafe = '.'
)

// Layout describes a known mine arrangement. It records where mines are and
// nothing about play progress.
type Layout struct {
	Seed            int64  `yaml:"seed,omitempty"`
	SerializedBoard string `yaml:"board"`
}

func (layout *Layout) Serialize() (string, error) {
	out, err := yaml.Marshal(layout)
	if err != nil {
		return "", errors.Wrap(err, "marshal layout")
	}
	return string(out), nil
}

func LoadLayout(in []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(in, &layout); err != nil {
		return nil, errors.Wrap(err, "unmarshal layout")
	}
	return &layout, nil
}

// LayoutOf captures the mine arrangement of a board.
func LayoutOf(board *Board, seed int64) *Layout {
	var builder strings.Builder
	for row := range board.cells {
		if row > 0 {
			builder.WriteByte('\n')
		}
		for col := range board.cells[row] {
			if board.cells[row][col].isMine {
				builder.WriteByte(layoutMine)
			} else {
				builder.WriteByte(layoutSafe)
			}
		}
	}
	return &Layout{Seed: seed, SerializedBoard: builder.String()}
}

// parse returns the board dimensions and the mine positions.
func (layout *Layout) parse() (int, int, collections.Set[Point], error) {
	mines := make(collections.Set[Point])
	height, width := 0, 0

	for _, line := range strings.Split(layout.SerializedBoard, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if width == 0 {
			width = len(line)
		} else if len(line) != width {
			return 0, 0, nil, errors.Wrapf(ErrInvalidConfiguration, "layout row %d has %d cells, want %d", height, len(line), width)
		}

		for col, c := range line {
			switch c {
			case layoutMine:
				mines.Add(Point{Row: height, Col: col})
			case layoutSafe:
			default:
				return 0, 0, nil, errors.Wrapf(ErrInvalidConfiguration, "layout row %d has unknown cell %q", height, c)
			}
		}
		height++
	}

	return height, width, mines, nil
}

// NewSessionFromLayout starts a custom game on the layout's mines.
func NewSessionFromLayout(layout *Layout, clock Clock, log logrus.FieldLogger) (*Session, error) {
	height, width, mines, err := layout.parse()
	if err != nil {
		return nil, err
	}

	config := GameConfig{
		Height:     height,
		Width:      width,
		NumMines:   len(mines),
		Difficulty: Custom,
		Seed:       layout.Seed,
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	board := newBoard(height, width)
	if err := board.placeMines(mines); err != nil {
		return nil, err
	}
	return newSession(config, board, clock, log), nil
}
