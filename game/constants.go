package game

type CellState int
type Status int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	FlagWrong
	Mine
	MineLosing
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	FlagWrong,
	Mine,
	MineLosing,
}

var cellStateGlyphs = map[CellState]string{
	Unrevealed: "#",
	Empty:      ".",
	Flag:       "F",
	FlagWrong:  "X",
	Mine:       "*",
	MineLosing: "@",
}

// Glyph is a single-character rendering of the state, used by text front ends.
func (state CellState) Glyph() string {
	if state >= Number1 && state <= Number8 {
		return string(rune('0' + int(state)))
	}
	return cellStateGlyphs[state]
}

// IsNumber reports whether the state shows a revealed safe cell, including Empty.
func (state CellState) IsNumber() bool {
	return state >= Empty && state <= Number8
}

const (
	NotStarted Status = iota
	InProgress
	Won
	Lost
)

func (status Status) String() string {
	switch status {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// IsOver reports whether the status is terminal.
func (status Status) IsOver() bool {
	return status == Won || status == Lost
}
