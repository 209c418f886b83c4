// Package score keeps the best completion times per difficulty.
package score

import (
	"sort"
	"strings"
)

// MaxRecords is the number of times a scoreboard holds.
const MaxRecords = 10

const anonymousName = "anonymous"

type Record struct {
	Name    string
	Seconds float64
}

// Scoreboard is a list of records sorted by ascending time.
type Scoreboard []Record

// Qualifies reports whether a time would enter the scoreboard: there is room
// left, or it strictly beats the slowest record.
func (board Scoreboard) Qualifies(seconds float64) bool {
	return len(board) < MaxRecords || seconds < board[len(board)-1].Seconds
}

// Insert returns a new scoreboard holding the record, sorted and capped at
// MaxRecords. The receiver is left untouched.
func (board Scoreboard) Insert(record Record) Scoreboard {
	records := make(Scoreboard, 0, len(board)+1)
	records = append(records, board...)
	records = append(records, record)
	return records.normalize()
}

// normalize sorts by ascending time and drops everything past MaxRecords.
func (board Scoreboard) normalize() Scoreboard {
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Seconds < board[j].Seconds
	})
	if len(board) > MaxRecords {
		board = board[:MaxRecords]
	}
	return board
}

// SanitizeName turns a player-supplied name into a single whitespace-free token.
func SanitizeName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return anonymousName
	}
	return strings.Join(fields, "_")
}
