package score

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/they4kman/gosweep/game"
)

// FileStore keeps each scoreboard in "<dir>/<difficulty>_scores.txt", one
// "name seconds" line per record.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (store *FileStore) path(difficulty game.Difficulty) string {
	return filepath.Join(store.Dir, fmt.Sprintf("%s_scores.txt", difficulty))
}

func (store *FileStore) Load(difficulty game.Difficulty) (Scoreboard, error) {
	data, err := os.ReadFile(store.path(difficulty))
	if err != nil {
		return nil, &StoreError{Op: "load", Difficulty: difficulty, Err: err}
	}

	board, err := parseScores(data)
	if err != nil {
		return nil, &StoreError{Op: "load", Difficulty: difficulty, Err: err}
	}
	return board, nil
}

// Save rewrites the whole file. The new content is written to a temporary
// file first and renamed over the old one.
func (store *FileStore) Save(difficulty game.Difficulty, board Scoreboard) error {
	if err := os.MkdirAll(store.Dir, 0o755); err != nil {
		return &StoreError{Op: "save", Difficulty: difficulty, Err: err}
	}

	tmp, err := os.CreateTemp(store.Dir, fmt.Sprintf(".%s_scores-*", difficulty))
	if err != nil {
		return &StoreError{Op: "save", Difficulty: difficulty, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(formatScores(board)); err != nil {
		_ = tmp.Close()
		return &StoreError{Op: "save", Difficulty: difficulty, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Op: "save", Difficulty: difficulty, Err: err}
	}
	if err := os.Rename(tmp.Name(), store.path(difficulty)); err != nil {
		return &StoreError{Op: "save", Difficulty: difficulty, Err: err}
	}
	return nil
}

func parseScores(data []byte) (Scoreboard, error) {
	var board Scoreboard

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNum := 1; scanner.Scan(); lineNum++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, errors.Errorf("line %d: want \"name seconds\", got %d fields", lineNum, len(fields))
		}

		seconds, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		board = append(board, Record{Name: fields[0], Seconds: seconds})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return board.normalize(), nil
}

func formatScores(board Scoreboard) []byte {
	var buf bytes.Buffer
	for _, record := range board {
		fmt.Fprintf(&buf, "%s %s\n", SanitizeName(record.Name), strconv.FormatFloat(record.Seconds, 'f', -1, 64))
	}
	return buf.Bytes()
}
