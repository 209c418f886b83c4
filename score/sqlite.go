package score

import (
	"database/sql"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/they4kman/gosweep/game"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS scores (
	difficulty TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	seconds REAL NOT NULL,
	PRIMARY KEY (difficulty, position)
)`

// SQLiteStore keeps all scoreboards in one SQLite database.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "create scores table")
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

func (store *SQLiteStore) Close() error {
	if store == nil || store.sqlDB == nil {
		return nil
	}
	return store.sqlDB.Close()
}

func (store *SQLiteStore) Load(difficulty game.Difficulty) (Scoreboard, error) {
	rows, err := store.sqlDB.Query(
		`SELECT name, seconds FROM scores WHERE difficulty = ? ORDER BY position`,
		difficulty.String(),
	)
	if err != nil {
		return nil, &StoreError{Op: "load", Difficulty: difficulty, Err: err}
	}
	defer rows.Close()

	var board Scoreboard
	for rows.Next() {
		var record Record
		if err := rows.Scan(&record.Name, &record.Seconds); err != nil {
			return nil, &StoreError{Op: "load", Difficulty: difficulty, Err: err}
		}
		board = append(board, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "load", Difficulty: difficulty, Err: err}
	}
	return board.normalize(), nil
}

// Save replaces every row of the difficulty in a single transaction.
func (store *SQLiteStore) Save(difficulty game.Difficulty, board Scoreboard) error {
	if err := store.save(difficulty, board); err != nil {
		return &StoreError{Op: "save", Difficulty: difficulty, Err: err}
	}
	return nil
}

func (store *SQLiteStore) save(difficulty game.Difficulty, board Scoreboard) error {
	tx, err := store.sqlDB.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM scores WHERE difficulty = ?`, difficulty.String()); err != nil {
		return errors.Wrap(err, "clear scores")
	}
	for position, record := range board {
		if _, err := tx.Exec(
			`INSERT INTO scores (difficulty, position, name, seconds) VALUES (?, ?, ?, ?)`,
			difficulty.String(), position, record.Name, record.Seconds,
		); err != nil {
			return errors.Wrapf(err, "insert score %d", position)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}
