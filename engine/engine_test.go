package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/score"
)

type fakeClock struct {
	lock sync.Mutex
	now  time.Time
}

func (clock *fakeClock) Now() time.Time {
	clock.lock.Lock()
	defer clock.lock.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.lock.Lock()
	defer clock.lock.Unlock()
	clock.now = clock.now.Add(d)
}

type memoryStore struct {
	boards  map[game.Difficulty]score.Scoreboard
	saveErr error
}

func (store *memoryStore) Load(difficulty game.Difficulty) (score.Scoreboard, error) {
	return append(score.Scoreboard{}, store.boards[difficulty]...), nil
}

func (store *memoryStore) Save(difficulty game.Difficulty, board score.Scoreboard) error {
	if store.saveErr != nil {
		return &score.StoreError{Op: "save", Difficulty: difficulty, Err: store.saveErr}
	}
	store.boards[difficulty] = append(score.Scoreboard{}, board...)
	return nil
}

type fixture struct {
	engine *Engine
	clock  *fakeClock
	store  *memoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, _ := test.NewNullLogger()
	log.SetLevel(logrus.TraceLevel)

	store := &memoryStore{boards: map[game.Difficulty]score.Scoreboard{}}
	clock := &fakeClock{now: time.Date(2020, time.May, 24, 0, 0, 0, 0, time.UTC)}
	return &fixture{
		engine: New(score.NewKeeper(store, log), clock, log),
		clock:  clock,
		store:  store,
	}
}

func presetConfig(t *testing.T, difficulty game.Difficulty, seed int64) game.GameConfig {
	t.Helper()

	config, err := game.Preset(difficulty)
	require.NoError(t, err)
	config.Seed = seed
	return config
}

// win reveals every safe cell, then flags every mine, spending the given
// time before the final flag.
func win(t *testing.T, f *fixture, took time.Duration) game.Status {
	t.Helper()

	board := f.engine.Session().Board()
	var mines []*game.Cell
	for _, cell := range board.Cells() {
		if cell.IsMine() {
			mines = append(mines, cell)
			continue
		}
		_, err := f.engine.Reveal(cell.Row(), cell.Col())
		require.NoError(t, err)
	}

	f.clock.Advance(took)

	var status game.Status
	for _, cell := range mines {
		var err error
		status, err = f.engine.ToggleFlag(cell.Row(), cell.Col())
		require.NoError(t, err)
	}
	return status
}

func firstMine(board *game.Board) *game.Cell {
	for _, cell := range board.Cells() {
		if cell.IsMine() {
			return cell
		}
	}
	return nil
}

func TestActionsBeforeFirstGame(t *testing.T) {
	f := newFixture(t)

	assert.Nil(t, f.engine.Session())
	_, err := f.engine.Reveal(0, 0)
	assert.ErrorIs(t, err, ErrNoGame)
	_, err = f.engine.ToggleFlag(0, 0)
	assert.ErrorIs(t, err, ErrNoGame)
}

func TestNewGameRejectsInvalidConfigAndKeepsSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Easy, 1)))
	previous := f.engine.Session()

	err := f.engine.NewGame(game.GameConfig{Height: 5, Width: 5, NumMines: 30, Difficulty: game.Custom})
	assert.ErrorIs(t, err, game.ErrInvalidConfiguration)
	assert.Same(t, previous, f.engine.Session())
	assert.False(t, previous.IsRetired())

	// Presets cannot be resized
	err = f.engine.NewGame(game.GameConfig{Height: 5, Width: 5, NumMines: 3, Difficulty: game.Easy})
	assert.ErrorIs(t, err, game.ErrInvalidConfiguration)
	assert.Same(t, previous, f.engine.Session())
}

func TestNewGameRetiresPreviousSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Easy, 1)))
	previous := f.engine.Session()

	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Hard, 2)))
	assert.True(t, previous.IsRetired())
	assert.NotSame(t, previous, f.engine.Session())
	assert.Equal(t, game.NotStarted, f.engine.Session().Status())
	assert.Equal(t, 30, f.engine.Session().Board().Width())
}

func TestQualifyingWinWaitsForName(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Easy, 3)))

	status := win(t, f, 12340*time.Millisecond)
	require.Equal(t, game.Won, status)

	pending, ok := f.engine.Pending()
	require.True(t, ok)
	assert.Equal(t, game.Easy, pending.Difficulty)
	assert.InDelta(t, 12.34, pending.Seconds, 1e-9)

	// Nothing is recorded until a name arrives
	board, err := f.engine.Scoreboard(game.Easy)
	require.NoError(t, err)
	assert.Empty(t, board)

	recorded, err := f.engine.SubmitName("alice")
	require.NoError(t, err)
	assert.True(t, recorded)

	board, err = f.engine.Scoreboard(game.Easy)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "alice", board[0].Name)
	assert.Equal(t, board, f.store.boards[game.Easy])

	_, ok = f.engine.Pending()
	assert.False(t, ok)
	_, err = f.engine.SubmitName("again")
	assert.ErrorIs(t, err, ErrNoPendingScore)
}

func TestWinningTimeEvictsSlowestRecord(t *testing.T) {
	f := newFixture(t)
	var full score.Scoreboard
	for i := 0; i < score.MaxRecords; i++ {
		full = append(full, score.Record{Name: "p", Seconds: 6 + float64(i)})
	}
	f.store.boards[game.Easy] = full
	log, _ := test.NewNullLogger()
	f.engine = New(score.NewKeeper(f.store, log), f.clock, log)

	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Easy, 4)))
	require.Equal(t, game.Won, win(t, f, 12340*time.Millisecond))

	_, err := f.engine.SubmitName("alice")
	require.NoError(t, err)

	board, err := f.engine.Scoreboard(game.Easy)
	require.NoError(t, err)
	require.Len(t, board, score.MaxRecords)
	assert.Equal(t, 14.0, board[score.MaxRecords-1].Seconds)
	for _, record := range board {
		assert.NotEqual(t, 15.0, record.Seconds)
	}
}

func TestSlowWinDoesNotQualify(t *testing.T) {
	f := newFixture(t)
	var full score.Scoreboard
	for i := 0; i < score.MaxRecords; i++ {
		full = append(full, score.Record{Name: "p", Seconds: 1 + float64(i)})
	}
	f.store.boards[game.Medium] = full
	log, _ := test.NewNullLogger()
	f.engine = New(score.NewKeeper(f.store, log), f.clock, log)

	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Medium, 5)))
	require.Equal(t, game.Won, win(t, f, time.Minute))

	_, ok := f.engine.Pending()
	assert.False(t, ok)
}

func TestLossRecordsNothing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Easy, 6)))

	mine := firstMine(f.engine.Session().Board())
	status, err := f.engine.Reveal(mine.Row(), mine.Col())
	require.NoError(t, err)
	assert.Equal(t, game.Lost, status)

	_, ok := f.engine.Pending()
	assert.False(t, ok)
}

func TestCustomWinRecordsNothing(t *testing.T) {
	f := newFixture(t)
	config, err := game.CustomConfig(5, 5, 3)
	require.NoError(t, err)
	config.Seed = 7
	require.NoError(t, f.engine.NewGame(config))

	require.Equal(t, game.Won, win(t, f, time.Second))
	_, ok := f.engine.Pending()
	assert.False(t, ok)

	_, err = f.engine.Scoreboard(game.Custom)
	assert.ErrorIs(t, err, score.ErrNoScoreboard)
}

func TestSaveFailureKeepsRecordInMemory(t *testing.T) {
	f := newFixture(t)
	f.store.saveErr = errors.New("read-only file system")
	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Hard, 8)))
	require.Equal(t, game.Won, win(t, f, 90*time.Second))

	recorded, err := f.engine.SubmitName("alice")
	assert.True(t, recorded)
	assert.ErrorIs(t, err, score.ErrStoreUnavailable)

	board, err := f.engine.Scoreboard(game.Hard)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.InDelta(t, 90, board[0].Seconds, 1e-9)
}

func TestNewGameDiscardsPendingScore(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Easy, 9)))
	require.Equal(t, game.Won, win(t, f, time.Second))
	_, ok := f.engine.Pending()
	require.True(t, ok)

	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Easy, 10)))
	_, ok = f.engine.Pending()
	assert.False(t, ok)
}

func TestNewGameFromLayout(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.NewGameFromLayout(&game.Layout{SerializedBoard: "*.\n.."}))

	status, err := f.engine.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, game.InProgress, status)
	assert.Equal(t, game.Custom, f.engine.Session().Config().Difficulty)

	err = f.engine.NewGameFromLayout(&game.Layout{SerializedBoard: "..\n.."})
	assert.ErrorIs(t, err, game.ErrInvalidConfiguration)
	assert.Equal(t, game.InProgress, f.engine.Session().Status())
}

func TestEngineWithoutKeeper(t *testing.T) {
	log, _ := test.NewNullLogger()
	engine := New(nil, nil, log)
	require.NoError(t, engine.NewGame(presetConfig(t, game.Easy, 11)))

	_, err := engine.Scoreboard(game.Easy)
	assert.ErrorIs(t, err, score.ErrNoScoreboard)
}

func TestOutOfBoundsIsReported(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.NewGame(presetConfig(t, game.Easy, 12)))

	_, err := f.engine.Reveal(9, 9)
	assert.ErrorIs(t, err, game.ErrInvalidCoordinate)
	_, err = f.engine.ToggleFlag(-1, 0)
	assert.ErrorIs(t, err, game.ErrInvalidCoordinate)
}
