package game

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	lock sync.Mutex
	now  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2020, time.May, 24, 12, 0, 0, 0, time.UTC)}
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

func quietLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

// layoutSession starts a game on rows of '*' (mine) and '.' (safe).
func layoutSession(t *testing.T, clock Clock, rows ...string) *Session {
	t.Helper()

	session, err := NewSessionFromLayout(&Layout{SerializedBoard: strings.Join(rows, "\n")}, clock, quietLogger())
	require.NoError(t, err)
	return session
}

// wallLayout is a 9x9 board with a full row of mines at row 6 and one more
// mine in the bottom-right corner.
var wallLayout = []string{
	".........",
	".........",
	".........",
	".........",
	".........",
	".........",
	"*********",
	".........",
	"........*",
}
