package game

import (
	"context"
	"time"
)

// Watch pushes the session's formatted elapsed time every interval. It keeps
// ticking after the game ends, holding the final value, and returns once the
// session is retired or ctx is done.
func Watch(ctx context.Context, session *Session, interval time.Duration, push func(string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	push(session.FormatElapsed())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if session.IsRetired() {
				return
			}
			push(session.FormatElapsed())
		}
	}
}
