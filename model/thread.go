package model

import (
	"fmt"
	"time"
)

// Thread is the opening post of a board thread, as returned by the board's
// JSON feed. Immutable once fetched.
type Thread struct {
	Id        int64
	Board     string
	Subject   string
	BodyHtml  string
	CreatedAt int64 // unix seconds
	Sticky    bool
	Locked    bool
}

// Key returns the stable dedup key for this thread. A given key is recorded
// for a platform at most once, and only after a confirmed publish.
func (t Thread) Key() string {
	return fmt.Sprintf("%s:%d", t.Board, t.Id)
}

// Age of the thread relative to now.
func (t Thread) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(t.CreatedAt, 0))
}
