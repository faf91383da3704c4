package minionboard

import (
	"io"
	"sync"
	"time"

	"github.com/jpalmerr/minionboard/internal/render"
)

// Terminal draws stats as a table on a writer, typically os.Stdout.
type Terminal struct {
	mu    sync.Mutex
	w     io.Writer
	title string
	now   func() time.Time
}

// NewTerminal creates a [Terminal] writing to w. title is printed above the
// table when redrawing and may be empty.
func NewTerminal(w io.Writer, title string) *Terminal {
	return &Terminal{w: w, title: title, now: time.Now}
}

// Redraw is a cycle hook that clears the screen and redraws the table after
// every successful cycle. Failed cycles leave the last table in place.
//
//	term := minionboard.NewTerminal(os.Stdout, "Minion")
//	minionboard.Poll(ctx, url, nil, minionboard.WithCycleHook(term.Redraw))
func (t *Terminal) Redraw(r CycleResult) {
	if !r.OK() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = render.Screen(t.w, t.title, snapshotFromResult(r), t.now())
}

// Print writes the table for a successful cycle once, without clearing the
// screen. It returns the cycle's error for a failed cycle.
func (t *Terminal) Print(r CycleResult) error {
	if !r.OK() {
		return r.Err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return render.Table(t.w, snapshotFromResult(r), t.now())
}
