// Package render writes queue statistics to a terminal as a table.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jpalmerr/minionboard/internal/humanize"
	"github.com/jpalmerr/minionboard/internal/store"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// Row is one labelled counter of a snapshot. Value is nil when the stats
// endpoint did not report the field.
type Row struct {
	Label string
	Value *int64
}

// Rows lists the counters of snap in dashboard order.
func Rows(snap store.Snapshot) []Row {
	return []Row{
		{"Active jobs", snap.ActiveJobs},
		{"Inactive jobs", snap.InactiveJobs},
		{"Delayed jobs", snap.DelayedJobs},
		{"Failed jobs", snap.FailedJobs},
		{"Finished jobs", snap.FinishedJobs},
		{"Enqueued jobs", snap.EnqueuedJobs},
		{"Active locks", snap.ActiveLocks},
		{"Active workers", snap.ActiveWorkers},
		{"Inactive workers", snap.InactiveWorkers},
		{"Workers", snap.Workers},
	}
}

// Table writes snap as a two column table followed by a freshness line.
// Absent fields are left blank.
func Table(w io.Writer, snap store.Snapshot, now time.Time) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"Counter", "Value"})
	for _, r := range Rows(snap) {
		t.AppendRow(table.Row{r.Label, formatCount(r.Value)})
	}
	if snap.Uptime != nil {
		t.AppendRow(table.Row{"Uptime", humanize.Seconds(*snap.Uptime)})
	}
	t.Render()

	_, err := fmt.Fprintf(w, "updated %s (%dms)\n", humanize.FromNow(snap.UpdatedAt, now), snap.LatencyMs)
	return err
}

// Screen clears the terminal and redraws the table. Used by watch mode.
func Screen(w io.Writer, title string, snap store.Snapshot, now time.Time) error {
	if _, err := io.WriteString(w, clearScreen); err != nil {
		return err
	}
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	return Table(w, snap, now)
}

func formatCount(v *int64) string {
	if v == nil {
		return ""
	}
	return humanize.Count(*v)
}
