package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jpalmerr/minionboard/internal/store"
)

func count(v int64) *int64 {
	return &v
}

func TestTable(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := store.Snapshot{
		ActiveJobs:      count(3),
		FinishedJobs:    count(12500),
		ActiveWorkers:   count(2),
		InactiveWorkers: count(1),
		Workers:         count(3),
		UpdatedAt:       now.Add(-5 * time.Minute),
		LatencyMs:       42,
	}

	var buf bytes.Buffer
	if err := Table(&buf, snap, now); err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Active jobs",
		"12,500",
		"Workers",
		"updated 5 minutes ago (42ms)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Uptime") {
		t.Errorf("uptime row should be omitted when absent\n%s", out)
	}
}

func TestTable_MissingFieldsBlank(t *testing.T) {
	snap := store.Snapshot{ActiveJobs: count(1)}

	var buf bytes.Buffer
	if err := Table(&buf, snap, time.Now()); err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Active locks") && strings.ContainsAny(line, "0123456789") {
			t.Errorf("absent active_locks should render blank, got %q", line)
		}
	}
}

func TestTable_Uptime(t *testing.T) {
	uptime := 7200.37
	snap := store.Snapshot{Uptime: &uptime}

	var buf bytes.Buffer
	if err := Table(&buf, snap, time.Now()); err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if !strings.Contains(buf.String(), "2 hours") {
		t.Errorf("uptime should be humanized, got\n%s", buf.String())
	}
}

func TestScreen_ClearsAndTitles(t *testing.T) {
	var buf bytes.Buffer
	if err := Screen(&buf, "Minion", store.Snapshot{}, time.Now()); err != nil {
		t.Fatalf("Screen() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, clearScreen) {
		t.Error("Screen() should start with the clear sequence")
	}
	if !strings.Contains(out, "Minion") {
		t.Error("Screen() should print the title")
	}
}

func TestRows_Order(t *testing.T) {
	rows := Rows(store.Snapshot{})
	if rows[0].Label != "Active jobs" {
		t.Errorf("first row = %q, want %q", rows[0].Label, "Active jobs")
	}
	if rows[len(rows)-1].Label != "Workers" {
		t.Errorf("last row = %q, want %q", rows[len(rows)-1].Label, "Workers")
	}
	for _, r := range rows {
		if r.Value != nil {
			t.Errorf("%s = %d on empty snapshot, want nil", r.Label, *r.Value)
		}
	}
}
