package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/jpalmerr/minionboard"
)

func TestPollOptions(t *testing.T) {
	cfg := &Config{
		StatsURL:     "https://jobs.example.com/minion/stats",
		PollInterval: Duration(5 * time.Second),
		Timeout:      Duration(2 * time.Second),
		Headers: map[string]string{
			"Authorization": "Bearer token",
			"X-Custom":      "value",
		},
	}

	p, err := minionboard.NewPoller(cfg.StatsURL, PollOptions(cfg)...)
	if err != nil {
		t.Fatalf("NewPoller() error = %v", err)
	}

	if p.Interval() != 5*time.Second {
		t.Errorf("Interval() = %v, want 5s", p.Interval())
	}
	if p.Timeout() != 2*time.Second {
		t.Errorf("Timeout() = %v, want 2s", p.Timeout())
	}
	headers := p.Headers()
	if headers["Authorization"] != "Bearer token" {
		t.Errorf("Headers()[Authorization] = %q, want %q", headers["Authorization"], "Bearer token")
	}
	if headers["X-Custom"] != "value" {
		t.Errorf("Headers()[X-Custom] = %q, want %q", headers["X-Custom"], "value")
	}
}

func TestPollOptions_DefaultTimeout(t *testing.T) {
	cfg, err := Parse([]byte("stats_url: http://localhost:3000/minion/stats"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	p, err := minionboard.NewPoller(cfg.StatsURL, PollOptions(cfg)...)
	if err != nil {
		t.Fatalf("NewPoller() error = %v", err)
	}
	if p.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want SDK default 10s", p.Timeout())
	}
	if p.Interval() != 3*time.Second {
		t.Errorf("Interval() = %v, want 3s", p.Interval())
	}
}

func TestBoardOptions(t *testing.T) {
	cfg, err := Parse([]byte(`
title: Jobs
port: 9191
stats_url: http://localhost:3000/minion/stats
poll_interval: 10s
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	b, err := minionboard.New(BoardOptions(cfg)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if b.Title() != "Jobs" {
		t.Errorf("Title() = %q, want %q", b.Title(), "Jobs")
	}
	if b.Port() != 9191 {
		t.Errorf("Port() = %d, want 9191", b.Port())
	}
	if b.Poller().Interval() != 10*time.Second {
		t.Errorf("Poller().Interval() = %v, want 10s", b.Poller().Interval())
	}
	if b.Poller().URL() != "http://localhost:3000/minion/stats" {
		t.Errorf("Poller().URL() = %q", b.Poller().URL())
	}
}

func TestMapToKeyValuePairs_DeterministicOrder(t *testing.T) {
	m := map[string]string{"b": "2", "c": "3", "a": "1"}
	want := []string{"a", "1", "b", "2", "c", "3"}

	// run several times since map iteration order is random
	for i := 0; i < 10; i++ {
		if got := mapToKeyValuePairs(m); !reflect.DeepEqual(got, want) {
			t.Fatalf("mapToKeyValuePairs() = %v, want %v", got, want)
		}
	}
}
