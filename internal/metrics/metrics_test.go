package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_ObserveCycle(t *testing.T) {
	m := New()
	at := time.Unix(1700000000, 0)

	m.ObserveCycle(true, 20*time.Millisecond, at)
	m.ObserveCycle(false, time.Second, at.Add(time.Minute))
	m.ObserveCycle(false, time.Second, at.Add(2*time.Minute))

	if got := testutil.ToFloat64(m.cycles.WithLabelValues(ResultSuccess)); got != 1 {
		t.Errorf("success cycles = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cycles.WithLabelValues(ResultFailure)); got != 2 {
		t.Errorf("failure cycles = %v, want 2", got)
	}
	// failures do not move the last success timestamp
	if got := testutil.ToFloat64(m.lastSuccess); got != 1700000000 {
		t.Errorf("last success = %v, want 1700000000", got)
	}
}

func TestMetrics_SetCount(t *testing.T) {
	m := New()

	m.SetCount("active_jobs", 3)
	m.SetCount("active_jobs", 5)
	m.SetCount("failed_jobs", 0)

	if got := testutil.ToFloat64(m.stats.WithLabelValues("active_jobs")); got != 5 {
		t.Errorf("active_jobs = %v, want 5", got)
	}
	if got := testutil.ToFloat64(m.stats.WithLabelValues("failed_jobs")); got != 0 {
		t.Errorf("failed_jobs = %v, want 0", got)
	}
}

func TestMetrics_ResetCounts(t *testing.T) {
	m := New()

	m.SetCount("active_jobs", 3)
	m.SetCount("active_locks", 2)
	m.ResetCounts()
	m.SetCount("active_jobs", 4)

	if n := testutil.CollectAndCount(m.stats); n != 1 {
		t.Errorf("stats series = %d, want 1 after reset", n)
	}
	if got := testutil.ToFloat64(m.stats.WithLabelValues("active_jobs")); got != 4 {
		t.Errorf("active_jobs = %v, want 4", got)
	}
}

func TestMetrics_SetUptime(t *testing.T) {
	m := New()
	m.SetUptime(86412.5)

	if got := testutil.ToFloat64(m.uptime); got != 86412.5 {
		t.Errorf("uptime = %v, want 86412.5", got)
	}
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// creating two instances must not panic on duplicate registration
	a := New()
	b := New()

	a.SetCount("active_jobs", 1)
	if n := testutil.CollectAndCount(b.stats); n != 0 {
		t.Errorf("second instance has %d stats series, want 0", n)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveCycle(true, 10*time.Millisecond, time.Now())
	m.SetCount("inactive_jobs", 7)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		`minionboard_poll_cycles_total{result="success"} 1`,
		`minionboard_stats{field="inactive_jobs"} 7`,
		"minionboard_fetch_duration_seconds_count 1",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
