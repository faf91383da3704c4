package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and returns captured stdout.
// Flags are reset first since the command tree is shared between tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeConfig writes content to a temp config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version command error = %v", err)
	}
	if !strings.Contains(out, "minionboard dev") {
		t.Errorf("output = %q, want version line", out)
	}
}

func TestStats_Table(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"active_jobs":1234,"active_workers":2,"inactive_workers":2}`))
	}))
	defer ts.Close()

	out, err := execute(t, "stats", "--url", ts.URL)
	if err != nil {
		t.Fatalf("stats command error = %v", err)
	}
	for _, want := range []string{"Active jobs", "1,234", "Workers", "updated"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\nGot: %s", want, out)
		}
	}
}

func TestStats_JSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"failed_jobs":3,"active_workers":1,"inactive_workers":0}`))
	}))
	defer ts.Close()

	out, err := execute(t, "stats", "--url", ts.URL, "--json")
	if err != nil {
		t.Fatalf("stats command error = %v", err)
	}
	for _, want := range []string{`"failed_jobs": 3`, `"workers": 1`, `"latency_ms"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\nGot: %s", want, out)
		}
	}
	if strings.Contains(out, "active_locks") {
		t.Errorf("absent field should be omitted\nGot: %s", out)
	}
}

func TestStats_FetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := execute(t, "stats", "--url", ts.URL)
	if err == nil {
		t.Fatal("stats command expected error for 502, got nil")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should mention the status, got: %v", err)
	}
}

func TestStats_ConfigWithURLOverride(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Token") != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"finished_jobs":9}`))
	}))
	defer ts.Close()

	path := writeConfig(t, `
stats_url: http://unused.example.com/stats
headers:
  X-Token: abc
`)

	out, err := execute(t, "stats", "-c", path, "--url", ts.URL)
	if err != nil {
		t.Fatalf("stats command error = %v", err)
	}
	if !strings.Contains(out, "Finished jobs") {
		t.Errorf("output missing finished jobs row\nGot: %s", out)
	}
}

func TestStats_RequiresSource(t *testing.T) {
	_, err := execute(t, "stats")
	if err == nil {
		t.Fatal("stats command expected error without --config or --url, got nil")
	}
	if !strings.Contains(err.Error(), "--config or --url") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnvFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"active_locks":4}`))
	}))
	defer ts.Close()

	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("MINIONBOARD_TEST_URL="+ts.URL+"\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("MINIONBOARD_TEST_URL") })

	path := writeConfig(t, "stats_url: ${MINIONBOARD_TEST_URL}\n")

	out, err := execute(t, "stats", "--env-file", envPath, "-c", path)
	if err != nil {
		t.Fatalf("stats command error = %v", err)
	}
	if !strings.Contains(out, "Active locks") {
		t.Errorf("output missing active locks row\nGot: %s", out)
	}
}

func TestEnvFile_ExplicitMissing(t *testing.T) {
	_, err := execute(t, "stats", "--env-file", filepath.Join(t.TempDir(), "missing.env"), "--url", "http://localhost:1/stats")
	if err == nil {
		t.Fatal("expected error for missing explicit env file, got nil")
	}
	if !strings.Contains(err.Error(), "env file") {
		t.Errorf("unexpected error: %v", err)
	}
}
