package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yildizm/scrollmark/internal/config"
	"github.com/yildizm/scrollmark/internal/formatter"
	"github.com/yildizm/scrollmark/internal/logger"
	"github.com/yildizm/scrollmark/internal/metrics"
)

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../metrics/testdata/analysis.json")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// execute runs the root command with a throwaway config file
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(config.MinimalSampleConfig()), 0o600); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := NewRootCommand("dev", "none", "unknown")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--no-color"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posts.csv")
	if err := os.WriteFile(path, []byte("post_id,caption,comment\n1,Summer launch,love it\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "Scrollmark development (local-build)") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scrollmark.yaml")

	if _, _, err := execute(t, "config", "init", "--output", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := config.NewLoader().LoadConfig(path); err != nil {
		t.Errorf("generated config does not load: %v", err)
	}

	if _, _, err := execute(t, "config", "init", "--output", path); err == nil {
		t.Error("Expected an error when the file exists")
	}
	if _, _, err := execute(t, "config", "init", "--output", path, "--minimal", "--force"); err != nil {
		t.Errorf("Expected --force to overwrite: %v", err)
	}
}

func TestAnalyzeCommandWritesReport(t *testing.T) {
	var calls int32
	body := fixture(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !strings.Contains(req["csv_data"], "Summer launch") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer ts.Close()

	outFile := filepath.Join(t.TempDir(), "report.json")
	_, stderr, err := execute(t, "analyze", "--endpoint", ts.URL, "-o", "json", "--output-file", outFile, writeCSV(t))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected exactly one request, got %d", calls)
	}
	if !strings.Contains(stderr, "(simulated)") {
		t.Errorf("Expected simulated progress on stderr, got %q", stderr)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	var report map[string]json.RawMessage
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	for _, d := range metrics.Domains {
		if _, ok := report[string(d)]; !ok {
			t.Errorf("report missing %s", d)
		}
	}
}

func TestAnalyzeCommandServiceFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model offline"}`))
	}))
	defer ts.Close()

	_, _, err := execute(t, "analyze", "--endpoint", ts.URL, writeCSV(t))
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), "ensure the analysis service is running at "+ts.URL) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAnalyzeCommandValidation(t *testing.T) {
	txt := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(txt, []byte("hi"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"not csv", []string{"analyze", txt}, "only .csv files"},
		{"missing", []string{"analyze", filepath.Join(t.TempDir(), "gone.csv")}, "does not exist"},
		{"bad format", []string{"analyze", "-o", "yaml", writeCSV(t)}, "invalid flags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchLoopDebounces(t *testing.T) {
	result, err := metrics.Decode(fixture(t))
	if err != nil {
		t.Fatal(err)
	}

	var calls int32
	ran := make(chan struct{}, 10)
	analyze := func(ctx context.Context, path string) (*metrics.Result, error) {
		atomic.AddInt32(&calls, 1)
		ran <- struct{}{}
		return result, nil
	}

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	out := &syncBuffer{}
	path := filepath.Join("exports", "posts.csv")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatchLoop(ctx, events, errs, watchLoop{
			path:     path,
			debounce: 50 * time.Millisecond,
			analyze:  analyze,
			format:   formatter.NewJSON(),
			out:      out,
			log:      logger.Nop(),
		})
	}()

	for i := 0; i < 3; i++ {
		events <- fsnotify.Event{Name: path, Op: fsnotify.Write}
	}
	events <- fsnotify.Event{Name: filepath.Join("exports", "other.csv"), Op: fsnotify.Write}

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("analysis never ran")
	}
	time.Sleep(150 * time.Millisecond)
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("watch loop: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("Expected one debounced run, got %d", n)
	}
	if !strings.Contains(out.String(), "run 1 completed") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestIsWriteEvent(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "data/posts.csv", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "data/posts.csv", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "data/posts.csv", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "data/other.csv", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		if got := isWriteEvent(tt.event, "data/./posts.csv"); got != tt.want {
			t.Errorf("isWriteEvent(%v) = %v, want %v", tt.event, got, tt.want)
		}
	}
}
