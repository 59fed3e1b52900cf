package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yildizm/scrollmark/internal/config"
	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/session"
	"github.com/yildizm/scrollmark/internal/virality"
)

type stubAnalyzer struct {
	result *metrics.Result
	err    error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, csv string) (*metrics.Result, error) {
	if !strings.Contains(csv, "post_id") {
		return nil, errors.New("unexpected body")
	}
	return s.result, s.err
}

func fixtureResult(t *testing.T) *metrics.Result {
	t.Helper()
	data, err := os.ReadFile("../metrics/testdata/analysis.json")
	if err != nil {
		t.Fatal(err)
	}
	r, err := metrics.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func newTestServer(t *testing.T, a session.Analyzer) (*Server, *session.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.Server.UploadDir = t.TempDir()
	cfg.Progress.Interval = time.Millisecond

	ctrl := session.NewController(a, session.NewSimulator(cfg.Progress))
	pred := virality.NewWithSource(config.ViralityConfig{MinScore: 60, MaxScore: 100}, rand.NewSource(1))
	return New(cfg, ctrl, pred, nil), ctrl
}

func do(t *testing.T, h http.Handler, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func uploadBody(t *testing.T, name, content string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes(), mw.FormDataContentType()
}

func upload(t *testing.T, h http.Handler, name string) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := uploadBody(t, name, "post_id,caption\n1,hello\n")
	return do(t, h, http.MethodPost, "/api/session/file", body, ct)
}

// wireSnapshot reads the status back by name
type wireSnapshot struct {
	Snapshot
	Status string `json:"status"`
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) wireSnapshot {
	t.Helper()
	var snap wireSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid snapshot %q: %v", w.Body.String(), err)
	}
	return snap
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})
	w := do(t, s.Handler(), http.MethodGet, "/api/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestInitialSession(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})
	w := do(t, s.Handler(), http.MethodGet, "/api/session", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"idle"`) {
		t.Errorf("Expected idle status, got %s", w.Body.String())
	}
	snap := decodeSnapshot(t, w)
	if snap.CanAnalyze || snap.Loaded {
		t.Errorf("Expected nothing to analyze, got %+v", snap)
	}
}

func TestUploadRejectsNonCSV(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})
	body, ct := uploadBody(t, "notes.txt", "hello")
	w := do(t, s.Handler(), http.MethodPost, "/api/session/file", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}

	w = do(t, s.Handler(), http.MethodPost, "/api/session/file", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without a file, got %d", w.Code)
	}
}

func TestAnalyzeWithoutFileConflicts(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})
	w := do(t, s.Handler(), http.MethodPost, "/api/session/analyze", nil, "")
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", w.Code)
	}
}

func TestAnalyzeFlow(t *testing.T) {
	s, ctrl := newTestServer(t, &stubAnalyzer{result: fixtureResult(t)})
	h := s.Handler()

	w := upload(t, h, "posts.csv")
	if w.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	snap := decodeSnapshot(t, w)
	// stored name carries a unique prefix
	if !snap.CanAnalyze || snap.File == nil || !strings.HasSuffix(snap.File.Name, "-posts.csv") {
		t.Fatalf("unexpected snapshot after upload: %+v", snap)
	}
	if _, err := os.Stat(snap.File.Path); err != nil {
		t.Errorf("Expected upload on disk: %v", err)
	}

	w = do(t, h, http.MethodPost, "/api/session/analyze", nil, "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("analyze: expected 202, got %d", w.Code)
	}
	ctrl.Wait()

	snap = decodeSnapshot(t, do(t, h, http.MethodGet, "/api/session", nil, ""))
	if snap.Status != session.StatusSucceeded.String() || snap.Progress != 100 || !snap.Loaded {
		t.Fatalf("Expected succeeded at 100, got %+v", snap)
	}

	w = do(t, h, http.MethodGet, "/api/session/result", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("result: expected 200, got %d", w.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	for _, d := range metrics.Domains {
		if _, ok := raw[string(d)]; !ok {
			t.Errorf("result missing %s", d)
		}
	}

	if w := do(t, h, http.MethodGet, "/api/session/result/sentiment", nil, ""); w.Code != http.StatusOK {
		t.Errorf("domain by slug: expected 200, got %d", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/api/session/result/"+string(metrics.DomainVirality), nil, ""); w.Code != http.StatusOK {
		t.Errorf("domain by key: expected 200, got %d", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/api/session/result/bogus", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown domain: expected 404, got %d", w.Code)
	}

	if w := upload(t, h, "other.csv"); w.Code != http.StatusConflict {
		t.Errorf("upload while loaded: expected 409, got %d", w.Code)
	}
	if w := do(t, h, http.MethodPost, "/api/session/analyze", nil, ""); w.Code != http.StatusConflict {
		t.Errorf("analyze while loaded: expected 409, got %d", w.Code)
	}

	if w := do(t, h, http.MethodDelete, "/api/session", nil, ""); w.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/api/session/result", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("result after reset: expected 404, got %d", w.Code)
	}
}

func TestAnalyzeFailure(t *testing.T) {
	s, ctrl := newTestServer(t, &stubAnalyzer{err: errors.New("connection refused")})
	h := s.Handler()

	upload(t, h, "posts.csv")
	do(t, h, http.MethodPost, "/api/session/analyze", nil, "")
	ctrl.Wait()

	snap := decodeSnapshot(t, do(t, h, http.MethodGet, "/api/session", nil, ""))
	if snap.Status != session.StatusFailed.String() || snap.Progress != 0 {
		t.Fatalf("Expected failed at 0, got %+v", snap)
	}
	if !strings.Contains(snap.Message, "http://localhost:5000/analyze") {
		t.Errorf("Expected endpoint in message, got %q", snap.Message)
	}
	if !snap.CanAnalyze {
		t.Error("Expected a failed session to be retryable")
	}
	if w := do(t, h, http.MethodGet, "/api/session/result", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after failure, got %d", w.Code)
	}
}

func TestPredict(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/api/virality/predict", []byte(`{"content":"  "}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty content: expected 400, got %d", w.Code)
	}

	w = do(t, h, http.MethodPost, "/api/virality/predict", []byte(`{"content":"New drop friday"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var pred virality.Prediction
	if err := json.Unmarshal(w.Body.Bytes(), &pred); err != nil {
		t.Fatal(err)
	}
	if pred.Score < 60 || pred.Score >= 100 || !pred.Simulated {
		t.Errorf("unexpected prediction %+v", pred)
	}
}

func TestEventsStream(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{result: fixtureResult(t)})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.hub.Run(ctx)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/session/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	read := func() map[string]any {
		t.Helper()
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var m map[string]any
		if err := json.Unmarshal(msg, &m); err != nil {
			t.Fatal(err)
		}
		return m
	}

	if first := read(); first["status"] != "idle" {
		t.Fatalf("Expected initial idle snapshot, got %v", first)
	}

	body, ct := uploadBody(t, "posts.csv", "post_id,caption\n1,hello\n")
	resp, err := http.Post(ts.URL+"/api/session/file", ct, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	resp, err = http.Post(ts.URL+"/api/session/analyze", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	for {
		m := read()
		if p, _ := m["progress"].(float64); p > 100 {
			t.Fatalf("progress out of range: %v", p)
		}
		if m["status"] == "succeeded" {
			if m["progress"] != float64(100) {
				t.Errorf("Expected 100 on success, got %v", m["progress"])
			}
			return
		}
	}
}

func TestUploadDirCreated(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})
	s.uploadDir = filepath.Join(t.TempDir(), "nested", "uploads")

	if w := upload(t, s.Handler(), "posts.csv"); w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil || len(entries) != 1 {
		t.Errorf("Expected one stored upload, got %v (%v)", entries, err)
	}
}

func TestUploadReplacesStoredCopy(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})
	h := s.Handler()

	for _, name := range []string{"first.csv", "second.csv"} {
		if w := upload(t, h, name); w.Code != http.StatusOK {
			t.Fatalf("upload %s: expected 200, got %d", name, w.Code)
		}
	}
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "-second.csv") {
		t.Errorf("Expected only the latest upload to be kept, got %v", entries)
	}

	if w := do(t, h, http.MethodDelete, "/api/session", nil, ""); w.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", w.Code)
	}
	entries, err = os.ReadDir(s.uploadDir)
	if err != nil || len(entries) != 0 {
		t.Errorf("Expected the upload dir to be empty after reset, got %v (%v)", entries, err)
	}
}

func TestHubEvictsSlowClient(t *testing.T) {
	s, ctrl := newTestServer(t, &stubAnalyzer{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.hub.Run(ctx)

	// room for the initial snapshot only, and never read until the end
	slow := &eventClient{send: make(chan []byte, 1)}
	s.hub.register <- slow
	fast := &eventClient{send: make(chan []byte, sendBuffer)}
	s.hub.register <- fast

	if _, err := ctrl.Select(filepath.Join(t.TempDir(), "posts.csv")); err != nil {
		t.Fatal(err)
	}

	// once the fast client sees the selection, the broadcast has happened
	deadline := time.After(2 * time.Second)
	for seen := false; !seen; {
		select {
		case msg := <-fast.send:
			seen = strings.Contains(string(msg), "posts.csv")
		case <-deadline:
			t.Fatal("selection was never broadcast")
		}
	}

	if _, ok := <-slow.send; !ok {
		t.Fatal("Expected the initial snapshot to stay buffered")
	}
	if _, ok := <-slow.send; ok {
		t.Error("Expected the slow client to be evicted")
	}
}
