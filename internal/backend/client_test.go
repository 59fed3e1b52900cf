package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yildizm/scrollmark/internal/config"
	"github.com/yildizm/scrollmark/internal/metrics"
)

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../metrics/testdata/analysis.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func newClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c, err := New(config.BackendConfig{Endpoint: endpoint, Timeout: 5 * time.Second}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.BackendConfig
		wantErr bool
	}{
		{"default endpoint", config.BackendConfig{Endpoint: "http://localhost:5000/analyze"}, false},
		{"https", config.BackendConfig{Endpoint: "https://analysis.example.com/analyze"}, false},
		{"empty", config.BackendConfig{}, true},
		{"bad scheme", config.BackendConfig{Endpoint: "file:///tmp/x"}, true},
		{"negative timeout", config.BackendConfig{Endpoint: "http://localhost:5000/analyze", Timeout: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyzeSendsExactlyOneRequest(t *testing.T) {
	const csv = "media_id,timestamp,media_caption,comment_text\n1,2025-06-01 10:00:00,Launch,Love it\n"
	body := fixture(t)
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got '%s'", r.Method)
		}
		if r.URL.Path != "/analyze" {
			t.Errorf("Expected path '/analyze', got '%s'", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected Content-Type application/json, got '%s'", ct)
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			t.Fatalf("body is not JSON: %v", err)
		}
		if len(fields) != 1 {
			t.Errorf("Expected exactly one field in body, got %v", fields)
		}
		if fields["csv_data"] != csv {
			t.Errorf("csv_data mismatch: %q", fields["csv_data"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer server.Close()

	result, err := newClient(t, server.URL+"/analyze").Analyze(context.Background(), csv)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Engagement == nil || result.Virality == nil {
		t.Fatal("expected a complete result")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected exactly 1 request, got %d", got)
	}
}

func TestAnalyzeServiceFailures(t *testing.T) {
	full := fixture(t)
	var partial map[string]json.RawMessage
	if err := json.Unmarshal(full, &partial); err != nil {
		t.Fatal(err)
	}
	delete(partial, "advocate_identification")
	partialBody, _ := json.Marshal(partial)

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"internal server error", http.StatusInternalServerError, "boom", 500, "request failed with status 500"},
		{"error body", http.StatusBadRequest, `{"error": "No CSV data provided"}`, 400, "No CSV data provided"},
		{"malformed json", http.StatusOK, `{"engagement_metrics": `, 0, "unusable response"},
		{"missing domain", http.StatusOK, string(partialBody), 0, "unusable response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			result, err := newClient(t, server.URL).Analyze(context.Background(), "a,b\n1,2\n")
			if result != nil {
				t.Fatal("failed attempt must not return a result")
			}
			if !IsService(err) || IsTransport(err) {
				t.Fatalf("Expected service error, got %v", err)
			}
			var be *Error
			if !errors.As(err, &be) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if be.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, be.StatusCode)
			}
			if !strings.Contains(be.Message, tt.wantMsg) {
				t.Errorf("Expected message containing %q, got %q", tt.wantMsg, be.Message)
			}
		})
	}
}

func TestAnalyzeMissingDomainWrapsCause(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).Analyze(context.Background(), "x")
	if !errors.Is(err, metrics.ErrIncomplete) {
		t.Errorf("Expected metrics.ErrIncomplete in chain, got %v", err)
	}
}

func TestAnalyzeTransportFailure(t *testing.T) {
	// grab a free port and close it so the dial is refused
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	_, err = newClient(t, "http://"+addr+"/analyze").Analyze(context.Background(), "x")
	if !IsTransport(err) || IsService(err) {
		t.Fatalf("Expected transport error, got %v", err)
	}
}

func TestAnalyzeTimeoutIsTransport(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	c, err := New(config.BackendConfig{Endpoint: server.URL, Timeout: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Analyze(context.Background(), "x"); !IsTransport(err) {
		t.Errorf("Expected transport error on timeout, got %v", err)
	}
}

func TestErrorString(t *testing.T) {
	err := newServiceError("http://x", 500, "request failed with status 500", nil)
	if got := err.Error(); got != "analysis service error: status=500: request failed with status 500" {
		t.Errorf("unexpected error string: %q", got)
	}
}
