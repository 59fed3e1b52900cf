package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yildizm/scrollmark/internal/config"
	"github.com/yildizm/scrollmark/internal/logger"
	"github.com/yildizm/scrollmark/internal/metrics"
)

// AnalyzeRequest is the only body the analysis service accepts
type AnalyzeRequest struct {
	CSVData string `json:"csv_data"`
}

// ErrorResponse is what the service sends alongside a non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
}

// Client posts CSV text to the analysis service. It never retries.
type Client struct {
	endpoint *url.URL
	client   *http.Client
	log      *logger.Logger
}

// New creates a client for cfg.Endpoint. A nil logger discards output.
func New(cfg config.BackendConfig, log *logger.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("backend endpoint is required")
	}
	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid backend endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend endpoint scheme %q", endpoint.Scheme)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("backend timeout must be non-negative")
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log.WithComponent("backend"),
	}, nil
}

// Endpoint returns the URL requests are sent to
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Analyze sends one POST with {"csv_data": csvData} and returns the decoded
// result. Every failure is a *Error of KindTransport or KindService.
func (c *Client) Analyze(ctx context.Context, csvData string) (*metrics.Result, error) {
	endpoint := c.endpoint.String()

	jsonData, err := json.Marshal(&AnalyzeRequest{CSVData: csvData})
	if err != nil {
		return nil, newTransportError(endpoint, "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, newTransportError(endpoint, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	c.log.DebugWithFields("posting csv", []logger.Field{logger.F("endpoint", endpoint), logger.F("bytes", len(csvData))})

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, newTransportError(endpoint, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(endpoint, "failed to read response", err)
	}

	c.log.DebugWithFields("response received", []logger.Field{
		logger.F("status", resp.StatusCode),
		logger.F("bytes", len(body)),
		logger.Duration(time.Since(start)),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Error != "" {
			return nil, newServiceError(endpoint, resp.StatusCode, errorResp.Error, nil)
		}
		return nil, newServiceError(endpoint, resp.StatusCode,
			fmt.Sprintf("request failed with status %d", resp.StatusCode), nil)
	}

	result, err := metrics.Decode(body)
	if err != nil {
		return nil, newServiceError(endpoint, 0, "unusable response", err)
	}

	return result, nil
}
