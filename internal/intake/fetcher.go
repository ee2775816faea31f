package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Note is one fetched post: url it came from plus its title and body.
type Note struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Fetcher is the content-intake collaborator. Implementations own per-URL
// failure handling; an empty result means total failure.
type Fetcher interface {
	FetchNotes(ctx context.Context, urls []string) ([]Note, error)
}

// UpstreamError means the intake collaborator was unreachable or replied
// with a failure status. StatusCode is 0 when the request never completed.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("intake upstream error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("intake unreachable: %s", e.Message)
}

// HTTPFetcher calls the scraper sidecar over HTTP.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPFetcher(baseURL string, logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 90 * time.Second},
		logger:  logger,
	}
}

type fetchRequest struct {
	URLs []string `json:"urls"`
}

type fetchResponse struct {
	Notes []Note `json:"notes"`
}

func (f *HTTPFetcher) FetchNotes(ctx context.Context, urls []string) ([]Note, error) {
	body, err := json.Marshal(fetchRequest{URLs: urls})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/api/v1/notes/extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build intake request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var out fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse intake response: %w", err)
	}

	f.logger.Info("notes fetched", "requested", len(urls), "returned", len(out.Notes))
	return out.Notes, nil
}
