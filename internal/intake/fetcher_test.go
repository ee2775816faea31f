package intake

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchNotes_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/notes/extract" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req fetchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.URLs) != 2 {
			t.Errorf("expected 2 urls, got %d", len(req.URLs))
		}

		json.NewEncoder(w).Encode(fetchResponse{Notes: []Note{
			{URL: req.URLs[0], Title: "first", Content: "body one"},
			{URL: req.URLs[1], Title: "second", Content: "body two"},
		}})
	}))
	defer server.Close()

	f := NewHTTPFetcher(server.URL, discardLogger())

	notes, err := f.FetchNotes(context.Background(), []string{"https://a.example/1", "https://a.example/2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Title != "first" || notes[1].Content != "body two" {
		t.Errorf("unexpected notes: %+v", notes)
	}
}

func TestFetchNotes_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "scraper exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	f := NewHTTPFetcher(server.URL, discardLogger())

	_, err := f.FetchNotes(context.Background(), []string{"https://a.example/1"})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502 carried, got %d", upstream.StatusCode)
	}
}

func TestFetchNotes_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	f := NewHTTPFetcher(server.URL, discardLogger())

	_, err := f.FetchNotes(context.Background(), []string{"https://a.example/1"})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	if upstream.StatusCode != 0 {
		t.Errorf("expected zero status for a failed request, got %d", upstream.StatusCode)
	}
}
