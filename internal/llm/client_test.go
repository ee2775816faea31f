package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInvoke_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", r.Header.Get("Content-Type"))
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "analyze this" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		if len(req.Tools) != 1 || req.Tools[0].Function.Name != "analyze_style" {
			t.Errorf("unexpected tools: %+v", req.Tools)
		}
		if req.ToolChoice == nil || req.ToolChoice.Function.Name != "analyze_style" {
			t.Errorf("expected forced tool choice, got %+v", req.ToolChoice)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "StyleAnalyzer: []"}, "finish_reason": "tool_calls"},
			},
		})
	}))
	defer server.Close()

	c := NewClient("https://unused", "test-key", "test-model")
	c.SetTestTransport(server.URL)

	result, err := c.Invoke(context.Background(), "you are a test", "analyze this", Tool{Name: "analyze_style"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "StyleAnalyzer: []" {
		t.Errorf("expected reply text, got %q", result)
	}
}

func TestInvoke_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "rate_limit_error",
				"message": "slow down",
			},
		})
	}))
	defer server.Close()

	c := NewClient("https://unused", "test-key", "test-model")
	c.SetTestTransport(server.URL)

	_, err := c.Invoke(context.Background(), "", "hi", Tool{Name: "analyze_style"})
	if err == nil {
		t.Fatal("expected error for API error response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", apiErr.StatusCode)
	}
	if apiErr.Type != "rate_limit_error" {
		t.Errorf("expected rate_limit_error, got %q", apiErr.Type)
	}
	if got := apiErr.Error(); got != "llm api error 429 (rate_limit_error): slow down" {
		t.Errorf("unexpected error text %q", got)
	}
}

func TestInvoke_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	c := NewClient("https://unused", "test-key", "test-model")
	c.SetTestTransport(server.URL)

	_, err := c.Invoke(context.Background(), "", "hi", Tool{Name: "analyze_style"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}
