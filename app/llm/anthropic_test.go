package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicClient_Complete(t *testing.T) {
	var gotKey, gotVersion string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"analysis text"}]}`))
	}))
	defer server.Close()

	client := NewAnthropicClient(server.URL, "test-key", "test-model", nil)

	text, err := client.Complete(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "analysis text" {
		t.Errorf("Expected content block text, got %q", text)
	}
	if gotKey != "test-key" {
		t.Errorf("Expected x-api-key header, got %q", gotKey)
	}
	if gotVersion == "" {
		t.Errorf("Expected anthropic-version header")
	}
}

func TestAnthropicClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before use: connection refused

	client := NewAnthropicClient(server.URL, "key", "model", nil)

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Errorf("Expected transport error")
	}
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	client := NewAnthropicClient(server.URL, "key", "model", nil)

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Errorf("Expected error for empty content blocks")
	}
}
