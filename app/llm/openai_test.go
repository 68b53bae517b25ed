package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClient_Complete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"analysis text"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key", "test-model", nil)

	text, err := client.Complete(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "analysis text" {
		t.Errorf("Expected choice content, got %q", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotBody["model"] != "test-model" {
		t.Errorf("Expected model in request, got %v", gotBody["model"])
	}

	messages, ok := gotBody["messages"].([]interface{})
	if !ok || len(messages) != 1 {
		t.Fatalf("Expected one message, got %v", gotBody["messages"])
	}
	message := messages[0].(map[string]interface{})
	if message["role"] != "user" || message["content"] != "the prompt" {
		t.Errorf("Unexpected message: %v", message)
	}
}

func TestOpenAIClient_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "bad-key", "test-model", nil)

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Errorf("Expected error for non-200 status")
	}
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "key", "model", nil)

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Errorf("Expected error for empty choices")
	}
}
