package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abiggs624/cavern/pkg/chat"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewGeminiService(t *testing.T) {
	service := NewGeminiService("test-api-key", "gemini-2.0-flash", "", 60*time.Second, testLogger())

	if service.apiKey != "test-api-key" {
		t.Errorf("Expected apiKey %s, got %s", "test-api-key", service.apiKey)
	}
	if service.modelName != "gemini-2.0-flash" {
		t.Errorf("Expected modelName %s, got %s", "gemini-2.0-flash", service.modelName)
	}
	if service.baseURL != DefaultGeminiBaseURL {
		t.Errorf("Expected default base URL, got %s", service.baseURL)
	}
	if service.httpClient == nil {
		t.Error("Expected httpClient to be initialized")
	}
}

func TestGeminiService_Narrate_RequestShape(t *testing.T) {
	var gotPath string
	var gotKey string
	var gotReq geminiGenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "You wake in a cave."}},
				}},
			},
		})
	}))
	defer server.Close()

	service := NewGeminiService("secret-key", "gemini-2.0-flash", server.URL, 5*time.Second, testLogger())

	history := []chat.Turn{
		{Role: chat.RoleUser, Text: "You are the narrator."},
		{Role: chat.RoleModel, Text: "You wake in a cave."},
		{Role: chat.RoleUser, Text: "look around"},
	}

	text, err := service.Narrate(context.Background(), history)
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if text != "You wake in a cave." {
		t.Errorf("Expected narration text, got %q", text)
	}

	if gotPath != "/gemini-2.0-flash:generateContent" {
		t.Errorf("Unexpected request path: %s", gotPath)
	}
	if gotKey != "secret-key" {
		t.Errorf("Expected credential as query parameter, got %q", gotKey)
	}

	if len(gotReq.Contents) != 3 {
		t.Fatalf("Expected 3 contents, got %d", len(gotReq.Contents))
	}
	for i, turn := range history {
		if gotReq.Contents[i].Role != turn.Role {
			t.Errorf("Content %d: expected role %q, got %q", i, turn.Role, gotReq.Contents[i].Role)
		}
		if len(gotReq.Contents[i].Parts) != 1 || gotReq.Contents[i].Parts[0].Text != turn.Text {
			t.Errorf("Content %d: expected single part %q, got %+v", i, turn.Text, gotReq.Contents[i].Parts)
		}
	}

	if len(gotReq.SafetySettings) != 4 {
		t.Fatalf("Expected 4 safety settings, got %d", len(gotReq.SafetySettings))
	}
	for _, s := range gotReq.SafetySettings {
		if s.Threshold != "BLOCK_MEDIUM_AND_ABOVE" {
			t.Errorf("Category %s: expected BLOCK_MEDIUM_AND_ABOVE, got %s", s.Category, s.Threshold)
		}
	}
}

func TestGeminiService_Narrate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"code":403,"message":"forbidden"}}`, http.StatusForbidden)
			},
		},
		{
			name: "unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "error payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`))
			},
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
		},
		{
			name: "candidate without parts",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
			},
		},
		{
			name: "empty text field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			service := NewGeminiService("key", "gemini-2.0-flash", server.URL, 5*time.Second, testLogger())
			history := []chat.Turn{{Role: chat.RoleUser, Text: "look"}}

			if _, err := service.Narrate(context.Background(), history); err == nil {
				t.Error("Expected an error, got none")
			}
		})
	}
}

func TestGeminiService_Narrate_TransportError(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	service := NewGeminiService("key", "gemini-2.0-flash", server.URL, time.Second, testLogger())
	if _, err := service.Narrate(context.Background(), []chat.Turn{{Role: chat.RoleUser, Text: "look"}}); err == nil {
		t.Error("Expected a transport error, got none")
	}
}
