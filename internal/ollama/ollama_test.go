// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello")

	if msg.Role != "user" {
		t.Errorf("Role = %q, want 'user'", msg.Role)
	}

	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want 'Hello'", msg.Content)
	}
}

func TestNewAssistantMessage(t *testing.T) {
	msg := NewAssistantMessage("Response")

	if msg.Role != "assistant" {
		t.Errorf("Role = %q, want 'assistant'", msg.Role)
	}
}

// =============================================================================
// CHAT RESPONSE TESTS
// =============================================================================

func TestChatResponse_TokensPerSecond(t *testing.T) {
	tests := []struct {
		name         string
		evalCount    int
		evalDuration int64
		want         float64
	}{
		{"normal", 100, int64(time.Second), 100.0},
		{"zero duration", 100, 0, 0.0},
		{"fast", 1000, int64(100 * time.Millisecond), 10000.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := &ChatResponse{EvalCount: tc.evalCount, EvalDuration: tc.evalDuration}
			if got := resp.TokensPerSecond(); got != tc.want {
				t.Errorf("TokensPerSecond() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestChatResponse_Content(t *testing.T) {
	var nilResp *ChatResponse
	if nilResp.Content() != "" {
		t.Error("nil response should have empty content")
	}
	if (&ChatResponse{}).Content() != "" {
		t.Error("response without message should have empty content")
	}
	resp := &ChatResponse{Message: &Message{Role: "assistant", Content: "hi"}}
	if resp.Content() != "hi" {
		t.Errorf("Content() = %q, want hi", resp.Content())
	}
}

// =============================================================================
// CLIENT TESTS
// =============================================================================

func newTestClient(url string) *Client {
	return NewClientWithConfig(&ClientConfig{APIURL: url + "/api/chat", Model: "mistral"})
}

func TestNewClientWithConfig_Defaults(t *testing.T) {
	c := NewClientWithConfig(nil)
	if c.APIURL() != DefaultAPIURL {
		t.Errorf("APIURL() = %q, want %q", c.APIURL(), DefaultAPIURL)
	}
	if c.Model() != DefaultModel {
		t.Errorf("Model() = %q, want %q", c.Model(), DefaultModel)
	}
}

func TestClient_Chat_Success(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"model":"mistral","message":{"role":"assistant","content":"hello"},"done":true}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Chat(context.Background(), []Message{NewUserMessage("hi")})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Content() != "hello" {
		t.Errorf("Content() = %q, want hello", resp.Content())
	}
	if got.Model != "mistral" || got.Stream {
		t.Errorf("request model=%q stream=%v, want mistral false", got.Model, got.Stream)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "hi" {
		t.Errorf("request messages = %+v", got.Messages)
	}
}

func TestClient_Chat_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantMsg  string
	}{
		{"service unavailable", http.StatusServiceUnavailable, "", KindUpstreamError, "chat request failed: 503 Service Unavailable"},
		{"model not found", http.StatusNotFound, `{"error":"model 'mistral' not found"}`, KindUpstreamError, "model 'mistral' not found"},
		{"invalid json", http.StatusOK, `{"message":`, KindMalformedResponse, ""},
		{"missing message", http.StatusOK, `{"done":true}`, KindMalformedResponse, "response has no message"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Chat(context.Background(), []Message{NewUserMessage("hi")})
			if err == nil {
				t.Fatal("Chat() should fail")
			}

			var ce *ClientError
			if !errors.As(err, &ce) {
				t.Fatalf("error %T is not *ClientError", err)
			}
			if ce.Kind != tc.wantKind {
				t.Errorf("Kind = %s, want %s", ce.Kind, tc.wantKind)
			}
			if tc.wantKind == KindUpstreamError && ce.Status != tc.status {
				t.Errorf("Status = %d, want %d", ce.Status, tc.status)
			}
			if tc.wantMsg != "" && ce.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", ce.Message, tc.wantMsg)
			}
		})
	}
}

func TestClient_Chat_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Chat(context.Background(), []Message{NewUserMessage("hi")})
	if !IsNetworkFailure(err) {
		t.Errorf("expected network failure, got %v (kind %s)", err, KindOf(err))
	}
}

func TestClient_CheckRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("CheckRunning hit %q, want /", r.URL.Path)
		}
		_, _ = w.Write([]byte("Ollama is running"))
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).CheckRunning(context.Background()); err != nil {
		t.Errorf("CheckRunning() error = %v", err)
	}

	srv.Close()
	if err := newTestClient(srv.URL).CheckRunning(context.Background()); !IsNetworkFailure(err) {
		t.Errorf("CheckRunning() on closed server = %v, want network failure", err)
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := map[ErrorKind]string{
		KindNetworkFailure:    "network_failure",
		KindUpstreamError:     "upstream_error",
		KindMalformedResponse: "malformed_response",
		ErrorKind(0):          "unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("KindOf(plain error) should be 0")
	}
}
