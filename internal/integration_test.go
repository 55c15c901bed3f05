// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package internal holds end-to-end tests that wire the real client, proxy
// and upstream client together against a fake model server.
package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/neuralchat/internal/model"
	"github.com/jeranaias/neuralchat/internal/ollama"
	"github.com/jeranaias/neuralchat/internal/server"
	"github.com/jeranaias/neuralchat/internal/session"
	"github.com/jeranaias/neuralchat/internal/transport"
)

// =============================================================================
// TEST UTILITIES
// =============================================================================

// fakeOllama answers /api/chat by echoing the last message, and records
// every request it sees.
type fakeOllama struct {
	mu       sync.Mutex
	requests []ollama.ChatRequest
	calls    atomic.Int64
	fail     bool
}

func (f *fakeOllama) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	if r.URL.Path == "/" {
		fmt.Fprint(w, "Ollama is running")
		return
	}

	var req ollama.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.fail {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"model 'mistral' not found"}`)
		return
	}

	last := req.Messages[len(req.Messages)-1]
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ollama.ChatResponse{
		Model:   req.Model,
		Message: &ollama.Message{Role: "assistant", Content: "echo: " + last.Content},
		Done:    true,
	})
}

// stack starts fake Ollama, the proxy in front of it, and returns a chat
// client pointed at the proxy.
func stack(t *testing.T, upstream *fakeOllama) *transport.Client {
	t.Helper()

	ollamaSrv := httptest.NewServer(upstream)
	t.Cleanup(ollamaSrv.Close)

	backend := ollama.NewClientWithConfig(&ollama.ClientConfig{
		APIURL: ollamaSrv.URL + "/api/chat",
		Model:  "mistral",
	})
	proxy := httptest.NewServer(server.NewServer(backend, server.Options{}).Handler())
	t.Cleanup(proxy.Close)

	return transport.NewClient(proxy.URL + "/api/chat")
}

// =============================================================================
// END-TO-END TESTS
// =============================================================================

func TestEndToEnd_ConversationRoundTrip(t *testing.T) {
	upstream := &fakeOllama{}
	client := stack(t, upstream)
	ctrl := session.NewController(model.NewConversation())

	ctrl.SetDraft("first question")
	sent, err := ctrl.Send(context.Background(), client)
	require.True(t, sent)
	require.NoError(t, err)

	ctrl.SetDraft("second question")
	_, err = ctrl.Send(context.Background(), client)
	require.NoError(t, err)

	msgs := ctrl.Conversation().Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "echo: first question", msgs[1].Content())
	assert.Equal(t, "echo: second question", msgs[3].Content())
	assert.Equal(t, session.StateIdle, ctrl.State())

	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	require.Len(t, upstream.requests, 2)

	second := upstream.requests[1]
	assert.Equal(t, "mistral", second.Model)
	assert.False(t, second.Stream, "upstream calls are never streamed")
	require.Len(t, second.Messages, 3, "the full history is forwarded")
	assert.Equal(t, "user", second.Messages[0].Role)
	assert.Equal(t, "assistant", second.Messages[1].Role)
	assert.Equal(t, "second question", second.Messages[2].Content)
}

func TestEndToEnd_UpstreamFailureBecomesErrorReply(t *testing.T) {
	client := stack(t, &fakeOllama{fail: true})
	ctrl := session.NewController(model.NewConversation())

	ctrl.SetDraft("hello")
	_, err := ctrl.Send(context.Background(), client)

	var failed *transport.RequestFailed
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusInternalServerError, failed.Status)
	assert.Equal(t, server.UpstreamErrorMessage, failed.Message, "upstream detail stays in the proxy log")

	last, ok := ctrl.Conversation().Last()
	require.True(t, ok)
	assert.Equal(t, model.RoleAssistant, last.Role())
	assert.Equal(t, session.ErrorReply, last.Content())
	assert.Equal(t, session.StateIdle, ctrl.State())
}

func TestEndToEnd_OllamaDown(t *testing.T) {
	backend := ollama.NewClientWithConfig(&ollama.ClientConfig{APIURL: "http://127.0.0.1:1/api/chat"})
	proxy := httptest.NewServer(server.NewServer(backend, server.Options{}).Handler())
	defer proxy.Close()

	ctrl := session.NewController(model.NewConversation())
	ctrl.SetDraft("anyone there?")
	_, err := ctrl.Send(context.Background(), transport.NewClient(proxy.URL+"/api/chat"))
	require.Error(t, err)

	last, _ := ctrl.Conversation().Last()
	assert.Equal(t, session.ErrorReply, last.Content())
}

// =============================================================================
// CONCURRENCY TESTS
// =============================================================================

// Each session is single-flight, but the proxy serves many sessions at once.
func TestConcurrency_IndependentSessions(t *testing.T) {
	upstream := &fakeOllama{}
	client := stack(t, upstream)

	const sessions = 20
	var wg sync.WaitGroup
	errs := make(chan error, sessions)

	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ctrl := session.NewController(model.NewConversation())
			ctrl.SetDraft(fmt.Sprintf("session %d", id))
			if _, err := ctrl.Send(context.Background(), client); err != nil {
				errs <- err
				return
			}
			last, _ := ctrl.Conversation().Last()
			if want := fmt.Sprintf("echo: session %d", id); last.Content() != want {
				errs <- fmt.Errorf("session %d got %q", id, last.Content())
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	assert.Equal(t, int64(sessions), upstream.calls.Load())
}
