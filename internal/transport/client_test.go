// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/neuralchat/internal/model"
)

func history(contents ...string) []model.Message {
	out := make([]model.Message, 0, len(contents))
	for i, c := range contents {
		if i%2 == 0 {
			out = append(out, model.NewUserMessage(c))
		} else {
			out = append(out, model.NewAssistantMessage(c))
		}
	}
	return out
}

func TestSend_Success(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &raw))
		_, _ = w.Write([]byte(`{"message":"hello"}`))
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL).Send(context.Background(), history("hi", "hey", "how are you"))
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)

	msgs, ok := raw["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 3)
	first := msgs[0].(map[string]any)
	assert.Equal(t, map[string]any{"role": "user", "content": "hi"}, first, "ids must not be sent")
	assert.Equal(t, "assistant", msgs[1].(map[string]any)["role"])
}

func TestSend_EmptyReplyIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":""}`))
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL).Send(context.Background(), history("hi"))
	require.NoError(t, err)
	assert.Equal(t, "", reply)
}

func TestSend_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"error field", 500, `{"error":"Failed to get response from Ollama"}`, 500, "Failed to get response from Ollama"},
		{"message field", 502, `{"message":"bad gateway"}`, 502, "bad gateway"},
		{"empty body", 500, ``, 500, fallbackMessage},
		{"html body", 404, `<html>not found</html>`, 404, fallbackMessage},
		{"success without message", 200, `{"other":1}`, 200, malformedMessage},
		{"success not json", 200, `hello`, 200, malformedMessage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Send(context.Background(), history("hi"))

			var rf *RequestFailed
			require.True(t, errors.As(err, &rf), "want *RequestFailed, got %T", err)
			assert.Equal(t, tc.wantStatus, rf.Status)
			assert.Equal(t, tc.wantMsg, rf.Message)
		})
	}
}

func TestSend_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Send(context.Background(), history("hi"))

	var rf *RequestFailed
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, 0, rf.Status)
	assert.Error(t, rf.Cause)
	assert.Contains(t, err.Error(), "could not reach chat endpoint")
}

func TestSend_EmptyHistory(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1").Send(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyHistory)
}

func TestSend_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, WithTimeout(50*time.Millisecond)).Send(context.Background(), history("hi"))

	var rf *RequestFailed
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, 0, rf.Status)
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	assert.Equal(t, DefaultEndpoint, NewClient("").Endpoint())
}

func TestRequestFailed_Error(t *testing.T) {
	assert.Equal(t, "request failed (HTTP 500): boom", (&RequestFailed{Status: 500, Message: "boom"}).Error())
	assert.Equal(t, "request failed: no route", (&RequestFailed{Message: "no route"}).Error())
}
