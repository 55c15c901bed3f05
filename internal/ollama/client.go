// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Defaults match a stock local Ollama install.
const (
	DefaultAPIURL = "http://localhost:11434/api/chat"
	DefaultModel  = "mistral"
)

// maxErrorBody caps how much of a failed response is read for diagnostics.
const maxErrorBody = 64 * 1024

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind tags why a call to the model server failed.
type ErrorKind int

const (
	// KindNetworkFailure means the server could not be reached or the
	// connection broke before a response was read.
	KindNetworkFailure ErrorKind = iota + 1
	// KindUpstreamError means the server answered with a non-2xx status.
	KindUpstreamError
	// KindMalformedResponse means a 2xx body could not be parsed or had no message.
	KindMalformedResponse
)

// String returns the log name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNetworkFailure:
		return "network_failure"
	case KindUpstreamError:
		return "upstream_error"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// ClientError represents an error from the Ollama client.
type ClientError struct {
	Kind    ErrorKind
	Status  int // HTTP status for KindUpstreamError, else 0
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of err, or 0 when err is not a *ClientError.
func KindOf(err error) ErrorKind {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

// IsNetworkFailure reports whether err means the model server was unreachable.
func IsNetworkFailure(err error) bool {
	return KindOf(err) == KindNetworkFailure
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// APIURL is the full chat endpoint (default: http://localhost:11434/api/chat).
	APIURL string

	// Model sent with every request (default: "mistral").
	Model string

	// Timeout for a whole request. Zero means no deadline beyond the
	// caller's context, which is the default: local generation can be slow.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		APIURL: DefaultAPIURL,
		Model:  DefaultModel,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends non-streamed chat requests to an Ollama server.
//
// The Client holds no per-request state and is safe for concurrent use.
//
// Example:
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{Model: "mistral"})
//	resp, err := client.Chat(ctx, []ollama.Message{ollama.NewUserMessage("hi")})
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Ollama client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Ollama client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	cfg := ClientConfig{}
	if config != nil {
		cfg = *config
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Model returns the model name sent with requests.
func (c *Client) Model() string {
	return c.config.Model
}

// APIURL returns the chat endpoint.
func (c *Client) APIURL() string {
	return c.config.APIURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that the Ollama server answering APIURL is reachable.
// It requests the server root, which Ollama answers with "Ollama is running".
func (c *Client) CheckRunning(ctx context.Context) error {
	root, err := rootURL(c.config.APIURL)
	if err != nil {
		return &ClientError{Kind: KindNetworkFailure, Message: "invalid Ollama URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root, nil)
	if err != nil {
		return &ClientError{Kind: KindNetworkFailure, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Kind: KindNetworkFailure, Message: "Ollama is not reachable", Cause: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ClientError{
			Kind:    KindUpstreamError,
			Status:  resp.StatusCode,
			Message: "unexpected status from Ollama: " + resp.Status,
		}
	}

	return nil
}

func rootURL(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("missing scheme or host in %q", apiURL)
	}
	return u.Scheme + "://" + u.Host + "/", nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// Chat sends the history with stream disabled and returns the complete response.
// Every failure is a *ClientError. There is no retry.
func (c *Client) Chat(ctx context.Context, messages []Message) (*ChatResponse, error) {
	reqBody := ChatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Stream:   false,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Kind: KindMalformedResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Kind: KindNetworkFailure, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Kind: KindNetworkFailure, Message: "chat request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Try to read error message
		msg := "chat request failed: " + resp.Status
		var ollamaErr OllamaError
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&ollamaErr); err == nil && ollamaErr.Error != "" {
			msg = ollamaErr.Error
		}
		return nil, &ClientError{
			Kind:    KindUpstreamError,
			Status:  resp.StatusCode,
			Message: msg,
		}
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Kind: KindMalformedResponse, Message: "failed to decode response", Cause: err}
	}
	if result.Message == nil {
		return nil, &ClientError{Kind: KindMalformedResponse, Message: "response has no message"}
	}

	return &result, nil
}
