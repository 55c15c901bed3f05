// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transport sends a conversation to the chat proxy and returns the reply.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeranaias/neuralchat/internal/model"
)

// Configuration constants for the chat endpoint.
const (
	// DefaultEndpoint is the proxy chat route served by `neuralchat serve`.
	DefaultEndpoint = "http://127.0.0.1:3000/api/chat"

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024

	// fallbackMessage is used when a failed response carries no message.
	fallbackMessage = "Failed to get response"

	// malformedMessage is used when a 2xx body has no reply string.
	malformedMessage = "malformed response from chat endpoint"
)

// ErrEmptyHistory is returned by Send when there is nothing to send.
var ErrEmptyHistory = errors.New("history must contain at least one message")

// =============================================================================
// ERROR TYPES
// =============================================================================

// RequestFailed is returned for every failed send.
// Status is the HTTP status, or 0 when no response was received.
type RequestFailed struct {
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RequestFailed) Error() string {
	if e.Status == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("request failed: %s: %v", e.Message, e.Cause)
		}
		return "request failed: " + e.Message
	}
	return fmt.Sprintf("request failed (HTTP %d): %s", e.Status, e.Message)
}

func (e *RequestFailed) Unwrap() error {
	return e.Cause
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// wireMessage is a message on the wire. The local ID is not sent.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []wireMessage `json:"messages"`
}

// chatResponse covers both success and error bodies.
type chatResponse struct {
	Message *string `json:"message"`
	Error   string  `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client posts conversation history to the chat proxy.
// It is safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a deadline for each Send. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// NewClient creates a client for the given chat endpoint URL.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the chat URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts history and returns the assistant reply.
// Any failure is a *RequestFailed, except ErrEmptyHistory.
func (c *Client) Send(ctx context.Context, history []model.Message) (string, error) {
	if len(history) == 0 {
		return "", ErrEmptyHistory
	}

	reqBody := chatRequest{Messages: make([]wireMessage, len(history))}
	for i, msg := range history {
		reqBody.Messages[i] = wireMessage{Role: msg.Role().String(), Content: msg.Content()}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &RequestFailed{Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &RequestFailed{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestFailed{Message: "could not reach chat endpoint", Cause: err}
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return "", &RequestFailed{Status: resp.StatusCode, Message: fallbackMessage, Cause: err}
	}

	var parsed chatResponse
	parseErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RequestFailed{Status: resp.StatusCode, Message: errorMessage(parsed, parseErr)}
	}

	if parseErr != nil {
		return "", &RequestFailed{Status: resp.StatusCode, Message: malformedMessage, Cause: parseErr}
	}
	if parsed.Message == nil {
		return "", &RequestFailed{Status: resp.StatusCode, Message: malformedMessage}
	}

	return *parsed.Message, nil
}

// errorMessage picks the most specific message from a failed response body.
func errorMessage(parsed chatResponse, parseErr error) string {
	if parseErr != nil {
		return fallbackMessage
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	if parsed.Message != nil && *parsed.Message != "" {
		return *parsed.Message
	}
	return fallbackMessage
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}
