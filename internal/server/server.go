// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the HTTP chat proxy in front of a local Ollama server.
//
// Endpoints:
//   - POST /api/chat   - Forward a conversation to the model and return the reply
//   - GET  /api/health - Health check including model server reachability
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jeranaias/neuralchat/internal/ollama"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the default listen address for the proxy.
	DefaultAddr = "127.0.0.1:3000"

	// MaxRequestBodySize is the maximum size for request body (1MB).
	MaxRequestBodySize = 1 * 1024 * 1024

	// UpstreamErrorMessage is returned to clients for every model server failure.
	UpstreamErrorMessage = "Failed to get response from Ollama. Make sure Ollama is running with: ollama serve"

	// healthCheckTimeout bounds the model server ping in GET /api/health.
	healthCheckTimeout = 2 * time.Second

	// Version is the server version.
	Version = "0.1.0"
)

// validRoles defines the set of acceptable message roles.
var validRoles = map[string]bool{
	"user":      true,
	"assistant": true,
	"system":    true,
}

// validateMessages checks that the history is non-empty and every role is known.
func validateMessages(messages []ChatMessage) error {
	if len(messages) == 0 {
		return errors.New("messages must not be empty")
	}
	for i, msg := range messages {
		if !validRoles[msg.Role] {
			return fmt.Errorf("invalid role '%s' at message %d: must be one of user, assistant, system", msg.Role, i)
		}
	}
	return nil
}

// ============================================================================
// WIRE TYPES
// ============================================================================

// ChatMessage is one turn in a proxy request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure body of every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Model         string `json:"model"`
	OllamaStatus  string `json:"ollama_status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ============================================================================
// SERVER
// ============================================================================

// ChatBackend is the model server the proxy forwards to.
// *ollama.Client satisfies it.
type ChatBackend interface {
	Chat(ctx context.Context, messages []ollama.Message) (*ollama.ChatResponse, error)
	CheckRunning(ctx context.Context) error
	Model() string
}

// Options configures the proxy.
type Options struct {
	// Addr is the listen address (default 127.0.0.1:3000).
	Addr string

	// AllowedOrigins lists CORS origins allowed to call the API.
	AllowedOrigins []string

	// RateLimitPerMinute caps requests per client IP. Zero disables limiting.
	RateLimitPerMinute int

	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
}

// DefaultAllowedOrigins are the local dev origins of browser clients.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"}

// Server is the HTTP chat proxy.
//
// Every request reads only the immutable backend and options, so concurrent
// requests share nothing mutable.
type Server struct {
	opts    Options
	backend ChatBackend
	router  *chi.Mux
	limiter *RateLimiter
	started time.Time

	server *http.Server
}

// NewServer creates a Server forwarding to backend.
func NewServer(backend ChatBackend, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = DefaultAllowedOrigins
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Server{
		opts:    opts,
		backend: backend,
		router:  chi.NewRouter(),
		started: time.Now(),
	}
	if opts.RateLimitPerMinute > 0 {
		s.limiter = NewRateLimiter(opts.RateLimitPerMinute, time.Minute)
	}

	s.setupRoutes()

	// No WriteTimeout: a local model can take minutes to answer.
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures middleware and routes.
func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoveryMiddleware())
	r.Use(LoggingMiddleware(s.opts.Logger))
	r.Use(SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		r.Use(RateLimitMiddleware(s.limiter))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Get("/health", s.handleHealth)
	})
}

// ============================================================================
// CHAT HANDLER
// ============================================================================

// handleChat handles POST /api/chat.
//
// Every failure answers 500 with an error body; the upstream status is logged
// but never passed through.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Printf("CHAT_BAD_REQUEST | req_id=%s reason=body_too_large limit=%d", reqID, MaxRequestBodySize)
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Request body exceeds maximum size of %d bytes", MaxRequestBodySize))
			return
		}
		log.Printf("CHAT_BAD_REQUEST | req_id=%s reason=decode error=%v", reqID, err)
		writeError(w, http.StatusInternalServerError, "Invalid request body")
		return
	}

	if err := validateMessages(req.Messages); err != nil {
		log.Printf("CHAT_BAD_REQUEST | req_id=%s reason=validation error=%v", reqID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	messages := make([]ollama.Message, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = ollama.Message{Role: m.Role, Content: m.Content}
	}

	start := time.Now()
	resp, err := s.backend.Chat(r.Context(), messages)
	if err != nil {
		var ce *ollama.ClientError
		status := 0
		if errors.As(err, &ce) {
			status = ce.Status
		}
		log.Printf("CHAT_UPSTREAM_ERROR | req_id=%s kind=%s upstream_status=%d error=%v",
			reqID, ollama.KindOf(err), status, err)
		writeError(w, http.StatusInternalServerError, UpstreamErrorMessage)
		return
	}

	log.Printf("CHAT_COMPLETE | req_id=%s model=%s messages=%d duration=%.3fs",
		reqID, s.backend.Model(), len(messages), time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, ChatResponse{Message: resp.Content()})
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:        "ok",
		Version:       Version,
		Model:         s.backend.Model(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := s.backend.CheckRunning(ctx); err == nil {
		health.OllamaStatus = "ok"
	} else {
		health.OllamaStatus = "unavailable"
		health.Status = "degraded"
	}

	writeJSON(w, http.StatusOK, health)
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on the configured address and serves until Shutdown.
// It returns http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	log.Printf("SERVER_START | addr=%s version=%s model=%s", ln.Addr(), Version, s.backend.Model())
	return s.server.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}

	log.Printf("SERVER_SHUTDOWN | starting graceful shutdown")
	return s.server.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("RESPONSE_ENCODE_ERROR | error=%v", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
