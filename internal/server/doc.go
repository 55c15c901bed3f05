// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the HTTP chat proxy in front of a local Ollama server.
//
// The proxy keeps the browser-facing contract small: the client posts the
// whole history and receives the assistant reply as a single string. Model
// server failures of any kind become one 500 response with an error message.
//
// # Endpoints
//
//   - POST /api/chat   - {messages:[{role,content}]} -> {message} or 500 {error}
//   - GET  /api/health - Proxy and model server status
//
// # Middleware
//
//   - Request IDs and real client IPs (chi middleware)
//   - Panic recovery with a JSON 500 body
//   - Request logging
//   - Security headers and CORS
//   - Optional per-IP rate limiting (token bucket)
//
// # Usage
//
//	backend := ollama.NewClientWithConfig(&ollama.ClientConfig{Model: "mistral"})
//	srv := server.NewServer(backend, server.Options{Addr: "127.0.0.1:3000"})
//	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
//		log.Fatal(err)
//	}
package server
