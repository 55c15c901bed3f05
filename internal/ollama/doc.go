// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with Ollama API.
//
// This package implements the outbound half of the chat proxy: one
// non-streamed POST to the configured chat endpoint per call.
//
// # Key Types
//
//   - Client: HTTP client for the Ollama chat endpoint
//   - Message: Chat message with role and content
//   - ChatRequest: Request body, always sent with stream disabled
//   - ChatResponse: Response body with the assistant message and metrics
//   - ClientError: Failure tagged NetworkFailure, UpstreamError or MalformedResponse
//
// # Usage
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
//	    APIURL: "http://localhost:11434/api/chat",
//	    Model:  "mistral",
//	})
//	resp, err := client.Chat(ctx, []ollama.Message{ollama.NewUserMessage("Hello")})
//	if err != nil {
//	    log.Printf("CHAT_ERROR | kind=%s", ollama.KindOf(err))
//	}
//	fmt.Println(resp.Content())
package ollama
