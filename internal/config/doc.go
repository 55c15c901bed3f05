// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads neuralchat settings.
//
// # Key Types
//
//   - Config: Root configuration
//   - OllamaConfig: Upstream model server
//   - ServerConfig: Proxy listener, CORS and rate limit
//   - ClientConfig: Where the chat client sends
//   - UIConfig: Markdown style and export directory
//
// # Configuration Precedence
//
// Later sources win:
//   - Built-in defaults
//   - ~/.neuralchat/config.toml (or NEURALCHAT_CONFIG)
//   - .env and .env.local, which never replace variables already set
//   - Environment variables (OLLAMA_API_URL, OLLAMA_MODEL, NEURALCHAT_*)
//
// # Usage
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
//	    APIURL: cfg.Ollama.URL,
//	    Model:  cfg.Ollama.Model,
//	})
package config
