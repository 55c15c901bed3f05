// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - The serve command and the in-process proxy used by
// "neuralchat --with-server".

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/jeranaias/neuralchat/internal/config"
	"github.com/jeranaias/neuralchat/internal/server"
)

// ShutdownTimeout bounds how long in-flight chats may finish on shutdown.
const ShutdownTimeout = 10 * time.Second

// NewProxy builds the HTTP proxy described by cfg.
func NewProxy(cfg *config.Config) *server.Server {
	return server.NewServer(NewOllamaClient(cfg), server.Options{
		Addr:               cfg.Server.Addr,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	})
}

// HandleServe runs the proxy until ctx is cancelled.
func HandleServe(ctx context.Context, cfg *config.Config, out io.Writer) error {
	srv := NewProxy(cfg)
	ln, err := net.Listen("tcp", srv.Addr())
	if err != nil {
		return NewCommandError("serve", "listen", err)
	}

	fmt.Fprintf(out, "%s listening on http://%s\n", SuccessStyle.Render("neuralchat proxy"), ln.Addr())
	fmt.Fprintf(out, "%s\n", DimStyle.Render(fmt.Sprintf("forwarding to %s (model %s). Ctrl+C to stop.", cfg.Ollama.URL, cfg.Ollama.Model)))

	return RunServer(ctx, srv, ln)
}

// RunServer serves on ln until ctx is done, then shuts down gracefully.
func RunServer(ctx context.Context, srv *server.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartBackground binds the proxy now and serves it in a goroutine. The
// returned stop function shuts it down and waits for it to exit.
func StartBackground(cfg *config.Config) (stop func(), addr string, err error) {
	srv := NewProxy(cfg)
	ln, err := net.Listen("tcp", srv.Addr())
	if err != nil {
		return nil, "", NewCommandError("serve", "listen", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := RunServer(ctx, srv, ln); err != nil {
			log.Printf("SERVER_ERROR | error=%v", err)
		}
	}()

	stop = func() {
		cancel()
		<-done
	}
	return stop, ln.Addr().String(), nil
}

// ProxyURLFor returns the chat route of a proxy listening on addr.
func ProxyURLFor(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return config.DefaultProxyURL
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/api/chat"
}
