// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jeranaias/neuralchat/internal/model"
	"github.com/jeranaias/neuralchat/internal/util"
)

// ErrEmptyConversation is returned when there is nothing to export.
var ErrEmptyConversation = errors.New("conversation has no messages")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter turns a conversation into a document.
type Exporter interface {
	// Export converts a conversation to the target format.
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension returns the file extension, including the dot.
	FileExtension() string

	// MimeType returns the MIME type of the output.
	MimeType() string
}

// Format names an export format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// ParseFormat maps user input to a Format. Empty input means HTML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html", "htm":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format %q (use html or md)", s)
	}
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where files are written. Default: current directory.
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeTimestamps adds per-message times.
	IncludeTimestamps bool

	// Model is shown in the document header when set.
	Model string

	// Theme for HTML export: "dark" or "light".
	Theme string

	// Now stamps the file name and footer. Default: time.Now.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeTimestamps: true,
		Theme:             "dark",
		Now:               time.Now,
	}
}

func (o *Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// New returns the exporter for format.
func New(format Format, opts *Options) (Exporter, error) {
	switch format {
	case FormatHTML:
		return NewHTMLExporter(opts), nil
	case FormatMarkdown:
		return NewMarkdownExporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// FileName returns neuralchat-<timestamp><ext>.
func FileName(at time.Time, ext string) string {
	return "neuralchat-" + at.Format("20060102-150405") + ext
}

// ExportToFile exports conv with exporter and writes it atomically under
// opts.OutputDir. It returns the written path.
func ExportToFile(conv *model.Conversation, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName(opts.now(), exporter.FileExtension()))
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	log.Printf("EXPORT_COMPLETE | path=%s bytes=%d messages=%d", path, len(content), conv.Len())

	if opts.OpenAfterExport {
		if err := openFile(path); err != nil {
			// The file exists; failing to open it is not an export failure.
			log.Printf("EXPORT_OPEN_FAILED | path=%s error=%v", path, err)
		}
	}
	return path, nil
}

// ExportHTML writes conv as HTML.
func ExportHTML(conv *model.Conversation, opts *Options) (string, error) {
	return ExportToFile(conv, NewHTMLExporter(opts), opts)
}

// ExportMarkdown writes conv as Markdown.
func ExportMarkdown(conv *model.Conversation, opts *Options) (string, error) {
	return ExportToFile(conv, NewMarkdownExporter(opts), opts)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func checkConversation(conv *model.Conversation) error {
	if conv == nil {
		return errors.New("conversation is nil")
	}
	if conv.IsEmpty() {
		return ErrEmptyConversation
	}
	return nil
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
