// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat screen of the terminal UI.
package chat

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jeranaias/neuralchat/internal/export"
	"github.com/jeranaias/neuralchat/internal/model"
	"github.com/jeranaias/neuralchat/internal/render"
	"github.com/jeranaias/neuralchat/internal/session"
	"github.com/jeranaias/neuralchat/internal/ui/components"
	"github.com/jeranaias/neuralchat/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// inputHeight is the border line above the prompt plus the prompt.
	inputHeight = 2
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a chat Model.
type Options struct {
	// Sender delivers histories; usually a *transport.Client.
	Sender session.Sender

	// Context bounds every send. Default: context.Background.
	Context context.Context

	// ModelName is shown in the header when set.
	ModelName string

	// Theme defaults to styles.DefaultTheme.
	Theme *styles.Theme

	// RenderStyle overrides the glamour style picked from the theme.
	RenderStyle string

	// Export configures Ctrl+E. Default: HTML in the current directory.
	Export *export.Options

	// Conversation to continue; nil starts a new one.
	Conversation *model.Conversation
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// renderCache holds the rendered transcript between frames. It is shared by
// every copy of the Model, so the conversation listener can mark it stale.
type renderCache struct {
	dirty      bool
	transcript string
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	width  int
	height int

	ctx    context.Context
	ctrl   *session.Controller
	sender session.Sender

	renderer *render.Terminal
	cache    *renderCache

	header   *components.Header
	footer   *components.Footer
	welcome  components.Welcome
	typing   components.TypingIndicator
	viewport viewport.Model
	input    textinput.Model

	exportOpts *export.Options
}

// New creates the chat screen.
func New(opts Options) (Model, error) {
	theme := opts.Theme
	if theme == nil {
		theme = styles.DefaultTheme
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	exportOpts := opts.Export
	if exportOpts == nil {
		exportOpts = export.DefaultOptions()
	}
	if exportOpts.Model == "" {
		exportOpts.Model = opts.ModelName
	}

	rendererOpts := []render.TerminalOption{
		render.WithTheme(theme),
		render.WithWidth(contentWidth(defaultWidth)),
	}
	if opts.RenderStyle != "" {
		rendererOpts = append(rendererOpts, render.WithStyle(opts.RenderStyle))
	}
	renderer, err := render.NewTerminal(rendererOpts...)
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Placeholder = "Message..."
	input.Prompt = theme.InputPrompt.Render("> ")
	input.Focus()

	keys := DefaultKeyMap()
	header := components.NewHeader(theme)
	header.SetModel(opts.ModelName)
	footer := components.NewFooter(theme)
	footer.Shortcuts = keys.Shortcuts()

	m := Model{
		theme:      theme,
		keys:       keys,
		ctx:        ctx,
		ctrl:       session.NewController(opts.Conversation),
		sender:     opts.Sender,
		renderer:   renderer,
		cache:      &renderCache{dirty: true},
		header:     header,
		footer:     footer,
		welcome:    components.NewWelcome(theme),
		typing:     components.NewTypingIndicator(theme),
		viewport:   viewport.New(defaultWidth, defaultHeight),
		input:      input,
		exportOpts: exportOpts,
	}

	cache := m.cache
	m.ctrl.Conversation().OnAppend(func(msg model.Message) {
		log.Printf("CHAT_MESSAGE | role=%s id=%s chars=%d", msg.Role(), msg.ID(), len(msg.Content()))
		cache.dirty = true
	})

	m.resize(defaultWidth, defaultHeight)
	return m, nil
}

// contentWidth is the markdown width inside an assistant bubble.
func contentWidth(width int) int {
	w := width - components.BubbleChrome
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Conversation returns the message store.
func (m Model) Conversation() *model.Conversation {
	return m.ctrl.Conversation()
}

// State returns the send cycle state.
func (m Model) State() session.State {
	return m.ctrl.State()
}

// IsSending reports whether a reply is outstanding.
func (m Model) IsSending() bool {
	return m.ctrl.IsSending()
}

// Input returns the current input text.
func (m Model) Input() string {
	return m.input.Value()
}

// SetInput replaces the input text.
func (m *Model) SetInput(text string) {
	m.input.SetValue(text)
}
