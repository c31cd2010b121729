// Package wizard drives the post-author dialog: profile setup, post type and
// example management, and post generation. It is transport agnostic; a bot
// adapter turns Replies into platform messages.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/riverfjs/tgmarkup"
	"github.com/riverfjs/tgmarkup/internal/profile"
	"github.com/riverfjs/tgmarkup/internal/session"
)

// ParseModeHTML marks a Reply whose Text carries HTML markup.
const ParseModeHTML = "HTML"

// Request 生成一篇帖子所需的信息
type Request struct {
	Profile  *profile.Profile
	PostType string
	// Example is one stored example, as HTML markup.
	Example string
	Topic   string
}

// Generator writes a post in Markdown.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Message is an inbound text message with its formatting entities.
type Message struct {
	ChatID   int64
	Text     string
	Entities []tgmarkup.MessageEntity
}

// Button is an inline keyboard button; Action comes back to HandleAction.
type Button struct {
	Text   string
	Action string
}

// Reply is one outbound message. ParseMode is "" for plain text.
type Reply struct {
	Text      string
	ParseMode string
	Buttons   [][]Button
}

func plain(format string, args ...any) Reply {
	return Reply{Text: fmt.Sprintf(format, args...)}
}

func withButtons(text string, buttons [][]Button) Reply {
	return Reply{Text: text, Buttons: buttons}
}

// Wizard 对话驱动器，配置与会话状态都由外部注入
type Wizard struct {
	profiles  profile.Store
	sessions  session.Store
	generator Generator

	maxMessageLength int
	pick             func(n int) int
	logger           *slog.Logger

	// mu serializes profile load-modify-save cycles.
	mu sync.Mutex
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithMaxMessageLength sets the chunk size for generated posts.
func WithMaxMessageLength(n int) Option {
	return func(w *Wizard) {
		w.maxMessageLength = n
	}
}

// WithPicker replaces the random choice of example.
func WithPicker(pick func(n int) int) Option {
	return func(w *Wizard) {
		if pick != nil {
			w.pick = pick
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New returns a Wizard. generator may be nil, in which case post creation
// reports that no generator is configured.
func New(profiles profile.Store, sessions session.Store, generator Generator, opts ...Option) *Wizard {
	w := &Wizard{
		profiles:         profiles,
		sessions:         sessions,
		generator:        generator,
		maxMessageLength: tgmarkup.DefaultMaxMessageLength,
		pick:             rand.IntN,
		logger:           tgmarkup.Logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the profile setup when it has not run yet.
func (w *Wizard) Start(ctx context.Context, chatID int64) ([]Reply, error) {
	p, err := w.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	if p.Complete() {
		return []Reply{plain("The profile is already set up. Use /menu to see the options.")}, nil
	}
	if err := w.put(ctx, chatID, session.State{Step: session.AwaitingName}); err != nil {
		return nil, err
	}
	return []Reply{plain("Hi! Let's set up your bot.\nFirst, what is your character's name?")}, nil
}

// Menu resets the dialog and shows the main options.
func (w *Wizard) Menu(ctx context.Context, chatID int64) ([]Reply, error) {
	if err := w.sessions.Clear(ctx, chatID); err != nil {
		return nil, err
	}
	return []Reply{withButtons("Choose an option:", [][]Button{
		{{Text: "➕ Add post type", Action: actionAddPostType}},
		{{Text: "➕ Add example", Action: actionAddExample}},
		{{Text: "📝 Create post", Action: actionCreatePost}},
		{{Text: "✏️ Edit profile", Action: actionEditConfig}},
		{{Text: "✏️ Edit post types", Action: actionEditTypes}},
	})}, nil
}

// state returns the chat's state, Idle when it has none.
func (w *Wizard) state(ctx context.Context, chatID int64) (session.State, error) {
	st, err := w.sessions.Get(ctx, chatID)
	if errors.Is(err, session.ErrNotFound) {
		return session.State{Step: session.Idle}, nil
	}
	return st, err
}

func (w *Wizard) put(ctx context.Context, chatID int64, st session.State) error {
	return w.sessions.Put(ctx, chatID, st)
}

// update loads the profile, applies fn and saves when fn succeeds. The error
// of fn is returned unchanged.
func (w *Wizard) update(ctx context.Context, fn func(p *profile.Profile) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, err := w.profiles.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return w.profiles.Save(ctx, p)
}

// examplePreview 按钮上显示的示例摘要
func examplePreview(i int, example string) string {
	runes := []rune(example)
	if len(runes) > 20 {
		return fmt.Sprintf("%d. %s...", i+1, string(runes[:20]))
	}
	return fmt.Sprintf("%d. %s", i+1, example)
}
