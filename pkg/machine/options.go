package machine

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Option defines a functional option for configuring a Machine.
type Option func(*settings)

type settings struct {
	name   string
	blank  string
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// WithName labels the machine in logs, events and run records.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithBlankGlyph sets the string used to render blank cells (default " ").
func WithBlankGlyph(glyph string) Option {
	return func(s *settings) {
		s.blank = glyph
	}
}

// WithLogger sets a structured logger. Steps are logged at Debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
// Calling it more than once chains the hooks in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = s.hooks.Merge(hooks)
	}
}
