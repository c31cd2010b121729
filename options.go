package tgmarkup

import "github.com/riverfjs/tgmarkup/internal/types"

// ConvertOptions holds options for conversion and reconstruction.
type ConvertOptions struct {
	Config RenderConfig
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithConfig replaces the render configuration. A nil config is ignored.
func WithConfig(config *RenderConfig) Option {
	return func(opts *ConvertOptions) {
		if config != nil {
			opts.Config = *config
		}
	}
}

// WithMarkup selects the output markup syntax.
func WithMarkup(m Markup) Option {
	return func(opts *ConvertOptions) {
		opts.Config.Markup = m
	}
}

// WithNesting selects how crossing entities are handled.
func WithNesting(n Nesting) Option {
	return func(opts *ConvertOptions) {
		opts.Config.Nesting = n
	}
}

// WithSymbols sets the symbols Convert writes for headings, images and tasks.
func WithSymbols(s *Symbol) Option {
	return func(opts *ConvertOptions) {
		if s != nil {
			opts.Config.MarkdownSymbol = s
		}
	}
}

// applyOptions applies the given options to a copy of the default config.
func applyOptions(opts ...Option) *ConvertOptions {
	options := &ConvertOptions{Config: *DefaultConfig()}
	for _, opt := range opts {
		opt(options)
	}
	if options.Config.MarkdownSymbol == nil {
		options.Config.MarkdownSymbol = types.DefaultSymbol()
	}
	return options
}
