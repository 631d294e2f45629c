package upload

import (
	"log/slog"

	"github.com/dmitrymomot/formdata/pkg/formdata"
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithMaxBodySize limits the buffered request body. Zero selects
// formdata.DefaultMaxBodySize and a negative value disables the limit.
func WithMaxBodySize(n int64) Option {
	return func(h *Handler) { h.maxBody = n }
}

// WithMaxFileSize rejects file parts larger than n bytes.
func WithMaxFileSize(n int64) Option {
	return func(h *Handler) { h.maxFile = n }
}

// WithAllowedTypes restricts file parts to the given sniffed MIME types.
func WithAllowedTypes(types ...string) Option {
	return func(h *Handler) { h.allowed = append(h.allowed, types...) }
}

// WithParserOptions passes options to every formdata.Parser.
func WithParserOptions(opts ...formdata.Option) Option {
	return func(h *Handler) { h.parserOpts = append(h.parserOpts, opts...) }
}

// WithStaticRoot enables GET requests, serving files below dir.
func WithStaticRoot(dir string) Option {
	return func(h *Handler) { h.staticRoot = dir }
}
