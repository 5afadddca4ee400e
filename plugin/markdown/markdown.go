// Package markdown renders assistant replies to HTML for web clients.
package markdown

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Service converts markdown text to HTML.
type Service interface {
	Render(content string) (string, error)
}

type service struct {
	md goldmark.Markdown
}

// Option configures the markdown service.
type Option func(*[]goldmark.Option)

// WithHardWraps renders single newlines as <br>, matching how chat replies
// are written.
func WithHardWraps() Option {
	return func(opts *[]goldmark.Option) {
		*opts = append(*opts, goldmark.WithRendererOptions(html.WithHardWraps()))
	}
}

// NewService creates a markdown rendering service with GFM extensions.
func NewService(opts ...Option) Service {
	gmOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
	}
	for _, opt := range opts {
		opt(&gmOpts)
	}
	return &service{md: goldmark.New(gmOpts...)}
}

func (s *service) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(content), &buf); err != nil {
		return "", errors.Wrap(err, "failed to render markdown")
	}
	return buf.String(), nil
}
