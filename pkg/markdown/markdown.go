package markdown

import (
	"bytes"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

var (
	ErrRender      = errors.New("markdown: failed to render")
	ErrFrontmatter = errors.New("markdown: failed to parse frontmatter")
)

const frontmatterDelim = "---"

// Meta is the YAML frontmatter of a content file.
type Meta struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Layout      string            `yaml:"layout"`
	Draft       bool              `yaml:"draft"`
	Extra       map[string]string `yaml:"extra"`
}

// Document is a rendered content file.
type Document struct {
	Meta Meta
	HTML string
}

// Option configures the renderer.
type Option func(*Renderer)

// WithPolicy replaces the sanitization policy. The default is
// bluemonday.UGCPolicy.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if p != nil {
			r.policy = p
		}
	}
}

// WithUnsafeHTML keeps raw HTML blocks in the markdown source instead of
// stripping them. The sanitization policy still runs on the output.
func WithUnsafeHTML() Option {
	return func(r *Renderer) {
		r.unsafe = true
	}
}

// Renderer converts markdown with optional YAML frontmatter into
// sanitized HTML.
type Renderer struct {
	policy *bluemonday.Policy
	md     goldmark.Markdown
	unsafe bool
}

// New creates a markdown renderer with GFM extensions enabled.
func New(opts ...Option) *Renderer {
	r := &Renderer{policy: bluemonday.UGCPolicy()}
	for _, opt := range opts {
		opt(r)
	}

	rendererOpts := []renderer.Option{}
	if r.unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return r
}

// Render parses frontmatter, converts the body to HTML, and sanitizes it.
func (r *Renderer) Render(source []byte) (*Document, error) {
	meta, body, err := splitFrontmatter(source)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, errors.Join(ErrRender, err)
	}

	return &Document{
		Meta: meta,
		HTML: r.policy.Sanitize(buf.String()),
	}, nil
}

// splitFrontmatter separates a leading YAML block delimited by "---" lines
// from the markdown body. A document without frontmatter passes through.
func splitFrontmatter(source []byte) (Meta, []byte, error) {
	var meta Meta

	text := string(source)
	if !strings.HasPrefix(text, frontmatterDelim+"\n") && text != frontmatterDelim {
		return meta, source, nil
	}

	rest := text[len(frontmatterDelim)+1:]
	idx := strings.Index(rest, "\n"+frontmatterDelim)
	if idx < 0 {
		return meta, nil, ErrFrontmatter
	}

	block := rest[:idx]
	body := rest[idx+len(frontmatterDelim)+1:]
	if cut, ok := strings.CutPrefix(body, "\n"); ok {
		body = cut
	}

	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return meta, nil, errors.Join(ErrFrontmatter, err)
	}
	return meta, []byte(body), nil
}
