package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/markdown"
)

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("plain markdown", func(t *testing.T) {
		t.Parallel()

		r := markdown.New()
		doc, err := r.Render([]byte("# Hello\n\nSome *text*."))
		require.NoError(t, err)
		require.Contains(t, doc.HTML, "<h1")
		require.Contains(t, doc.HTML, "<em>text</em>")
		require.Empty(t, doc.Meta.Title)
	})

	t.Run("frontmatter parsed", func(t *testing.T) {
		t.Parallel()

		src := []byte("---\ntitle: Intro\ndescription: Getting started\ndraft: true\n---\n\n# Intro\n")

		r := markdown.New()
		doc, err := r.Render(src)
		require.NoError(t, err)
		require.Equal(t, "Intro", doc.Meta.Title)
		require.Equal(t, "Getting started", doc.Meta.Description)
		require.True(t, doc.Meta.Draft)
		require.Contains(t, doc.HTML, "<h1")
		require.NotContains(t, doc.HTML, "title: Intro")
	})

	t.Run("unterminated frontmatter", func(t *testing.T) {
		t.Parallel()

		r := markdown.New()
		_, err := r.Render([]byte("---\ntitle: Broken\n\n# Body"))
		require.ErrorIs(t, err, markdown.ErrFrontmatter)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		r := markdown.New()
		_, err := r.Render([]byte("---\ntitle: [unclosed\n---\nbody"))
		require.ErrorIs(t, err, markdown.ErrFrontmatter)
	})

	t.Run("script tags sanitized", func(t *testing.T) {
		t.Parallel()

		r := markdown.New(markdown.WithUnsafeHTML())
		doc, err := r.Render([]byte("hello\n\n<script>alert(1)</script>\n"))
		require.NoError(t, err)
		require.NotContains(t, doc.HTML, "<script>")
		require.Contains(t, doc.HTML, "hello")
	})

	t.Run("gfm tables", func(t *testing.T) {
		t.Parallel()

		src := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")

		r := markdown.New()
		doc, err := r.Render(src)
		require.NoError(t, err)
		require.Contains(t, doc.HTML, "<table>")
	})
}
