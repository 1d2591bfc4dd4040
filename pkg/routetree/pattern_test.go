package routetree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/routetree"
)

func TestPathToPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filePath string
		want     string
	}{
		{"root index", "pages/index.go", "/"},
		{"nested index maps to parent", "pages/blog/index.go", "/blog"},
		{"named parameter", "pages/blog/[slug].go", "/blog/{slug}"},
		{"multiple parameters keep order", "api/teams/[team]/members/[id].go", "/api/teams/{team}/members/{id}"},
		{"catch-all", "api/files/[...path].go", "/api/files/*"},
		{"api prefix kept", "api/users/index.go", "/api/users"},
		{"pages prefix stripped", "pages/about.go", "/about"},
		{"plain file", "api/health.go", "/api/health"},
		{"index under parameter dir", "pages/blog/[slug]/index.go", "/blog/{slug}"},
		{"markdown extension", "pages/docs/intro.md", "/docs/intro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := routetree.PathToPattern(tt.filePath)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPathToPatternDeterministic(t *testing.T) {
	t.Parallel()

	// Same input always yields the same output.
	for range 10 {
		got, err := routetree.PathToPattern("pages/blog/[slug].go")
		require.NoError(t, err)
		require.Equal(t, "/blog/{slug}", got)
	}
}

func TestPathToPatternErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filePath string
		wantErr  error
	}{
		{"empty path", "", routetree.ErrEmptyPath},
		{"absolute path", "/api/users.go", routetree.ErrAbsolutePath},
		{"catch-all not last", "api/[...rest]/users.go", routetree.ErrCatchAllNotLast},
		{"unbalanced bracket", "api/[id.go", routetree.ErrInvalidSegment},
		{"empty parameter name", "api/[].go", routetree.ErrInvalidSegment},
		{"invalid parameter characters", "api/[user-id].go", routetree.ErrInvalidSegment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := routetree.PathToPattern(tt.filePath)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
