package routetree_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/routetree"
)

func testRoutesFS() fstest.MapFS {
	return fstest.MapFS{
		"_middleware.go":            {Data: []byte("root scope")},
		"api/_middleware.go":        {Data: []byte("api scope")},
		"api/users/index.go":        {Data: []byte("users")},
		"api/users/[id].go":         {Data: []byte("user by id")},
		"api/admin/_middleware.go":  {Data: []byte("admin scope")},
		"api/admin/stats.go":        {Data: []byte("stats")},
		"pages/index.go":            {Data: []byte("home")},
		"pages/blog/[slug].go":      {Data: []byte("post")},
		"pages/blog/_middleware.go": {Data: []byte("blog scope")},
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree, err := routetree.Discover(testRoutesFS())
	require.NoError(t, err)

	var files []string
	for _, e := range tree.Entries {
		files = append(files, e.FilePath)
	}
	require.Equal(t, []string{
		"api/admin/stats.go",
		"api/users/[id].go",
		"api/users/index.go",
		"pages/blog/[slug].go",
		"pages/index.go",
	}, files)

	var dirs []string
	for _, s := range tree.Scopes {
		dirs = append(dirs, s.Dir)
	}
	require.Equal(t, []string{"", "api", "api/admin", "pages/blog"}, dirs)
}

func TestDiscoverSkipsNonRoutes(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"api/users.go":          {Data: []byte("ok")},
		"api/_helpers.go":       {Data: []byte("underscore-prefixed")},
		"api/users_test.go":     {Data: []byte("test file")},
		"scripts/deploy.go":     {Data: []byte("unknown top-level")},
		"api/bad/[id]x/file.go": {Data: []byte("invalid segment")},
	}

	tree, err := routetree.Discover(fsys)
	require.NoError(t, err)
	require.Len(t, tree.Entries, 1)
	require.Equal(t, "api/users.go", tree.Entries[0].FilePath)
	require.Equal(t, "/api/users", tree.Entries[0].Pattern)
	require.Equal(t, routetree.KindAPI, tree.Entries[0].Kind)
}

func TestScopesFor(t *testing.T) {
	t.Parallel()

	tree, err := routetree.Discover(testRoutesFS())
	require.NoError(t, err)

	t.Run("root to leaf order", func(t *testing.T) {
		t.Parallel()

		chain := routetree.ScopesFor("api/admin/stats.go", tree.Scopes)
		var dirs []string
		for _, s := range chain {
			dirs = append(dirs, s.Dir)
		}
		require.Equal(t, []string{"", "api", "api/admin"}, dirs)
	})

	t.Run("root scope always included", func(t *testing.T) {
		t.Parallel()

		chain := routetree.ScopesFor("pages/index.go", tree.Scopes)
		require.Len(t, chain, 1)
		require.Equal(t, "", chain[0].Dir)
	})

	t.Run("sibling scopes excluded", func(t *testing.T) {
		t.Parallel()

		chain := routetree.ScopesFor("api/users/index.go", tree.Scopes)
		var dirs []string
		for _, s := range chain {
			dirs = append(dirs, s.Dir)
		}
		require.Equal(t, []string{"", "api"}, dirs)
	})

	t.Run("matches full path segments not substrings", func(t *testing.T) {
		t.Parallel()

		scopes := []routetree.Scope{
			{Dir: "", Prefix: "/", Depth: 0},
			{Dir: "api", Prefix: "/api", Depth: 1},
		}
		chain := routetree.ScopesFor("api-x/thing.go", scopes)
		require.Len(t, chain, 1)
		require.Equal(t, "", chain[0].Dir)
	})
}

func TestScopePrefixes(t *testing.T) {
	t.Parallel()

	tree, err := routetree.Discover(testRoutesFS())
	require.NoError(t, err)

	prefixes := make(map[string]string)
	for _, s := range tree.Scopes {
		prefixes[s.Dir] = s.Prefix
	}
	require.Equal(t, "/", prefixes[""])
	require.Equal(t, "/api", prefixes["api"])
	require.Equal(t, "/api/admin", prefixes["api/admin"])
	require.Equal(t, "/blog", prefixes["pages/blog"])
}

func TestIsScopeMarker(t *testing.T) {
	t.Parallel()

	require.True(t, routetree.IsScopeMarker("api/_middleware.go"))
	require.True(t, routetree.IsScopeMarker("_middleware.ts"))
	require.False(t, routetree.IsScopeMarker("api/middleware.go"))
	require.False(t, routetree.IsScopeMarker("api/_middlewarex.go"))
}
