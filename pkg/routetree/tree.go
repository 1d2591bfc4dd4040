package routetree

import (
	"io"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
)

// Kind classifies a route file by its top-level directory.
type Kind int

const (
	// KindUnknown marks files outside the recognized top-level directories.
	// Unknown files produce no registration.
	KindUnknown Kind = iota
	// KindAPI marks files under api/: method handlers returning data.
	KindAPI
	// KindPage marks files under pages/: renderable page components.
	KindPage
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindPage:
		return "page"
	default:
		return "unknown"
	}
}

// ScopeMarker is the base name (minus extension) that declares a middleware
// scope for its directory and all descendants.
const ScopeMarker = "_middleware"

// Entry is a discovered route file with its derived URL pattern.
type Entry struct {
	// FilePath is the slash-separated path relative to the routes root.
	FilePath string
	// Pattern is the chi URL pattern derived from FilePath.
	Pattern string
	// Kind is the route classification (api or page).
	Kind Kind
}

// Scope is a discovered middleware scope.
// The root scope has Dir == "" and applies to every route.
type Scope struct {
	// Dir is the scope directory relative to the routes root ("" = root).
	Dir string
	// Prefix is the URL prefix derived from Dir.
	Prefix string
	// Depth is the number of path components in Dir (0 = root).
	Depth int
}

// Tree is the resolved route tree: entries and scopes in deterministic order.
// Entries are sorted by file path; scopes by ascending depth with a stable
// tie-break on the scope directory string.
type Tree struct {
	Entries []Entry
	Scopes  []Scope
}

// Option configures tree discovery.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for skip warnings during discovery.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Discover walks a routes filesystem and builds the route tree.
// Scope markers, underscore-prefixed files, and test files are never routes.
// Files whose paths cannot be translated, and files outside the api/ and
// pages/ directories, are skipped with a warning rather than failing the walk.
func Discover(fsys fs.FS, opts ...Option) (*Tree, error) {
	cfg := &config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}

	tree := &Tree{}
	scopeDirs := map[string]bool{"": true} // root scope always present

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		if IsScopeMarker(p) {
			dir := dirOf(p)
			scopeDirs[dir] = true
			return nil
		}
		if !IsRouteFile(p) {
			return nil
		}

		kind := KindOf(p)
		if kind == KindUnknown {
			cfg.logger.Warn("route file outside api/ and pages/, skipping", "file", p)
			return nil
		}

		pattern, perr := PathToPattern(p)
		if perr != nil {
			cfg.logger.Warn("route file has invalid path, skipping", "file", p, "error", perr)
			return nil
		}

		tree.Entries = append(tree.Entries, Entry{FilePath: p, Pattern: pattern, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, err
	}

	for dir := range scopeDirs {
		tree.Scopes = append(tree.Scopes, Scope{
			Dir:    dir,
			Prefix: dirToPrefix(dir),
			Depth:  dirDepth(dir),
		})
	}

	tree.sortDeterministic()
	return tree, nil
}

// sortDeterministic orders entries and scopes independently of filesystem
// enumeration order.
func (t *Tree) sortDeterministic() {
	sort.Slice(t.Entries, func(i, j int) bool {
		return t.Entries[i].FilePath < t.Entries[j].FilePath
	})
	sort.SliceStable(t.Scopes, func(i, j int) bool {
		if t.Scopes[i].Depth != t.Scopes[j].Depth {
			return t.Scopes[i].Depth < t.Scopes[j].Depth
		}
		return t.Scopes[i].Dir < t.Scopes[j].Dir
	})
}

// ScopesFor returns the scopes applying to the given route file, outermost
// first. A scope applies when its directory is a path-component-wise prefix
// of the route's directory, so "api" never matches "api-x". The scopes slice
// must already be in the deterministic order produced by Discover.
func ScopesFor(filePath string, scopes []Scope) []Scope {
	routeDir := dirOf(filePath)

	var chain []Scope
	for _, s := range scopes {
		if scopeContains(s.Dir, routeDir) {
			chain = append(chain, s)
		}
	}
	return chain
}

// scopeContains reports whether scopeDir is a segment-wise prefix of dir.
func scopeContains(scopeDir, dir string) bool {
	if scopeDir == "" {
		return true
	}
	return dir == scopeDir || strings.HasPrefix(dir, scopeDir+"/")
}

// IsScopeMarker reports whether the file declares a middleware scope.
func IsScopeMarker(filePath string) bool {
	return stripExtension(path.Base(filePath)) == ScopeMarker
}

// IsRouteFile reports whether the file is a candidate route definition.
// Underscore-prefixed files and test files are excluded.
func IsRouteFile(filePath string) bool {
	base := path.Base(filePath)
	if strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".") {
		return false
	}
	if strings.Contains(base, "_test.") {
		return false
	}
	return true
}

// KindOf classifies a route file by its top-level directory.
func KindOf(filePath string) Kind {
	top, _, _ := strings.Cut(filePath, "/")
	switch top {
	case "api":
		return KindAPI
	case PagesDir:
		return KindPage
	default:
		return KindUnknown
	}
}

// dirOf returns the slash-separated directory of a file path, "" for root.
func dirOf(filePath string) string {
	dir := path.Dir(filePath)
	if dir == "." {
		return ""
	}
	return dir
}

// dirDepth returns the number of path components in a scope directory.
func dirDepth(dir string) int {
	if dir == "" {
		return 0
	}
	return strings.Count(dir, "/") + 1
}

// dirToPrefix derives the URL prefix for a scope directory.
// Parameter segments translate the same way as route patterns; the pages/
// prefix is dropped. The root scope maps to "/".
func dirToPrefix(dir string) string {
	if dir == "" {
		return "/"
	}

	segments := strings.Split(dir, "/")
	if segments[0] == PagesDir {
		segments = segments[1:]
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		translated, err := translateSegment(seg)
		if err != nil {
			// An untranslatable scope dir keeps its literal form; the scope
			// still participates in chain resolution, which is dir-based.
			translated = seg
		}
		parts = append(parts, translated)
	}

	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}
