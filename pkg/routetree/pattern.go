package routetree

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Errors.
var (
	ErrEmptyPath       = errors.New("routetree: empty file path")
	ErrAbsolutePath    = errors.New("routetree: file path must be relative")
	ErrInvalidSegment  = errors.New("routetree: invalid path segment")
	ErrCatchAllNotLast = errors.New("routetree: catch-all segment must be last")
)

// PagesDir is the directory whose prefix is stripped from URL patterns.
// Files under it keep the prefix for middleware scope resolution.
const PagesDir = "pages"

// PathToPattern derives a chi URL pattern from a route file path.
// The translation is pure and deterministic:
//
//	pages/index.go          -> /
//	pages/blog/[slug].go    -> /blog/{slug}
//	api/users/[id].go       -> /api/users/{id}
//	api/files/[...path].go  -> /api/files/*
//
// Rules: the file extension is stripped, "[name]" becomes a named parameter,
// "[...name]" becomes a trailing catch-all, a trailing "index" segment maps to
// the parent directory, and the "pages/" prefix is dropped from the URL.
func PathToPattern(filePath string) (string, error) {
	if filePath == "" {
		return "", ErrEmptyPath
	}
	if strings.HasPrefix(filePath, "/") {
		return "", ErrAbsolutePath
	}

	trimmed := stripExtension(path.Clean(filePath))
	segments := strings.Split(trimmed, "/")

	// Drop the pages/ prefix from the URL, not from the file scope.
	if segments[0] == PagesDir {
		segments = segments[1:]
	}

	// Trailing index maps to the parent directory.
	if n := len(segments); n > 0 && segments[n-1] == "index" {
		segments = segments[:n-1]
	}

	parts := make([]string, 0, len(segments))
	for i, seg := range segments {
		translated, err := translateSegment(seg)
		if err != nil {
			return "", fmt.Errorf("%w: %q in %q", err, seg, filePath)
		}
		if translated == "*" && i != len(segments)-1 {
			return "", fmt.Errorf("%w: %q", ErrCatchAllNotLast, filePath)
		}
		parts = append(parts, translated)
	}

	if len(parts) == 0 {
		return "/", nil
	}
	return "/" + strings.Join(parts, "/"), nil
}

// translateSegment converts a single file-path segment to its URL form.
func translateSegment(seg string) (string, error) {
	switch {
	case seg == "" || seg == "." || seg == "..":
		return "", ErrInvalidSegment
	case strings.HasPrefix(seg, "[...") && strings.HasSuffix(seg, "]"):
		if !isValidParamName(seg[4 : len(seg)-1]) {
			return "", ErrInvalidSegment
		}
		return "*", nil
	case strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]"):
		name := seg[1 : len(seg)-1]
		if !isValidParamName(name) {
			return "", ErrInvalidSegment
		}
		return "{" + name + "}", nil
	case strings.ContainsAny(seg, "[]{}"):
		return "", ErrInvalidSegment
	default:
		return seg, nil
	}
}

// isValidParamName reports whether name is a valid URL parameter identifier.
func isValidParamName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// stripExtension removes the extension from the last path segment.
// Dotfiles keep their name intact.
func stripExtension(p string) string {
	base := path.Base(p)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		return p[:len(p)-(len(base)-idx)]
	}
	return p
}
