package hostrouter

import (
	"net/http"
	"strings"
)

// Router dispatches requests by Host header. Exact patterns like
// "api.example.com" win over wildcards like "*.example.com"; requests
// matching neither go to the fallback handler.
type Router struct {
	exact    map[string]http.Handler
	wildcard map[string]http.Handler // keyed by base domain, "*." stripped
	fallback http.Handler
}

// New creates a host router with the given fallback handler.
func New(fallback http.Handler) *Router {
	return &Router{
		exact:    make(map[string]http.Handler),
		wildcard: make(map[string]http.Handler),
		fallback: fallback,
	}
}

// Map registers a handler for a host pattern. Patterns are matched
// case-insensitively with the port stripped. Empty patterns are ignored.
func (r *Router) Map(pattern string, handler http.Handler) *Router {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	switch {
	case pattern == "":
	case strings.HasPrefix(pattern, "*."):
		r.wildcard[pattern[2:]] = handler
	default:
		r.exact[pattern] = handler
	}
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	host := normalizeHost(req.Host)

	if h, ok := r.exact[host]; ok {
		h.ServeHTTP(w, req)
		return
	}

	if _, domain, ok := strings.Cut(host, "."); ok {
		if h, ok := r.wildcard[domain]; ok {
			h.ServeHTTP(w, req)
			return
		}
	}

	r.fallback.ServeHTTP(w, req)
}

// Domain returns the normalized host of the request: lowercased, port
// stripped, IPv6 brackets preserved.
func Domain(r *http.Request) string {
	return normalizeHost(r.Host)
}

// Subdomain returns the part of the request host in front of baseDomain,
// or "" when the host is the base domain itself or an unrelated host.
func Subdomain(r *http.Request, baseDomain string) string {
	host := normalizeHost(r.Host)
	base := strings.ToLower(baseDomain)

	if host == base {
		return ""
	}
	suffix := "." + base
	if !strings.HasSuffix(host, suffix) {
		return ""
	}
	return strings.TrimSuffix(host, suffix)
}

func normalizeHost(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		// Keep "[::1]" intact, only strip a real port.
		if !strings.Contains(host[idx:], "]") {
			host = host[:idx]
		}
	}
	return strings.ToLower(host)
}
