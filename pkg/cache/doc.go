// Package cache provides a generic TTL cache with in-memory and Redis
// backends plus stampede-safe loading via GetOrLoad.
//
// Rendered pages and markdown content are the typical payloads:
//
//	pages := cache.NewMemory[string](
//	    cache.WithDefaultTTL(5*time.Minute),
//	    cache.WithCapacity(1000),
//	)
//	html, err := cache.GetOrLoad(ctx, pages, "/docs/intro", renderPage)
package cache
