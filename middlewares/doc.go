// Package middlewares provides HTTP middleware for loom applications:
// panic recovery, request IDs, CORS, request timeouts, and JWT
// authentication. Middleware can be applied globally with
// loom.WithMiddleware or per scope through the route registry.
package middlewares
