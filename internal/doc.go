// Package internal contains the framework core: the App container, the
// request Context, routing over chi, file-based route mounting, and the
// server runtime. The root loom package re-exports the public surface;
// application code should import that instead.
package internal
