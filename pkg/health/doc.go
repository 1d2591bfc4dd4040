// Package health exposes liveness and readiness handlers that run
// dependency probes concurrently with a shared timeout.
package health
