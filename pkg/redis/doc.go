// Package redis opens go-redis clients with retrying connects,
// a health probe, and a shutdown hook.
package redis
