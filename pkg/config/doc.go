// Package config loads the project's loom.yaml. Environment variables
// referenced as ${VAR} are expanded before parsing, and a missing file
// falls back to defaults so a fresh project runs without any config.
package config
