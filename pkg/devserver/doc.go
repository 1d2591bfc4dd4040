// Package devserver provides the development loop: a debounced fsnotify
// watcher, an external bundler command runner, and a server-sent-events
// hub that tells open browser tabs to reload.
package devserver
