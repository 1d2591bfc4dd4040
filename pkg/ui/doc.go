// Package ui is a small server-rendered component kit on the templ
// runtime. Components compose through the templ.Component interface, so
// generated templ templates and these helpers mix freely.
package ui
