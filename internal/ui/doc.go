// Package ui renders scaffolding progress: colored status lines, and a
// spinner while a step runs when the output is a terminal.
package ui
