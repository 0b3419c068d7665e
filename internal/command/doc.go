// Package command runs external programs from an argument vector. Nothing is
// passed through a shell, so user-supplied values such as the project name
// are never interpreted as shell syntax.
package command
