// Package preflight checks the external tools the scaffolder depends on
// before anything touches the filesystem.
package preflight
