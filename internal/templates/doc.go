// Package templates holds the registry of starter templates. Each template
// pairs a human-readable label with the pruning rule that turns a fresh clone
// of the starter repository into a single frontend/backend project. The
// registry is embedded as YAML and validated against a JSON Schema on load,
// so adding a template is a data change.
package templates
