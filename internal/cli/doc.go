// Package cli defines the create-sui-dapp command. The command only parses
// flags, wires collaborators, and presents errors; the work itself lives in
// internal/settings and internal/scaffold.
package cli
