// Package settings turns the command-line argument and, when it is absent,
// answers to interactive prompts into the project name and template used
// for one scaffolding run.
package settings
