// Package app wires application dependencies for the CLI.
//
// It builds the logger, the wallet file store and the wallet service from
// Config, exposing them via the Wire struct and the App facade for commands
// to use.
package app
