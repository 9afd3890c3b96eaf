// Package cli defines the Cobra command tree for the mortar CLI. Each file
// registers one command group (config, remotes, version, generate, settings)
// with the root command. Commands that act on a hosted project resolve it
// once from the current repository and pass it explicitly to the code that
// talks to the API.
package cli
