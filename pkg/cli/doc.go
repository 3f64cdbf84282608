// Package cli implements the irchook command-line interface: serve,
// validate, init, config, and version.
package cli
