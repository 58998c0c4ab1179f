// Package server wires and runs the vault-keeper HTTP server.
//
// It owns the listener lifecycle from startup to a graceful shutdown that
// lets in-flight vault writes finish.
package server
