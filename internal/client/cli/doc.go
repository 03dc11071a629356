// Package cli provides the interactive todoapi command-line client.
//
// It wires configuration and the gRPC client into a REPL. Typical flow:
// login with email and password, then manage your own tasks with list,
// add, show, done, undo, rename and rm.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or stdin is closed.
package cli
