// Package cli provides the interactive to-do command-line client.
//
// It wires configuration, local session storage, API services, and an
// interactive REPL. Typical flow: restore a saved session (or prompt for
// credentials) and execute user commands against the backend.
//
// Key features:
//   - Register / Login / Logout with a persisted bearer token
//   - Add, list, rename and delete items
//   - Mark items complete or not complete
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
