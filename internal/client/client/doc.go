// Package client contains client-side building blocks for the to-do CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the to-do backend: Register/Login/Me and the item CRUD calls.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     bearer token to every request and maps HTTP status codes to sentinel
//     errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose
//     migrations for the session store.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrAlreadyExists,
// ErrValidation.
package client
