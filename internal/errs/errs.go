// Package errs defines the error types returned to API clients.
//
// Every failure that reaches the client, whether a binding problem,
// an unknown route or an unsupported media type, is rendered with
// the same JSON shape so clients get consistent, actionable messages.
package errs
