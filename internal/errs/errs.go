// Package errs defines the API error envelope and its constructors.
//
// Every error leaving the HTTP layer is rendered as an HTTPError so
// clients receive consistent, actionable messages.
package errs
