// Package middleware holds the echo middleware: request ids, the
// request-scoped logger, bearer authentication (Clerk or HS256 JWT),
// tracing, rate limiting, Prometheus metrics and the global error
// handler.
package middleware
