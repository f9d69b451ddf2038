// Package lib groups supporting modules that do not fit strictly into
// the request layers: background jobs (asynq), email (Resend), the Redis
// read cache and small shared helpers.
package lib
