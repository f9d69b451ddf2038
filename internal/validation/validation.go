// Package validation binds request payloads and turns validator/v10
// failures into field errors for the API envelope.
package validation
