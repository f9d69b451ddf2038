// Package handler adapts HTTP requests to the service layer.
//
// Every endpoint goes through Handle or HandleNoContent, which bind the
// path, query and body into a fresh request struct, validate it, call
// the service with the caller from the auth middleware and write JSON.
package handler
