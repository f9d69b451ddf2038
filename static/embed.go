// Package static embeds the assets served under /static: the OpenAPI
// document and UI, and the link prefetch script for the web client.
package static

import "embed"

//go:embed openapi.json openapi.html preload.js
var Files embed.FS
