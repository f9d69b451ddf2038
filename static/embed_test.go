package static

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreloadScriptIsEmbedded(t *testing.T) {
	script, err := Files.ReadFile("preload.js")
	require.NoError(t, err)

	body := string(script)
	assert.Contains(t, body, `"[data-preload]"`)
	assert.Contains(t, body, `"mouseenter"`)
	assert.Contains(t, body, `"data-preloaded"`)
	assert.Contains(t, body, "once: true")
	assert.Contains(t, body, "window.location.origin")
}

func TestOpenAPIDocumentIsValidJSON(t *testing.T) {
	raw, err := Files.ReadFile("openapi.json")
	require.NoError(t, err)

	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotEmpty(t, doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/api/v1/posts")
	assert.Contains(t, doc.Paths, "/api/v1/responses/{id}/accept")
}
