package email

import (
	"testing"

	"github.com/deppfellow/askhub/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryTemplateRendersPreview(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)
			require.NoError(t, err)
			assert.Contains(t, html, data["Nickname"])
			assert.Contains(t, html, data["Title"])
		})
	}
}

func TestRenderEscapesContent(t *testing.T) {
	html, err := Render(TemplateNotification, map[string]string{
		"Nickname": "<script>alert(1)</script>",
		"Title":    "t",
		"Content":  "c",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "Open in Askhub")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestNewClientDisabledWithoutKey(t *testing.T) {
	logger := zerolog.Nop()
	assert.Nil(t, NewClient(&config.Config{}, &logger))
	assert.NotNil(t, NewClient(&config.Config{Integration: config.IntegrationConfig{ResendAPIKey: "re_test"}}, &logger))
}
