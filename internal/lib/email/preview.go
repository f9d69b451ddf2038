package email

// PreviewData holds sample values for every template, used to render
// previews and to check that each template executes.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"Nickname": "Ada",
		"Role":     "solver",
		"Link":     "https://askhub.dev/posts",
	},
	TemplateNotification: {
		"Nickname": "Ada",
		"Title":    "Your response was accepted",
		"Content":  "The author of \"Connection pool exhausted\" accepted your response.",
		"Link":     "https://askhub.dev/posts/7b0c8f6e-1111-4c7e-9a55-2d0e6f6c9a01",
	},
}
