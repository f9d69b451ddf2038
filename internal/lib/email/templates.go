package email

type Template string

const (
	TemplateWelcome Template = "welcome"

	// TemplateNotification mirrors an in-app message by email.
	TemplateNotification Template = "notification"
)
