package email

import (
	"github.com/deppfellow/askhub/internal/model"
)

func (c *Client) SendWelcomeEmail(to, nickname, role, link string) error {
	return c.SendEmail(
		to,
		"Welcome to Askhub!",
		TemplateWelcome,
		map[string]string{
			"Nickname": nickname,
			"Role":     role,
			"Link":     link,
		},
	)
}

// NotificationData is what TemplateNotification renders.
type NotificationData struct {
	Nickname string
	Link     string
}

// SendNotificationEmail mirrors a stored message to the recipient's inbox.
func (c *Client) SendNotificationEmail(to string, msg *model.Message, data NotificationData) error {
	return c.SendEmail(
		to,
		msg.Title,
		TemplateNotification,
		map[string]string{
			"Nickname": data.Nickname,
			"Title":    msg.Title,
			"Content":  msg.Content,
			"Link":     data.Link,
		},
	)
}
