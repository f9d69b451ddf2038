package model

import "time"

type MessageType string

const (
	MessageSystem   MessageType = "system"
	MessageOrder    MessageType = "order"
	MessageResponse MessageType = "response"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageSystem, MessageOrder, MessageResponse:
		return true
	}
	return false
}

type Message struct {
	ID                string      `json:"id" db:"id"`
	RecipientID       string      `json:"recipientId" db:"recipient_id"`
	SenderID          *string     `json:"senderId" db:"sender_id"`
	MessageType       MessageType `json:"messageType" db:"message_type"`
	Title             string      `json:"title" db:"title"`
	Content           string      `json:"content" db:"content"`
	RelatedPostID     *string     `json:"relatedPostId" db:"related_post_id"`
	RelatedResponseID *string     `json:"relatedResponseId" db:"related_response_id"`
	IsRead            bool        `json:"isRead" db:"is_read"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
}

// NewMessage is a notification waiting to be stored.
type NewMessage struct {
	RecipientID       string      `json:"recipientId"`
	SenderID          *string     `json:"senderId,omitempty"`
	MessageType       MessageType `json:"messageType"`
	Title             string      `json:"title"`
	Content           string      `json:"content"`
	RelatedPostID     *string     `json:"relatedPostId,omitempty"`
	RelatedResponseID *string     `json:"relatedResponseId,omitempty"`
}
