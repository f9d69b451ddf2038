package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

type MessageRepository struct{}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// Insert stores a notification. Messages are system-originated, so this
// normally runs in a system transaction.
func (r *MessageRepository) Insert(ctx context.Context, q database.Querier, m model.NewMessage) (*model.Message, error) {
	messageType := m.MessageType
	if messageType == "" {
		messageType = model.MessageSystem
	}

	stmt := `
		INSERT INTO messages (recipient_id, sender_id, message_type, title, content, related_post_id, related_response_id)
		VALUES (@recipient_id, @sender_id, @message_type, @title, @content, @related_post_id, @related_response_id)
		RETURNING *
	`
	rows, err := q.Query(ctx, stmt, pgx.NamedArgs{
		"recipient_id":        m.RecipientID,
		"sender_id":           m.SenderID,
		"message_type":        messageType,
		"title":               m.Title,
		"content":             m.Content,
		"related_post_id":     m.RelatedPostID,
		"related_response_id": m.RelatedResponseID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert message for recipient_id=%s: %w", m.RecipientID, err)
	}

	message, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Message])
	if err != nil {
		return nil, fmt.Errorf("failed to collect message for recipient_id=%s: %w", m.RecipientID, err)
	}
	return message, nil
}

type messageRow struct {
	model.Message
	TotalCount int `db:"total_count"`
}

func (r *MessageRepository) List(ctx context.Context, q database.Querier, recipientID string, unreadOnly bool, page, limit int) ([]model.Message, int, error) {
	_, limit, offset := normalizePage(page, limit)

	stmt := `
		SELECT m.*, COUNT(*) OVER () AS total_count
		FROM messages m
		WHERE m.recipient_id = @recipient_id
		  AND (NOT @unread_only OR NOT m.is_read)
		ORDER BY m.created_at DESC, m.id
		LIMIT @limit OFFSET @offset
	`
	rows, err := q.Query(ctx, stmt, pgx.NamedArgs{
		"recipient_id": recipientID,
		"unread_only":  unreadOnly,
		"limit":        limit,
		"offset":       offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query messages for recipient_id=%s: %w", recipientID, err)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[messageRow])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect messages for recipient_id=%s: %w", recipientID, err)
	}

	total := 0
	messages := make([]model.Message, 0, len(collected))
	for _, row := range collected {
		total = row.TotalCount
		messages = append(messages, row.Message)
	}
	return messages, total, nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, q database.Querier, recipientID string) (int, error) {
	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND NOT is_read`,
		recipientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages for recipient_id=%s: %w", recipientID, err)
	}
	return count, nil
}

// MarkRead flags one message as read. A message addressed to someone
// else is invisible under row-level security and reported as not found.
func (r *MessageRepository) MarkRead(ctx context.Context, q database.Querier, id, recipientID string) (*model.Message, error) {
	rows, err := q.Query(ctx,
		`UPDATE messages SET is_read = TRUE WHERE id = $1 AND recipient_id = $2 RETURNING *`,
		id, recipientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark message id=%s read: %w", id, err)
	}

	message, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Message])
	if err != nil {
		return nil, fmt.Errorf("failed to mark message id=%s read: %w", id, sqlerr.NotFound("messages", err))
	}
	return message, nil
}

func (r *MessageRepository) MarkAllRead(ctx context.Context, q database.Querier, recipientID string) (int64, error) {
	tag, err := q.Exec(ctx,
		`UPDATE messages SET is_read = TRUE WHERE recipient_id = $1 AND NOT is_read`,
		recipientID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read for recipient_id=%s: %w", recipientID, err)
	}
	return tag.RowsAffected(), nil
}
