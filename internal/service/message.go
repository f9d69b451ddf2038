package service

import (
	"context"

	"github.com/deppfellow/askhub/internal/authz"
	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/repository"
)

type MessageService struct {
	tx       database.Transactor
	messages MessageStore
	profiles ProfileStore
	cache    Cache
}

func NewMessageService(tx database.Transactor, messages MessageStore, profiles ProfileStore, cache Cache) *MessageService {
	return &MessageService{tx: tx, messages: messages, profiles: profiles, cache: cache}
}

// List returns the caller's inbox, newest first.
func (s *MessageService) List(ctx context.Context, userID string, unreadOnly bool, page, limit int) (model.Paginated[model.Message], error) {
	if err := authz.Check(authz.Messages, authz.Read, userID, userID); err != nil {
		return model.Paginated[model.Message]{}, err
	}
	page, limit = repository.NormalizePage(page, limit)

	var (
		messages []model.Message
		total    int
	)
	err := s.tx.AsUser(ctx, userID, func(ctx context.Context, q database.Querier) error {
		var err error
		messages, total, err = s.messages.List(ctx, q, userID, unreadOnly, page, limit)
		return err
	})
	if err != nil {
		return model.Paginated[model.Message]{}, err
	}
	return model.NewPaginated(messages, page, limit, total), nil
}

func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int, error) {
	if err := authz.Check(authz.Messages, authz.Read, userID, userID); err != nil {
		return 0, err
	}
	n, version, ok := s.cache.UnreadCount(ctx, userID)
	if ok {
		return n, nil
	}

	err := s.tx.AsUser(ctx, userID, func(ctx context.Context, q database.Querier) error {
		var err error
		n, err = s.messages.CountUnread(ctx, q, userID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.cache.SetUnreadCount(ctx, userID, n, version)
	return n, nil
}

// MarkRead marks one of the caller's messages read. Messages addressed to
// someone else are invisible and therefore not found.
func (s *MessageService) MarkRead(ctx context.Context, userID, id string) (*model.Message, error) {
	if err := authz.Check(authz.Messages, authz.Update, userID, userID); err != nil {
		return nil, err
	}

	var out *model.Message
	err := s.tx.AsUser(ctx, userID, func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.messages.MarkRead(ctx, q, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateUnread(ctx, userID)
	return out, nil
}

func (s *MessageService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if err := authz.Check(authz.Messages, authz.Update, userID, userID); err != nil {
		return 0, err
	}

	var n int64
	err := s.tx.AsUser(ctx, userID, func(ctx context.Context, q database.Querier) error {
		var err error
		n, err = s.messages.MarkAllRead(ctx, q, userID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.cache.InvalidateUnread(ctx, userID)
	return n, nil
}

// Deliver stores a system notification and returns it with its
// recipient. It runs in the worker, outside any user's identity.
func (s *MessageService) Deliver(ctx context.Context, msg model.NewMessage) (*model.Message, *model.Profile, error) {
	var (
		stored    *model.Message
		recipient *model.Profile
	)
	err := s.tx.AsSystem(ctx, func(ctx context.Context, q database.Querier) error {
		var err error
		recipient, err = s.profiles.GetByID(ctx, q, msg.RecipientID)
		if err != nil {
			return err
		}
		stored, err = s.messages.Insert(ctx, q, msg)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.cache.InvalidateUnread(ctx, msg.RecipientID)
	return stored, recipient, nil
}
