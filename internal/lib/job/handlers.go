package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/deppfellow/askhub/internal/config"
	"github.com/deppfellow/askhub/internal/errs"
	"github.com/deppfellow/askhub/internal/lib/email"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/sqlerr"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// NotificationDeliverer stores a notification as the system and returns
// it along with its recipient.
type NotificationDeliverer interface {
	Deliver(ctx context.Context, msg model.NewMessage) (*model.Message, *model.Profile, error)
}

// InitHandlers wires the dependencies the task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, deliverer NotificationDeliverer) {
	j.deliverer = deliverer
	j.email = email.NewClient(cfg, logger)
}

func (j *JobService) handleNotifyTask(ctx context.Context, t *asynq.Task) error {
	var p model.NewMessage
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal notify payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskNotify).
		Str("recipient_id", p.RecipientID).
		Str("message_type", string(p.MessageType)).
		Logger()

	msg, recipient, err := j.deliverer.Deliver(ctx, p)
	if err != nil {
		if recipientGone(err) {
			logger.Warn().Err(err).Msg("dropping notification for missing recipient")
			return fmt.Errorf("recipient %s no longer exists: %w: %w", p.RecipientID, err, asynq.SkipRetry)
		}
		logger.Error().Err(err).Msg("failed to store notification")
		return err
	}

	logger.Info().Str("message_id", msg.ID).Msg("notification stored")

	if j.email == nil || recipient == nil || recipient.Email == nil || *recipient.Email == "" {
		return nil
	}

	// The message is already stored; a mail failure must not retry the
	// task and duplicate it.
	if err := j.email.SendNotificationEmail(*recipient.Email, msg, email.NotificationData{
		Nickname: recipient.Nickname,
		Link:     j.linkFor(msg),
	}); err != nil {
		logger.Error().Err(err).Str("message_id", msg.ID).Msg("failed to send notification email")
	}

	return nil
}

func (j *JobService) linkFor(msg *model.Message) string {
	if j.publicURL == "" {
		return ""
	}
	if msg.RelatedPostID != nil {
		return j.publicURL + "/posts/" + *msg.RelatedPostID
	}
	return j.publicURL + "/messages"
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.email == nil {
		return nil
	}

	j.logger.Info().
		Str("type", TaskWelcome).
		Str("to", p.To).
		Msg("processing welcome email task")

	link := ""
	if j.publicURL != "" {
		link = j.publicURL + "/posts"
	}

	if err := j.email.SendWelcomeEmail(p.To, p.Nickname, p.Role, link); err != nil {
		j.logger.Error().
			Str("type", TaskWelcome).
			Str("to", p.To).
			Err(err).
			Msg("failed to send welcome email")
		return err
	}

	return nil
}

// recipientGone reports whether the recipient was deleted after the task
// was enqueued, which no retry can fix.
func recipientGone(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) || sqlerr.ErrCode(err) == sqlerr.ForeignKeyViolation {
		return true
	}
	var httpErr *errs.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}
