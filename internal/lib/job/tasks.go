package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deppfellow/askhub/internal/model"
	"github.com/hibiken/asynq"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

const (
	TaskNotify  = "message:notify"
	TaskWelcome = "email:welcome"
)

// NewNotifyTask stores msg for its recipient and mirrors it by email.
func NewNotifyTask(msg model.NewMessage) (*asynq.Task, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskNotify,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(QueueCritical),
		asynq.Timeout(30*time.Second),
	), nil
}

type WelcomeEmailPayload struct {
	To       string `json:"to"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

func NewWelcomeEmailTask(to, nickname string, role model.UserRole) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:       to,
		Nickname: nickname,
		Role:     string(role),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueLow),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueNotification queues msg for the worker.
func (j *JobService) EnqueueNotification(ctx context.Context, msg model.NewMessage) error {
	task, err := NewNotifyTask(msg)
	if err != nil {
		return err
	}
	return j.enqueue(ctx, task)
}

// EnqueueWelcomeEmail queues the sign-up email. It is a no-op when email
// is disabled.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, nickname string, role model.UserRole) error {
	if j.email == nil {
		return nil
	}
	task, err := NewWelcomeEmailTask(to, nickname, role)
	if err != nil {
		return err
	}
	return j.enqueue(ctx, task)
}
