// Package notify publishes owner-facing notification messages to RabbitMQ.
// The mailer service consumes them and delivers the actual emails; from the
// API's perspective publishing is fire-and-forget.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/wryteup/jobboard-be/internal/api/model"
)

const (
	TemplateJobPublished = "job_published"
	TemplateJobDeclined  = "job_declined"
)

// Message is the wire format on the notifications queue.
type Message struct {
	Template       string `json:"template"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	JobUUID        string `json:"job_uuid"`
	JobTitle       string `json:"job_title"`
	Reason         string `json:"reason,omitempty"`
}

// Publisher is the broker surface the notifier needs. Implemented by the
// shared rabbitmq client.
type Publisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

type Notifier struct {
	publisher Publisher
	logger    *slog.Logger
}

func NewNotifier(publisher Publisher, logger *slog.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		logger:    logger,
	}
}

// JobPublished queues the publish notification for the job's owner.
func (n *Notifier) JobPublished(ctx context.Context, owner *model.User, job *model.Job) error {
	return n.publish(ctx, Message{
		Template:       TemplateJobPublished,
		RecipientEmail: owner.Email,
		RecipientName:  owner.Name,
		JobUUID:        job.UUID,
		JobTitle:       job.Title,
	})
}

// JobDeclined queues the decline notification, carrying the reviewer's
// free-text reason.
func (n *Notifier) JobDeclined(ctx context.Context, owner *model.User, job *model.Job, reason string) error {
	return n.publish(ctx, Message{
		Template:       TemplateJobDeclined,
		RecipientEmail: owner.Email,
		RecipientName:  owner.Name,
		JobUUID:        job.UUID,
		JobTitle:       job.Title,
		Reason:         reason,
	})
}

func (n *Notifier) publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := n.publisher.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.logger.Debug("Notification queued",
		slog.String("template", msg.Template),
		slog.String("recipient", msg.RecipientEmail),
		slog.String("job_uuid", msg.JobUUID),
	)

	return nil
}
