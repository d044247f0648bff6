package mailer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wryteup/jobboard-be/internal/notify"
)

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	sent []sentEmail
	err  error
}

func (s *fakeSender) Send(to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func newTestWorker(sender *fakeSender) *Worker {
	return NewWorker(&Config{
		Logger:        slog.New(slog.DiscardHandler),
		Sender:        sender,
		Concurrency:   1,
		PrefetchCount: 1,
		WorkerID:      "mailer-test",
	})
}

func deliveryFor(t *testing.T, msg notify.Message) *amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return &amqp.Delivery{Body: body}
}

func TestHandleDelivery_SendsEmail(t *testing.T) {
	sender := &fakeSender{}
	worker := newTestWorker(sender)

	err := worker.handleDelivery(deliveryFor(t, notify.Message{
		Template:       notify.TemplateJobPublished,
		RecipientEmail: "owner@example.com",
		RecipientName:  "Pat Owner",
		JobUUID:        "job-uuid-7",
		JobTitle:       "Logo Design Request",
	}))
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "owner@example.com", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].subject, "Logo Design Request")
	assert.Contains(t, sender.sent[0].body, "Hi Pat Owner,")
}

func TestHandleDelivery_PermanentFailures(t *testing.T) {
	// Malformed payloads and unknown templates must not be requeued.
	tests := []struct {
		name     string
		delivery *amqp.Delivery
	}{
		{
			name:     "invalid json",
			delivery: &amqp.Delivery{Body: []byte("{not json")},
		},
		{
			name: "missing recipient",
			delivery: deliveryFor(t, notify.Message{
				Template: notify.TemplateJobPublished,
				JobTitle: "Logo Design Request",
			}),
		},
		{
			name: "unknown template",
			delivery: deliveryFor(t, notify.Message{
				Template:       "password_reset",
				RecipientEmail: "owner@example.com",
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			worker := newTestWorker(sender)

			err := worker.handleDelivery(tt.delivery)
			require.Error(t, err)

			permanent := errors.Is(err, ErrUnknownTemplate) || isDecodeError(err)
			assert.True(t, permanent, "error must be classified as permanent: %v", err)
			assert.Empty(t, sender.sent)
		})
	}
}

func TestHandleDelivery_SendFailureIsTransient(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp connection refused")}
	worker := newTestWorker(sender)

	err := worker.handleDelivery(deliveryFor(t, notify.Message{
		Template:       notify.TemplateJobPublished,
		RecipientEmail: "owner@example.com",
		JobTitle:       "Logo Design Request",
	}))
	require.Error(t, err)

	assert.False(t, errors.Is(err, ErrUnknownTemplate))
	assert.False(t, isDecodeError(err), "a send failure should be requeued")
}
