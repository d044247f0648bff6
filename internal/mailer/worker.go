package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/wryteup/jobboard-be/internal/notify"
	"github.com/wryteup/jobboard-be/shared/rabbitmq"
)

// Config holds mailer worker configuration
type Config struct {
	Logger        *slog.Logger
	RabbitClient  *rabbitmq.Client
	Sender        Sender
	Concurrency   int
	PrefetchCount int
	WorkerID      string
}

// Worker consumes notification messages and delivers them as emails through
// a pool of goroutines with manual acknowledgment.
type Worker struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	sender        Sender
	concurrency   int
	prefetchCount int
	workerID      string

	deliveries chan amqp.Delivery
	wg         sync.WaitGroup
}

// NewWorker creates a new mailer worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		rabbitClient:  cfg.RabbitClient,
		sender:        cfg.Sender,
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		workerID:      cfg.WorkerID,
		deliveries:    make(chan amqp.Delivery),
	}
}

// Start sets up the consumer, spawns the delivery pool, and blocks until the
// context is canceled and the pool drains.
func (w *Worker) Start(ctx context.Context) error {
	channel := w.rabbitClient.Channel()
	if channel == nil {
		return fmt.Errorf("rabbitmq channel is nil")
	}

	if err := channel.Qos(w.prefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	messages, err := w.rabbitClient.Consume(w.workerID)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("Mailer worker started",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.deliveryLoop(i)
	}

	w.dispatch(ctx, messages)

	close(w.deliveries)
	w.wg.Wait()

	w.logger.Info("Mailer worker stopped")
	return nil
}

// dispatch forwards broker deliveries to the pool until the context is
// canceled or the delivery channel closes.
func (w *Worker) dispatch(ctx context.Context, messages <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Dispatcher stopped - context canceled")
			return

		case delivery, ok := <-messages:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			select {
			case w.deliveries <- delivery:
			case <-ctx.Done():
				// Requeue so another consumer picks it up after shutdown.
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					w.logger.Error("Failed to NACK message on shutdown",
						slog.Any("error", nackErr),
					)
				}
				return
			}
		}
	}
}

// deliveryLoop is one pool goroutine: decode, render, send, ack/nack.
func (w *Worker) deliveryLoop(workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)

	for delivery := range w.deliveries {
		err := w.handleDelivery(&delivery)
		if err == nil {
			if ackErr := delivery.Ack(false); ackErr != nil {
				w.logger.Error("Failed to ACK message",
					slog.String("worker_name", workerName),
					slog.Any("error", ackErr),
				)
			}
			continue
		}

		// Malformed payloads and unknown templates are permanent failures;
		// requeueing would loop them forever. Send failures are transient.
		requeue := !errors.Is(err, ErrUnknownTemplate) && !isDecodeError(err)

		w.logger.Error("Failed to deliver notification",
			slog.String("worker_name", workerName),
			slog.Bool("requeue", requeue),
			slog.Any("error", err),
		)

		if nackErr := delivery.Nack(false, requeue); nackErr != nil {
			w.logger.Error("Failed to NACK message",
				slog.String("worker_name", workerName),
				slog.Any("error", nackErr),
			)
		}
	}
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "failed to decode notification: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func isDecodeError(err error) bool {
	var de *decodeError
	return errors.As(err, &de)
}

func (w *Worker) handleDelivery(delivery *amqp.Delivery) error {
	var msg notify.Message
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		return &decodeError{err: err}
	}

	if msg.RecipientEmail == "" {
		return &decodeError{err: fmt.Errorf("missing recipient email")}
	}

	subject, body, err := RenderEmail(msg)
	if err != nil {
		return err
	}

	if err := w.sender.Send(msg.RecipientEmail, subject, body); err != nil {
		return err
	}

	w.logger.Info("Notification email sent",
		slog.String("template", msg.Template),
		slog.String("recipient", msg.RecipientEmail),
		slog.String("job_uuid", msg.JobUUID),
	)

	return nil
}
