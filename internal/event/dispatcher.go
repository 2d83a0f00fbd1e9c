package event

import (
	"context"
	"fmt"
	"time"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository"
	"github.com/sirupsen/logrus"
)

type HandlerFunc func(ctx context.Context, payload []byte) error

// Dispatcher drains the outbox table in the background and routes each
// message to the handler registered for its topic. A handler error counts
// an attempt; the message stays pending until the attempt budget is spent.
type Dispatcher struct {
	outbox      repository.OutboxRepository
	handlers    map[string]HandlerFunc
	interval    time.Duration
	maxAttempts int
	log         *logrus.Entry
}

func NewDispatcher(outbox repository.OutboxRepository, interval time.Duration, maxAttempts int) *Dispatcher {
	return &Dispatcher{
		outbox:      outbox,
		handlers:    make(map[string]HandlerFunc),
		interval:    interval,
		maxAttempts: maxAttempts,
		log:         logrus.WithField("component", "outbox-dispatcher"),
	}
}

// Handle registers the handler for a topic. Call before Run.
func (d *Dispatcher) Handle(topic string, fn HandlerFunc) {
	d.handlers[topic] = fn
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.drain(ctx)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	msgs, err := d.outbox.Pending(ctx, 20)
	if err != nil {
		d.log.WithError(err).Error("failed to fetch pending messages")
		return
	}

	for _, msg := range msgs {
		fn, ok := d.handlers[msg.Topic]
		if !ok {
			err := fmt.Errorf("no handler registered for topic %q", msg.Topic)
			d.log.WithField("message", msg.ID).Warn(err)
			if err := d.outbox.MarkFailed(ctx, msg.ID, err, 0); err != nil {
				d.log.WithError(err).Error("failed to mark message failed")
			}
			continue
		}

		if err := fn(ctx, msg.Payload); err != nil {
			d.log.WithError(err).
				WithFields(logrus.Fields{"message": msg.ID, "topic": msg.Topic, "attempts": msg.Attempts + 1}).
				Warn("handler failed")
			if err := d.outbox.MarkFailed(ctx, msg.ID, err, d.maxAttempts); err != nil {
				d.log.WithError(err).Error("failed to mark message failed")
			}
			continue
		}

		if err := d.outbox.MarkDone(ctx, msg.ID); err != nil {
			d.log.WithError(err).Error("failed to mark message done")
		}
	}
}
