package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/sushihentaime/inkwell/internal/common"
)

const readCounterMaxRetries = 5

// ReadCounter credits author reads published on the blog exchange.
type ReadCounter struct {
	mb        common.MessageConsumer
	m         Store
	logger    *slog.Logger
	baseDelay time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewReadCounter(mb common.MessageConsumer, m Store, logger *slog.Logger) *ReadCounter {
	ctx, cancel := context.WithCancel(context.Background())
	return &ReadCounter{
		mb:        mb,
		m:         m,
		logger:    logger,
		baseDelay: 500 * time.Millisecond,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start consumes read events until Close is called.
func (c *ReadCounter) Start() error {
	msgs, err := c.mb.Consume(common.BlogReadKey, common.BlogExchange, common.BlogReadQueue)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var event common.ReadEvent
				err := json.Unmarshal(msg.Body, &event)
				if err != nil || event.Username == "" {
					c.logger.Error("could not decode read event", slog.Any("error", err))
					msg.Ack(false)
					continue
				}

				c.apply(event)
				msg.Ack(false)

			case <-c.ctx.Done():
				c.logger.Info("stopping read counter due to context cancellation")
				return
			}
		}
	}()

	return nil
}

// apply retries transient store failures with exponential backoff and jitter. Unknown
// authors are dropped.
func (c *ReadCounter) apply(event common.ReadEvent) {
	delta := event.Delta
	if delta == 0 {
		delta = 1
	}

	for attempt := 0; attempt < readCounterMaxRetries; attempt++ {
		err := c.m.IncrementReadCount(c.ctx, event.Username, delta)
		switch {
		case err == nil:
			return
		case errors.Is(err, ErrNotFound):
			c.logger.Info("dropping read event for unknown author", slog.String("username", event.Username))
			return
		}

		delay := time.Duration(rand.Int63n(int64(c.baseDelay) << uint(attempt)))
		c.logger.Info("delaying read count", slog.String("username", event.Username), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-c.ctx.Done():
			return
		}
	}

	c.logger.Error("could not record read", slog.String("username", event.Username))
}

func (c *ReadCounter) Close() {
	c.cancel()
}
