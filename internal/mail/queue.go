package mail

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// OutboxQueue is the Redis list outbound emails are pushed onto.
const OutboxQueue = "mail_outbox_queue"

// Enqueuer pushes messages onto the outbox queue. Requests never block on
// provider delivery; a worker drains the queue.
type Enqueuer struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewEnqueuer creates a new Enqueuer.
func NewEnqueuer(rdb *redis.Client, log zerolog.Logger) *Enqueuer {
	return &Enqueuer{
		rdb: rdb,
		log: log.With().Str("component", "mail_enqueuer").Logger(),
	}
}

// Enqueue queues a message for delivery. Failures are logged, never
// propagated; mail is best-effort.
func (e *Enqueuer) Enqueue(ctx context.Context, msg *Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		e.log.Error().Err(err).Str("to", msg.To).Msg("Marshal error")
		return
	}

	if err := e.rdb.RPush(ctx, OutboxQueue, payload).Err(); err != nil {
		e.log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("Enqueue error")
	}
}
