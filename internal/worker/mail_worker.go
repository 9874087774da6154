package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/upeohq/backoffice-backend/internal/mail"
)

// MailWorker consumes the mail outbox queue and delivers messages through
// the configured Mailer.
type MailWorker struct {
	rdb    *redis.Client
	mailer mail.Mailer
	log    zerolog.Logger
}

// NewMailWorker creates a new MailWorker.
func NewMailWorker(rdb *redis.Client, mailer mail.Mailer, log zerolog.Logger) *MailWorker {
	return &MailWorker{
		rdb:    rdb,
		mailer: mailer,
		log:    log.With().Str("component", "mail_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *MailWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *MailWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, mail.OutboxQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	var msg mail.Message
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.mailer.Send(ctx, &msg); err != nil {
		w.log.Error().Err(err).
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("Send error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, mail.OutboxQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

// drain delivers all remaining items in the queue before shutdown.
func (w *MailWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, mail.OutboxQueue).Result()
		if err != nil {
			break
		}

		var msg mail.Message
		if err := json.Unmarshal([]byte(result), &msg); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.mailer.Send(ctx, &msg); err != nil {
			w.log.Error().Err(err).Str("to", msg.To).Msg("Drain send error")
			w.rdb.RPush(ctx, mail.OutboxQueue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
