package mail

import (
	"context"
	"sync"
	"time"

	"github.com/fanzone/fanzone-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const sendTimeout = 15 * time.Second

type queuedMessage struct {
	msg      Message
	attempts int
}

// Outbox decouples email delivery from the request path. Enqueue returns
// immediately; a failed delivery is kept and re-attempted on a cron cadence
// until it succeeds or runs out of attempts. A dropped message is an error
// log, never a request failure.
type Outbox struct {
	mailer      Mailer
	maxAttempts int

	mu      sync.Mutex
	pending []queuedMessage

	cron      *cron.Cron
	retrySpec string
}

func NewOutbox(mailer Mailer, retrySpec string, maxAttempts int) *Outbox {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Outbox{
		mailer:      mailer,
		maxAttempts: maxAttempts,
		cron:        cron.New(),
		retrySpec:   retrySpec,
	}
}

// Start begins the retry schedule.
func (o *Outbox) Start() error {
	_, err := o.cron.AddFunc(o.retrySpec, func() {
		o.Flush()
	})
	if err != nil {
		logger.Error("Failed to schedule mail outbox retries", err, map[string]interface{}{
			"spec": o.retrySpec,
		})
		return err
	}

	o.cron.Start()
	logger.Info("Mail outbox started", map[string]interface{}{
		"retry_spec":   o.retrySpec,
		"max_attempts": o.maxAttempts,
	})
	return nil
}

// Stop halts the retry schedule. Pending messages stay in memory.
func (o *Outbox) Stop() {
	o.cron.Stop()
	logger.Info("Mail outbox stopped", map[string]interface{}{
		"pending": o.PendingCount(),
	})
}

// Enqueue accepts a message for delivery and returns immediately. The first
// attempt happens on its own goroutine.
func (o *Outbox) Enqueue(msg Message) {
	go o.deliver(queuedMessage{msg: msg})
}

// Flush re-attempts every pending message once. Exposed for the cron job
// and for tests.
func (o *Outbox) Flush() {
	o.mu.Lock()
	batch := o.pending
	o.pending = nil
	o.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	logger.Debug("Retrying pending mail", map[string]interface{}{
		"count": len(batch),
	})
	for _, q := range batch {
		o.deliver(q)
	}
}

// PendingCount reports how many messages await a retry.
func (o *Outbox) PendingCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

func (o *Outbox) deliver(q queuedMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	q.attempts++
	if err := o.mailer.Send(ctx, q.msg); err != nil {
		if q.attempts >= o.maxAttempts {
			logger.Error("Dropping undeliverable mail", err, map[string]interface{}{
				"to":       q.msg.To,
				"subject":  q.msg.Subject,
				"attempts": q.attempts,
			})
			return
		}

		o.mu.Lock()
		o.pending = append(o.pending, q)
		o.mu.Unlock()

		logger.Warn("Mail delivery failed, queued for retry", map[string]interface{}{
			"to":       q.msg.To,
			"subject":  q.msg.Subject,
			"attempts": q.attempts,
		})
		return
	}

	logger.Debug("Mail delivered", map[string]interface{}{
		"to":      q.msg.To,
		"subject": q.msg.Subject,
	})
}
