package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyMailer fails the first failures sends, then succeeds.
type flakyMailer struct {
	mu       sync.Mutex
	failures int
	sent     []Message
	attempts int
}

func (m *flakyMailer) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.attempts <= m.failures {
		return errors.New("provider unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *flakyMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func testMessage() Message {
	return Message{
		To:      []string{"arben@example.com"},
		Subject: "Konfirmim Porosie - #1",
		HTML:    "<p>Faleminderit!</p>",
	}
}

func TestOutbox_DeliversImmediately(t *testing.T) {
	mailer := &flakyMailer{}
	outbox := NewOutbox(mailer, "@every 1h", 3)

	outbox.Enqueue(testMessage())

	require.Eventually(t, func() bool {
		return mailer.sentCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, outbox.PendingCount())
}

func TestOutbox_FailedSendIsQueued(t *testing.T) {
	mailer := &flakyMailer{failures: 1}
	outbox := NewOutbox(mailer, "@every 1h", 3)

	outbox.Enqueue(testMessage())

	require.Eventually(t, func() bool {
		return outbox.PendingCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, mailer.sentCount())
}

func TestOutbox_FlushRetriesPending(t *testing.T) {
	mailer := &flakyMailer{failures: 1}
	outbox := NewOutbox(mailer, "@every 1h", 3)

	outbox.Enqueue(testMessage())
	require.Eventually(t, func() bool {
		return outbox.PendingCount() == 1
	}, time.Second, 10*time.Millisecond)

	outbox.Flush()

	assert.Equal(t, 1, mailer.sentCount())
	assert.Equal(t, 0, outbox.PendingCount())
}

func TestOutbox_DropsAfterMaxAttempts(t *testing.T) {
	mailer := &flakyMailer{failures: 100}
	outbox := NewOutbox(mailer, "@every 1h", 2)

	outbox.Enqueue(testMessage())
	require.Eventually(t, func() bool {
		return outbox.PendingCount() == 1
	}, time.Second, 10*time.Millisecond)

	// Second attempt exhausts the budget; the message is dropped, not
	// re-queued.
	outbox.Flush()

	assert.Equal(t, 0, outbox.PendingCount())
	assert.Equal(t, 0, mailer.sentCount())
}

func TestOutbox_IndependentFailures(t *testing.T) {
	mailer := &flakyMailer{failures: 1}
	outbox := NewOutbox(mailer, "@every 1h", 3)

	// First message fails, second succeeds.
	outbox.Enqueue(testMessage())
	require.Eventually(t, func() bool {
		return outbox.PendingCount() == 1
	}, time.Second, 10*time.Millisecond)

	second := testMessage()
	second.To = []string{"pronari@fanzone.al"}
	outbox.Enqueue(second)

	require.Eventually(t, func() bool {
		return mailer.sentCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, outbox.PendingCount())
}
