package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/takdanai-ph/taskboard/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerDeliversUpdates(t *testing.T) {
	env := newTestEnv(t)

	manager := env.login(t, "mallory")
	env.createTask(t, manager, "ping bob", "bob")

	bob := env.login(t, "bob")
	updates := make(chan []domain.Notification, 16)
	poller := NewNotificationPoller(bob, 20*time.Millisecond, func(n []domain.Notification) {
		updates <- n
	}, testLogger())

	poller.Start(context.Background())
	defer poller.Stop()

	// The first fetch happens immediately, the next after one interval.
	for i := 0; i < 2; i++ {
		select {
		case notifications := <-updates:
			require.Len(t, notifications, 1)
			assert.Contains(t, notifications[0].Message, "ping bob")
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a poll")
		}
	}
}

func TestPollerStop(t *testing.T) {
	env := newTestEnv(t)
	bob := env.login(t, "bob")

	var polls int64
	poller := NewNotificationPoller(bob, 10*time.Millisecond, func([]domain.Notification) {
		atomic.AddInt64(&polls, 1)
	}, testLogger())

	poller.Start(context.Background())
	require.Eventually(t, func() bool { return atomic.LoadInt64(&polls) >= 2 },
		2*time.Second, 5*time.Millisecond)

	poller.Stop()
	after := atomic.LoadInt64(&polls)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&polls), "no polls after Stop")

	// Stop twice, and on a never-started poller, is harmless.
	poller.Stop()
	NewNotificationPoller(bob, time.Second, func([]domain.Notification) {}, testLogger()).Stop()
}

func TestPollerStartTwiceIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	bob := env.login(t, "bob")

	poller := NewNotificationPoller(bob, 10*time.Millisecond, func([]domain.Notification) {}, testLogger())
	poller.Start(context.Background())
	poller.Start(context.Background())
	poller.Stop()
}

func TestPollerDefaultInterval(t *testing.T) {
	env := newTestEnv(t)
	bob := env.login(t, "bob")

	poller := NewNotificationPoller(bob, 0, func([]domain.Notification) {}, testLogger())
	assert.Equal(t, DefaultPollInterval, poller.interval)
}
