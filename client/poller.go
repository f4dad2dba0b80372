package client

import (
	"context"
	"sync"
	"time"

	"github.com/takdanai-ph/taskboard/domain"

	"github.com/charmbracelet/log"
)

// DefaultPollInterval matches the inbox refresh cadence of the web UI.
const DefaultPollInterval = 10 * time.Second

// NotificationPoller refreshes the notification inbox on a fixed interval.
// The cancel handle is stored so a view being torn down can stop its poller
// instead of leaking background work.
type NotificationPoller struct {
	client   *Client
	interval time.Duration
	onUpdate func([]domain.Notification)
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewNotificationPoller(c *Client, interval time.Duration, onUpdate func([]domain.Notification), logger *log.Logger) *NotificationPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &NotificationPoller{
		client:   c,
		interval: interval,
		onUpdate: onUpdate,
		logger:   logger,
	}
}

// Start fetches immediately, then keeps polling until Stop is called or ctx
// is done. Calling Start on a running poller is a no-op.
func (p *NotificationPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	done := make(chan struct{})
	p.done = done

	go func() {
		defer close(done)

		p.poll(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

func (p *NotificationPoller) poll(ctx context.Context) {
	notifications, err := p.client.Notifications(ctx)
	if err != nil {
		// No retry or backoff; the next tick tries again.
		p.logger.Warn("notification poll failed", "err", err)
		return
	}
	p.onUpdate(notifications)
}

// Stop cancels the poll loop and waits for it to exit. Safe to call more
// than once, or before Start.
func (p *NotificationPoller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
