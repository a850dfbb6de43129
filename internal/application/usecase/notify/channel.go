package notify

import (
	"sync"
	"time"

	"github.com/khoahotran/scholar-folio/internal/domain/notification"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.uber.org/zap"
)

// Channel holds at most one notification. A new message overwrites the old one.
type Channel struct {
	mu      sync.Mutex
	current *notification.Notification
	seq     uint64
	now     func() time.Time
	logger  logger.Logger
}

func NewChannel(log logger.Logger) *Channel {
	return &Channel{now: time.Now, logger: log}
}

func (c *Channel) Notify(message string, kind notification.Kind) notification.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	n := notification.Notification{
		Message:   message,
		Kind:      kind,
		Seq:       c.seq,
		CreatedAt: c.now(),
	}
	c.current = &n
	c.logger.Debug("Notification published", zap.String("type", string(kind)), zap.Uint64("seq", n.Seq))
	return n
}

func (c *Channel) Clear() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

// ClearIf clears the notification only if seq is still the current one. It
// reports whether anything was cleared.
func (c *Channel) ClearIf(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || c.current.Seq != seq {
		return false
	}
	c.current = nil
	return true
}

func (c *Channel) Current() (notification.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return notification.Notification{}, false
	}
	return *c.current, true
}
