// Package notify keeps the user-facing notification queue: every failure
// becomes a dismissable notice; transient notices expire on their own.
package notify

import (
	"sync"
	"time"

	"github.com/motormint/motormint/internal/errkind"
)

// DefaultTTL is how long a transient notice stays visible.
const DefaultTTL = 5 * time.Second

// Notice is one user-visible message.
type Notice struct {
	Kind    errkind.Kind
	Message string
	posted  time.Time
}

// Center holds active notices.
type Center struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	items []Notice
}

// NewCenter creates a Center with ttl (zero means DefaultTTL).
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// Push posts a notice.
func (c *Center) Push(kind errkind.Kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, Notice{Kind: kind, Message: message, posted: c.now()})
}

// Active returns the notices that have not expired, oldest first.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireLocked()
	out := make([]Notice, len(c.items))
	copy(out, c.items)
	return out
}

// Dismiss removes the notice at index i (as returned by Active).
func (c *Center) Dismiss(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireLocked()
	if i < 0 || i >= len(c.items) {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

func (c *Center) expireLocked() {
	cutoff := c.now().Add(-c.ttl)
	kept := c.items[:0]
	for _, n := range c.items {
		if n.posted.After(cutoff) {
			kept = append(kept, n)
		}
	}
	c.items = kept
}
