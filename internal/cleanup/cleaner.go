package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/terra-clan/career-assessment/internal/models"
)

// Target exposes the live sessions the cleaner may close
type Target interface {
	IdleSessions(cutoff time.Time) []models.SessionRef
	CloseSession(ref models.SessionRef) error
}

// Cleaner handles periodic cleanup of idle sessions
type Cleaner struct {
	target   Target
	interval time.Duration
	idleTTL  time.Duration
	now      func() time.Time
}

// NewCleaner creates a new cleanup worker
func NewCleaner(target Target, interval, idleTTL time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if idleTTL <= 0 {
		idleTTL = 2 * time.Hour
	}

	return &Cleaner{
		target:   target,
		interval: interval,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval, "idle_ttl", c.idleTTL)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Sweep closes every session idle for longer than the TTL and returns how many were closed
func (c *Cleaner) Sweep() int {
	cutoff := c.now().Add(-c.idleTTL)

	idle := c.target.IdleSessions(cutoff)
	if len(idle) == 0 {
		slog.Debug("no idle sessions found")
		return 0
	}

	slog.Info("found idle sessions", "count", len(idle))

	closed := 0
	for _, ref := range idle {
		if err := c.target.CloseSession(ref); err != nil {
			slog.Error("failed to close idle session",
				"error", err,
				"id", ref.ID,
				"kind", ref.Kind,
			)
			continue
		}
		closed++

		slog.Info("idle session closed",
			"id", ref.ID,
			"kind", ref.Kind,
			"last_active", ref.LastActive,
		)
	}
	return closed
}
