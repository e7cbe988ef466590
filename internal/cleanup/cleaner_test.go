package cleanup

import (
	"errors"
	"testing"
	"time"

	"github.com/terra-clan/career-assessment/internal/models"
)

type fakeTarget struct {
	cutoff time.Time
	idle   []models.SessionRef
	closed []string
	fail   string
}

func (f *fakeTarget) IdleSessions(cutoff time.Time) []models.SessionRef {
	f.cutoff = cutoff
	return f.idle
}

func (f *fakeTarget) CloseSession(ref models.SessionRef) error {
	if ref.ID == f.fail {
		return errors.New("close failed")
	}
	f.closed = append(f.closed, ref.ID)
	return nil
}

func TestSweepClosesIdleSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	target := &fakeTarget{
		idle: []models.SessionRef{
			{ID: "a", Kind: models.KindStudent},
			{ID: "b", Kind: models.KindEditor},
			{ID: "c", Kind: models.KindStudent},
		},
		fail: "b",
	}

	c := NewCleaner(target, time.Minute, 30*time.Minute)
	c.now = func() time.Time { return now }

	if got := c.Sweep(); got != 2 {
		t.Errorf("expected 2 sessions closed, got %d", got)
	}
	if want := now.Add(-30 * time.Minute); !target.cutoff.Equal(want) {
		t.Errorf("expected cutoff %s, got %s", want, target.cutoff)
	}
	if len(target.closed) != 2 || target.closed[0] != "a" || target.closed[1] != "c" {
		t.Errorf("unexpected closed sessions %v", target.closed)
	}
}

func TestNewCleanerDefaults(t *testing.T) {
	c := NewCleaner(&fakeTarget{}, 0, 0)
	if c.interval != 5*time.Minute || c.idleTTL != 2*time.Hour {
		t.Errorf("unexpected defaults interval=%s ttl=%s", c.interval, c.idleTTL)
	}
	if c.Sweep() != 0 {
		t.Error("expected nothing to sweep")
	}
}
