package remote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mmynk/attendance/internal/metrics"
	"github.com/mmynk/attendance/internal/models"
)

// DefaultPollInterval is how often the remote store is pulled.
const DefaultPollInterval = 3 * time.Second

// ApplyFunc merges pulled groups into local state and reports whether
// anything changed.
type ApplyFunc func(groups map[string]*models.GroupRecord) bool

// Poller pulls the remote store on a fixed schedule and hands the result to
// an ApplyFunc. Failed pulls are logged and counted; local state is kept.
type Poller struct {
	remote   Remote
	interval time.Duration
	apply    ApplyFunc
	metrics  *metrics.Metrics
}

// NewPoller creates a poller. A non-positive interval means DefaultPollInterval.
func NewPoller(remote Remote, interval time.Duration, apply ApplyFunc, m *metrics.Metrics) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{remote: remote, interval: interval, apply: apply, metrics: m}
}

// Poll performs one pull and merge.
func (p *Poller) Poll(ctx context.Context) error {
	groups, err := p.remote.Pull(ctx)
	p.metrics.Pull(err)
	if err != nil {
		slog.Warn("Poll failed, keeping local state", "error", err)
		return err
	}

	if p.apply(groups) {
		p.metrics.Merged()
		slog.Debug("Poll merged remote changes", "groups", len(groups))
	}
	return nil
}

// Run polls on the configured interval until ctx is cancelled. Ticks that
// arrive while a poll is still running are skipped.
func (p *Poller) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", p.interval), func() {
		p.Poll(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule poller: %w", err)
	}

	slog.Info("Poller started", "interval", p.interval)
	c.Start()
	<-ctx.Done()

	// Wait for a running poll to finish.
	<-c.Stop().Done()
	slog.Info("Poller stopped")
	return nil
}
