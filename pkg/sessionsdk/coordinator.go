package sessionsdk

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// CoordinatorConfig tunes the background refresh loop. Zero values get
// sensible defaults from NewCoordinator.
type CoordinatorConfig struct {
	// Kickoff is the base delay before the first attempt.
	Kickoff time.Duration

	// Interval is the base period between attempts.
	Interval time.Duration

	// Jitter is the maximum random duration added to the kickoff delay and
	// to every interval, so many clients started together don't ping in
	// lockstep.
	Jitter time.Duration

	// LockThreshold is the advisory cross-process lock window: an attempt
	// is skipped when another coordinator touched the shared timestamp
	// within this duration.
	LockThreshold time.Duration

	// RequestTimeout bounds each refresh call.
	RequestTimeout time.Duration

	// Visible and Online report whether the surrounding UI is worth
	// refreshing for. Nil means always.
	Visible func() bool
	Online  func() bool

	// OnSessionEnded fires when the server declares the session over for
	// good (absolute lifetime exceeded). This is the hook that navigates
	// to the login page.
	OnSessionEnded func()

	Logger *slog.Logger
}

// Coordinator keeps the session alive by periodically asking the server to
// rotate it. It is best-effort throughout: every failure is swallowed after
// logging, and the worst outcome of any race is a redundant refresh call.
type Coordinator struct {
	client *Client
	lock   LastAttemptStore
	cfg    CoordinatorConfig
	logger *slog.Logger

	inFlight atomic.Bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewCoordinator builds a coordinator. A nil lock gets an in-process one.
func NewCoordinator(client *Client, lock LastAttemptStore, cfg CoordinatorConfig) *Coordinator {
	if cfg.Kickoff <= 0 {
		cfg.Kickoff = 5 * time.Second
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Jitter < 0 {
		cfg.Jitter = 0
	}
	if cfg.LockThreshold <= 0 {
		cfg.LockThreshold = cfg.Interval / 2
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if lock == nil {
		lock = &MemoryLastAttempt{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Coordinator{
		client: client,
		lock:   lock,
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start launches the background loop. Non-blocking; call Stop to tear down.
func (c *Coordinator) Start() {
	go c.run()
	c.logger.Info("refresh coordinator started",
		"interval", c.cfg.Interval,
		"jitter", c.cfg.Jitter,
	)
}

// Stop tears the loop down and waits for any in-progress attempt to finish.
func (c *Coordinator) Stop() {
	close(c.stopCh)
	<-c.doneCh
	c.logger.Info("refresh coordinator stopped")
}

func (c *Coordinator) run() {
	defer close(c.doneCh)

	timer := time.NewTimer(c.jittered(c.cfg.Kickoff))
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			c.RefreshNow(context.Background())
			timer.Reset(c.jittered(c.cfg.Interval))
		case <-c.stopCh:
			return
		}
	}
}

// jittered adds a random duration in [0, Jitter) to the base delay.
func (c *Coordinator) jittered(base time.Duration) time.Duration {
	if c.cfg.Jitter == 0 {
		return base
	}
	return base + rand.N(c.cfg.Jitter)
}

// RefreshNow performs one guarded refresh attempt. It is what the timer
// fires, and it is also the hook to call when the tab becomes visible or the
// network comes back. Safe to call concurrently; overlapping calls collapse
// into one.
func (c *Coordinator) RefreshNow(ctx context.Context) {
	if c.cfg.Visible != nil && !c.cfg.Visible() {
		c.logger.Debug("refresh skipped, not visible")
		return
	}
	if c.cfg.Online != nil && !c.cfg.Online() {
		c.logger.Debug("refresh skipped, offline")
		return
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Debug("refresh skipped, attempt in flight")
		return
	}
	defer c.inFlight.Store(false)

	now := time.Now()

	// Advisory cross-process check: read, then immediately claim. Not
	// atomic, and deliberately so. Rotation is idempotent server-side, the
	// lock only trims redundant traffic.
	last, err := c.lock.Last()
	if err != nil {
		c.logger.Warn("last-attempt read failed", "err", err)
	} else if now.Sub(last) < c.cfg.LockThreshold {
		c.logger.Debug("refresh skipped, another client attempted recently",
			"since_last", now.Sub(last),
		)
		return
	}
	if err := c.lock.Touch(now); err != nil {
		c.logger.Warn("last-attempt write failed", "err", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.client.Refresh(ctx)
	if err != nil {
		// Best-effort: network trouble never surfaces to the UI.
		c.logger.Debug("refresh attempt failed", "err", err)
		return
	}

	if resp.SessionEnded() {
		c.logger.Info("session reached absolute lifetime",
			"age_sec", resp.AgeSec,
			"max_sec", resp.MaxSec,
		)
		if c.cfg.OnSessionEnded != nil {
			c.cfg.OnSessionEnded()
		}
		return
	}

	c.logger.Debug("refresh attempt completed",
		"refreshed", resp.Refreshed,
		"reason", resp.Reason,
	)
}
