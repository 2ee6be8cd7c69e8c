// Package health polls the control board and network-table links and
// turns the results into tray icon state changes.
package health

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/controlboard/internal/logger"
	"github.com/user/controlboard/internal/status"
)

var errCheckPanicked = errors.New("health check panicked")

// Checker reports nil when the monitored link is healthy.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// Snapshot is the outcome of one poll.
type Snapshot struct {
	BoardOK         bool
	NetworkTableOK  bool
	Icon            status.IconState
	Changed         bool // Icon differs from the previous poll
	BoardErr        error
	NetworkTableErr error
	At              time.Time
}

// Monitor polls both links on an interval. The icon selector is only
// touched from the goroutine running the polls.
type Monitor struct {
	mu       sync.Mutex
	board    Checker
	nt       Checker
	interval time.Duration
	selector *status.Selector
	last     Snapshot
	onChange func(Snapshot)
	onUpdate func(Snapshot)

	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMonitor creates a monitor; it does not poll until Start.
func NewMonitor(board, nt Checker, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = time.Second
	}
	return &Monitor{
		board:    board,
		nt:       nt,
		interval: interval,
		selector: status.NewSelector(),
		last:     Snapshot{Icon: status.IconNoBoardNoNT},
	}
}

// SetOnChange sets a callback that fires when the icon state changes.
func (m *Monitor) SetOnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// SetOnUpdate sets a callback that fires after every poll.
func (m *Monitor) SetOnUpdate(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = fn
}

// Start begins polling. An immediate poll runs before the first tick.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	m.running = true
	m.cancel = cancel
	m.done = make(chan struct{})
	interval := m.interval
	done := m.done
	m.mu.Unlock()

	go func() {
		defer logger.Recover("healthPollLoop")
		defer close(done)
		m.pollLoop(ctx, interval)
	}()
}

// Stop stops polling and waits for the loop to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	cancel()
	<-done
}

// Snapshot returns the result of the last poll.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *Monitor) pollLoop(ctx context.Context, interval time.Duration) {
	m.PollOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.PollOnce(ctx)
		}
	}
}

// PollOnce runs both checks concurrently and records the result. Callers
// other than the poll loop must not run it while the monitor is started.
func (m *Monitor) PollOnce(ctx context.Context) Snapshot {
	// A check that panics leaves its error at errCheckPanicked.
	boardErr, ntErr := errCheckPanicked, errCheckPanicked

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer logger.Recover("boardCheck")
		boardErr = m.board.Check(gctx)
		return nil
	})
	g.Go(func() error {
		defer logger.Recover("networkTableCheck")
		ntErr = m.nt.Check(gctx)
		return nil
	})
	_ = g.Wait()

	snap := Snapshot{
		BoardOK:         boardErr == nil,
		NetworkTableOK:  ntErr == nil,
		BoardErr:        boardErr,
		NetworkTableErr: ntErr,
		At:              time.Now(),
	}
	snap.Icon, snap.Changed = m.selector.Update(snap.BoardOK, snap.NetworkTableOK)

	if snap.Changed {
		logger.Status("Health changed: %s (board=%v, nt=%v)", snap.Icon, snap.BoardOK, snap.NetworkTableOK)
	}

	m.mu.Lock()
	m.last = snap
	onChange, onUpdate := m.onChange, m.onUpdate
	m.mu.Unlock()

	if snap.Changed && onChange != nil {
		onChange(snap)
	}
	if onUpdate != nil {
		onUpdate(snap)
	}
	return snap
}
