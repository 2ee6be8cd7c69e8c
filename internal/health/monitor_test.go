package health

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/user/controlboard/internal/status"
)

// toggle is a Checker whose health the test flips.
type toggle struct {
	ok atomic.Bool
}

func (t *toggle) Check(ctx context.Context) error {
	if t.ok.Load() {
		return nil
	}
	return errors.New("down")
}

func TestPollOnceDrivesSelector(t *testing.T) {
	board, nt := &toggle{}, &toggle{}
	m := NewMonitor(board, nt, time.Hour)

	var changes []status.IconState
	m.SetOnChange(func(s Snapshot) { changes = append(changes, s.Icon) })

	ctx := context.Background()

	snap := m.PollOnce(ctx)
	assert.False(t, snap.Changed)
	assert.Equal(t, status.IconNoBoardNoNT, snap.Icon)
	assert.Error(t, snap.BoardErr)

	board.ok.Store(true)
	snap = m.PollOnce(ctx)
	assert.True(t, snap.Changed)
	assert.Equal(t, status.IconBoardNoNT, snap.Icon)
	assert.NoError(t, snap.BoardErr)

	snap = m.PollOnce(ctx)
	assert.False(t, snap.Changed)

	board.ok.Store(false)
	nt.ok.Store(true)
	m.PollOnce(ctx)

	board.ok.Store(true)
	m.PollOnce(ctx)

	assert.Equal(t, []status.IconState{status.IconBoardNoNT, status.IconNoBoardNT, status.IconBoardNT}, changes)
	assert.Equal(t, status.IconBoardNT, m.Snapshot().Icon)
}

func TestChecksRunConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	barrier := CheckerFunc(func(ctx context.Context) error {
		wg.Done()
		wg.Wait()
		return nil
	})

	m := NewMonitor(barrier, barrier, time.Hour)
	done := make(chan Snapshot)
	go func() { done <- m.PollOnce(context.Background()) }()

	select {
	case snap := <-done:
		assert.Equal(t, status.IconBoardNT, snap.Icon)
	case <-time.After(2 * time.Second):
		t.Fatal("checks did not run concurrently")
	}
}

func TestPanickingCheckIsUnhealthy(t *testing.T) {
	boom := CheckerFunc(func(context.Context) error { panic("driver bug") })
	ok := CheckerFunc(func(context.Context) error { return nil })

	m := NewMonitor(boom, ok, time.Hour)
	snap := m.PollOnce(context.Background())
	assert.False(t, snap.BoardOK)
	assert.True(t, snap.NetworkTableOK)
	assert.Equal(t, status.IconNoBoardNT, snap.Icon)
}

func TestStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	board, nt := &toggle{}, &toggle{}
	board.ok.Store(true)
	nt.ok.Store(true)

	m := NewMonitor(board, nt, 10*time.Millisecond)

	var updates atomic.Int32
	changed := make(chan Snapshot, 4)
	m.SetOnUpdate(func(Snapshot) { updates.Add(1) })
	m.SetOnChange(func(s Snapshot) { changed <- s })

	m.Start(context.Background())
	m.Start(context.Background())

	select {
	case s := <-changed:
		assert.Equal(t, status.IconBoardNT, s.Icon)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	require.Eventually(t, func() bool { return updates.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	m.Stop()
	m.Stop()

	n := updates.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, updates.Load(), "no polls after Stop")
}

func TestStopOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ok := CheckerFunc(func(context.Context) error { return nil })
	m := NewMonitor(ok, ok, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)
	cancel()
	m.Stop()
}
