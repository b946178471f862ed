package connectivity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestState(t *testing.T) {
	s := NewState(true)
	assert.True(t, s.Offline())

	assert.True(t, s.swap(false), "true -> false is a transition")
	assert.False(t, s.swap(false), "false -> false is not a transition")
	assert.False(t, s.Offline())
}

func TestMonitor_Check_Transitions(t *testing.T) {
	var pingErr error
	prober := &ProberMock{
		PingFunc: func(ctx context.Context) error {
			return pingErr
		},
	}

	state := NewState(false)
	m := NewMonitor(state, prober, time.Minute, false, testLogger())

	var events []Event
	m.OnChange(func(ev Event) { events = append(events, ev) })

	ctx := context.Background()

	// online -> online: событий нет
	assert.False(t, m.Check(ctx))
	assert.Empty(t, events)

	// online -> offline
	pingErr = errors.New("connection refused")
	assert.True(t, m.Check(ctx))
	assert.True(t, state.Offline())
	require.Len(t, events, 1)
	assert.True(t, events[0].Offline)

	// offline -> offline: событий нет
	m.Check(ctx)
	assert.Len(t, events, 1)

	// offline -> online
	pingErr = nil
	assert.False(t, m.Check(ctx))
	require.Len(t, events, 2)
	assert.False(t, events[1].Offline)

	assert.Len(t, prober.PingCalls(), 4)
}

func TestMonitor_ForcedOffline(t *testing.T) {
	prober := &ProberMock{}

	state := NewState(false)
	m := NewMonitor(state, prober, time.Millisecond, true, testLogger())

	assert.True(t, state.Offline())
	assert.True(t, m.Check(context.Background()))
	assert.Empty(t, prober.PingCalls(), "forced offline never probes")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	m.Run(ctx)
	assert.Empty(t, prober.PingCalls())
}

func TestMonitor_Run_StopsOnCancel(t *testing.T) {
	prober := &ProberMock{
		PingFunc: func(ctx context.Context) error { return nil },
	}
	m := NewMonitor(NewState(true), prober, 5*time.Millisecond, false, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return !m.State().Offline() }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
