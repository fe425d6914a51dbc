package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func waitForPings(t *testing.T, pings <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-pings:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for probe %d of %d", i+1, n)
		}
	}
}

func TestRegistry_ProbesAndSnapshots(t *testing.T) {
	r := NewRegistry(testLogger())
	r.checkInterval = 10 * time.Millisecond

	pings := make(chan struct{}, 64)
	r.Register("stub", pingFunc(func(context.Context) error {
		pings <- struct{}{}
		return nil
	}))

	r.Start()
	defer r.Stop()
	waitForPings(t, pings, 2) // startup probe plus at least one periodic tick

	statuses := r.Snapshot()
	require.Len(t, statuses, 1)
	assert.Equal(t, "stub", statuses[0].Provider)
	assert.True(t, statuses[0].Healthy)
	assert.False(t, statuses[0].LastCheck.IsZero())
}

func TestRegistry_PeriodicProbingSurvivesRestart(t *testing.T) {
	r := NewRegistry(testLogger())
	r.checkInterval = 10 * time.Millisecond

	pings := make(chan struct{}, 64)
	r.Register("stub", pingFunc(func(context.Context) error {
		pings <- struct{}{}
		return nil
	}))

	r.Start()
	waitForPings(t, pings, 2)
	r.Stop()

	// Let any in-flight probe from the first run land, then drain.
	time.Sleep(50 * time.Millisecond)
	for {
		select {
		case <-pings:
			continue
		default:
		}
		break
	}

	// A restarted registry must keep ticking, not just fire the startup
	// probe and exit.
	r.Start()
	defer r.Stop()
	waitForPings(t, pings, 3)
}
