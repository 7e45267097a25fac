package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReservationService(t *testing.T) (*SlotReservationService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	return NewSlotReservationService(client, log, 30*time.Second), mr
}

func TestSlotReservationAcquire(t *testing.T) {
	svc, mr := newTestReservationService(t)
	ctx := context.Background()

	require.NoError(t, svc.Acquire(ctx, "2026-09-01", "8:00 AM - 8:30 AM", "session-1"))
	assert.True(t, mr.Exists("slot:hold:2026-09-01:8:00 AM - 8:30 AM"))

	// second submitter loses
	err := svc.Acquire(ctx, "2026-09-01", "8:00 AM - 8:30 AM", "session-2")
	assert.ErrorIs(t, err, ErrSlotHeld)

	// a different slot key is independent
	require.NoError(t, svc.Acquire(ctx, "2026-09-01", "8:30 AM - 9:00 AM", "session-2"))
	require.NoError(t, svc.Acquire(ctx, "2026-09-02", "8:00 AM - 8:30 AM", "session-2"))
}

func TestSlotReservationRelease(t *testing.T) {
	svc, _ := newTestReservationService(t)
	ctx := context.Background()

	require.NoError(t, svc.Acquire(ctx, "2026-09-01", "8:00 AM - 8:30 AM", "session-1"))
	require.NoError(t, svc.Release(ctx, "2026-09-01", "8:00 AM - 8:30 AM"))

	// freed hold can be re-acquired
	assert.NoError(t, svc.Acquire(ctx, "2026-09-01", "8:00 AM - 8:30 AM", "session-2"))
}

func TestSlotReservationHoldExpires(t *testing.T) {
	svc, mr := newTestReservationService(t)
	ctx := context.Background()

	require.NoError(t, svc.Acquire(ctx, "2026-09-01", "8:00 AM - 8:30 AM", "session-1"))

	mr.FastForward(31 * time.Second)

	assert.NoError(t, svc.Acquire(ctx, "2026-09-01", "8:00 AM - 8:30 AM", "session-2"))
}

func TestSlotReservationConcurrentSubmitters(t *testing.T) {
	svc, _ := newTestReservationService(t)
	ctx := context.Background()

	const submitters = 20
	var winners atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Acquire(ctx, "2026-09-01", "8:00 AM - 8:30 AM", "session"); err == nil {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}
