package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another booking already holds the slot key
var ErrSlotHeld = errors.New("slot is already held by another booking")

// acquireHoldScript atomically claims a slot key for one submitting
// booking. SET NX + PX as a single script: either the caller gets the
// hold or learns it is taken, with no window in between. Losers get 0.
var acquireHoldScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 1 then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
	return 1
`)

const slotHoldKeyPrefix = "slot:hold:"

// SlotReservationService serializes the window between the availability
// re-check and the appointment insert. Concurrent submitters racing for
// the same (date, slot label) all hit this redis hold first; exactly one
// wins. The database's partial unique index on non-cancelled rows
// remains the final authority, so the hold only needs a short TTL — once
// the row exists the index guards the slot key.
type SlotReservationService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	holdTTL     time.Duration
}

func NewSlotReservationService(redisClient *redis.Client, log *logrus.Logger, holdTTL time.Duration) *SlotReservationService {
	return &SlotReservationService{
		redisClient: redisClient,
		log:         log,
		holdTTL:     holdTTL,
	}
}

func slotHoldKey(date, slotLabel string) string {
	return fmt.Sprintf("%s%s:%s", slotHoldKeyPrefix, date, slotLabel)
}

// Acquire claims the slot key for the given owner. Returns ErrSlotHeld
// when another submission got there first.
func (s *SlotReservationService) Acquire(ctx context.Context, date, slotLabel, owner string) error {
	key := slotHoldKey(date, slotLabel)

	result, err := acquireHoldScript.Run(ctx, s.redisClient, []string{key}, owner, s.holdTTL.Milliseconds()).Int()
	if err != nil {
		s.log.Warnf("Failed slot hold script for %s %s: %+v", date, slotLabel, err)
		return fmt.Errorf("acquire slot hold %s %s: %w", date, slotLabel, err)
	}
	if result == 0 {
		return ErrSlotHeld
	}

	s.log.Debugf("Acquired slot hold: date=%s, slot=%s, owner=%s", date, slotLabel, owner)
	return nil
}

// Release drops the hold. Called to compensate when the appointment
// insert fails; after a successful insert the hold is left to expire.
func (s *SlotReservationService) Release(ctx context.Context, date, slotLabel string) error {
	key := slotHoldKey(date, slotLabel)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to release slot hold for %s %s: %+v", date, slotLabel, err)
		return fmt.Errorf("release slot hold %s %s: %w", date, slotLabel, err)
	}
	return nil
}
