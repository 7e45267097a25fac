package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"vetclinic-booking/internal/catalog"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ChangeEvent signals that the appointments or unavailability rows for a
// date were mutated and its snapshot must be recomputed.
type ChangeEvent struct {
	Date string // YYYY-MM-DD
}

const changeEventBuffer = 64

// AvailabilityIndex maintains per-date snapshots of blocked slot keys.
// All mutations flow through a single channel consumed by one goroutine,
// so snapshot recomputation is never re-entrant. Readers get the cached
// snapshot; writers that need the freshest view (the pre-insert re-check)
// use CheckNow, which queries the store directly and bypasses the cache.
type AvailabilityIndex struct {
	db             *gorm.DB
	log            *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	unavailRepo    repository.UnavailabilityRepository
	slots          []entity.TimeSlot

	mu        sync.RWMutex
	snapshots map[string]entity.AvailabilitySnapshot

	events   chan ChangeEvent
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewAvailabilityIndex(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	unavailRepo repository.UnavailabilityRepository,
) *AvailabilityIndex {
	idx := &AvailabilityIndex{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		unavailRepo:     unavailRepo,
		slots:           catalog.AllTimeSlots(),
		snapshots:       make(map[string]entity.AvailabilitySnapshot),
		events:          make(chan ChangeEvent, changeEventBuffer),
		stopChan:        make(chan struct{}),
	}

	idx.wg.Add(1)
	go idx.consumeLoop()

	return idx
}

// Stop shuts down the consumer goroutine. Safe to call multiple times.
func (idx *AvailabilityIndex) Stop() {
	if idx.stopped.CompareAndSwap(false, true) {
		close(idx.stopChan)
		idx.wg.Wait()
		idx.log.Info("AvailabilityIndex stopped")
	}
}

// NotifyChange enqueues a recomputation for a date. Never blocks the
// mutating call path; a full buffer falls back to dropping the cached
// snapshot so the next read recomputes.
func (idx *AvailabilityIndex) NotifyChange(event ChangeEvent) {
	select {
	case idx.events <- event:
	default:
		idx.mu.Lock()
		delete(idx.snapshots, event.Date)
		idx.mu.Unlock()
	}
}

func (idx *AvailabilityIndex) consumeLoop() {
	defer idx.wg.Done()

	for {
		select {
		case <-idx.stopChan:
			return
		case event := <-idx.events:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if _, err := idx.refresh(ctx, event.Date); err != nil {
				idx.log.Warnf("Failed to refresh availability for %s: %+v", event.Date, err)
			}
			cancel()
		}
	}
}

// refresh recomputes and caches the snapshot for a date.
func (idx *AvailabilityIndex) refresh(ctx context.Context, date string) (entity.AvailabilitySnapshot, error) {
	db := idx.db.WithContext(ctx)

	appointments, err := idx.appointmentRepo.FindActiveByDate(db, date)
	if err != nil {
		return entity.AvailabilitySnapshot{}, err
	}

	periods, err := idx.unavailRepo.FindByDate(db, date)
	if err != nil {
		return entity.AvailabilitySnapshot{}, err
	}

	snap := entity.ComputeAvailability(date, idx.slots, appointments, periods)

	idx.mu.Lock()
	idx.snapshots[date] = snap
	idx.mu.Unlock()

	return snap, nil
}

// Snapshot returns the cached snapshot for a date, computing it on first
// access.
func (idx *AvailabilityIndex) Snapshot(ctx context.Context, date string) (entity.AvailabilitySnapshot, error) {
	idx.mu.RLock()
	snap, ok := idx.snapshots[date]
	idx.mu.RUnlock()
	if ok {
		return snap, nil
	}
	return idx.refresh(ctx, date)
}

// IsDateBlocked reports whether any all-day unavailability period exists
// for the date. Clinician-agnostic: any clinician's all-day block closes
// the date for everyone.
func (idx *AvailabilityIndex) IsDateBlocked(ctx context.Context, date string) (bool, error) {
	snap, err := idx.Snapshot(ctx, date)
	if err != nil {
		return false, err
	}
	return snap.DateBlocked, nil
}

// ListBlockedSlots returns all blocked slot labels for the date, in
// catalog order.
func (idx *AvailabilityIndex) ListBlockedSlots(ctx context.Context, date string) ([]string, error) {
	snap, err := idx.Snapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	return snap.BlockedLabels(idx.slots), nil
}

// CheckNow performs a fresh store-backed availability check for one slot
// key, bypassing the cached snapshot. Used immediately before the
// appointment insert to narrow the read-check-write window.
func (idx *AvailabilityIndex) CheckNow(ctx context.Context, date, slotLabel string) (dateBlocked, slotBlocked bool, err error) {
	snap, err := idx.refresh(ctx, date)
	if err != nil {
		return false, false, err
	}
	return snap.DateBlocked, snap.IsSlotBlocked(slotLabel), nil
}
