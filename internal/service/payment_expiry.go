package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PaymentExpiryService cancels pending-payment appointments whose
// checkout was never completed, so they stop holding their slot key
// indefinitely. Runs as a background sweep; cancelled rows fall out of
// the partial unique index and the slot becomes bookable again.
type PaymentExpiryService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	index           *AvailabilityIndex
	pendingTTL      time.Duration
	sweepInterval   time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewPaymentExpiryService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	index *AvailabilityIndex,
	pendingTTL time.Duration,
	sweepInterval time.Duration,
) *PaymentExpiryService {
	return &PaymentExpiryService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		index:           index,
		pendingTTL:      pendingTTL,
		sweepInterval:   sweepInterval,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (s *PaymentExpiryService) Start() {
	s.wg.Add(1)
	go s.sweepLoop()
}

// Stop shuts down the sweep loop. Safe to call multiple times.
func (s *PaymentExpiryService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("PaymentExpiryService stopped")
	}
}

func (s *PaymentExpiryService) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			s.sweep(ctx)
			cancel()
		}
	}
}

func (s *PaymentExpiryService) sweep(ctx context.Context) {
	db := s.db.WithContext(ctx)
	cutoff := time.Now().UTC().Add(-s.pendingTTL)

	stale, err := s.appointmentRepo.FindStalePendingPayment(db, cutoff)
	if err != nil {
		s.log.Warnf("Failed to query stale pending-payment appointments: %+v", err)
		return
	}

	for i := range stale {
		appointment := &stale[i]
		rows, err := s.appointmentRepo.UpdateStatus(db, appointment.ID,
			[]entity.AppointmentStatus{entity.AppointmentStatusPendingPayment},
			entity.AppointmentStatusCancelled)
		if err != nil {
			s.log.Warnf("Failed to expire appointment %s: %+v", appointment.ID, err)
			continue
		}
		if rows == 0 {
			// Payment completed (or staff acted) between query and update.
			continue
		}
		s.index.NotifyChange(ChangeEvent{Date: appointment.DateKey()})
		s.log.Infof("Expired unpaid appointment %s (slot %s %s freed)",
			appointment.ID, appointment.DateKey(), appointment.SlotLabel)
	}
}
