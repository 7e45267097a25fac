package service

import (
	"context"
	"fmt"

	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationService fans a confirmed appointment out to every
// registered vet, one write per recipient. Not transactional: partial
// delivery is possible, failures are logged and never retried or rolled
// back — the appointment row is the source of truth.
type NotificationService struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *NotificationService {
	return &NotificationService{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// NotifyAppointmentConfirmed writes one notification per vet.
func (s *NotificationService) NotifyAppointmentConfirmed(ctx context.Context, appointment *entity.Appointment) {
	db := s.db.WithContext(ctx)

	vets, err := s.userRepo.FindByRoleID(db, entity.RoleIDVet)
	if err != nil {
		s.log.Warnf("Failed to list vets for notification fan-out: %+v", err)
		return
	}

	petLabel := appointment.PetName
	if petLabel == "" {
		petLabel = "walk-in"
	}
	message := fmt.Sprintf("New appointment: %s (%s) on %s, %s",
		petLabel, appointment.ServiceCode, appointment.DateKey(), appointment.SlotLabel)

	var delivered int
	for _, vet := range vets {
		notification := &entity.Notification{
			RecipientID:   vet.ID,
			AppointmentID: appointment.ID,
			Message:       message,
		}
		if err := s.notificationRepo.Create(db, notification); err != nil {
			s.log.Warnf("Failed to notify vet %s for appointment %s (non-fatal): %+v", vet.ID, appointment.ID, err)
			continue
		}
		delivered++
	}

	s.log.Infof("Appointment %s notification fan-out: %d/%d delivered", appointment.ID, delivered, len(vets))
}
