package usecase

import (
	"context"
	"errors"

	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"
	"vetclinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotAppointmentOwner     = errors.New("appointment belongs to another client")
	ErrInvalidStatusTransition = errors.New("status transition is not allowed")
)

type AppointmentUseCase interface {
	List(ctx context.Context, request *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error)
	GetByID(ctx context.Context, id, actorID uuid.UUID, actorRoleID int) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, email string) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, request *dto.UpdateAppointmentStatusRequest, actorID uuid.UUID) (*dto.AppointmentResponse, error)
	// HardDelete removes the row permanently, leaving an audit trail.
	// Distinct from cancellation, which is the normal soft path.
	HardDelete(ctx context.Context, id, actorID uuid.UUID) error
}

type appointmentUseCase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditRepo       repository.AuditLogRepository
	index           *service.AvailabilityIndex
	notifier        *service.NotificationService
}

func NewAppointmentUseCase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditRepo repository.AuditLogRepository,
	index *service.AvailabilityIndex,
	notifier *service.NotificationService,
) AppointmentUseCase {
	return &appointmentUseCase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
		index:           index,
		notifier:        notifier,
	}
}

func (u *appointmentUseCase) List(ctx context.Context, request *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Status:      request.Status,
		ClientEmail: request.ClientEmail,
	}

	appointments, err := u.appointmentRepo.FindWithFilter(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUseCase) GetByID(ctx context.Context, id, actorID uuid.UUID, actorRoleID int) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	isStaff := actorRoleID == entity.RoleIDAdmin || actorRoleID == entity.RoleIDVet
	if !isStaff && (appointment.ClientID == nil || *appointment.ClientID != actorID) {
		return nil, ErrNotAppointmentOwner
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUseCase) GetMyAppointments(ctx context.Context, email string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByClientEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to list client appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// UpdateStatus applies a staff status change through the transition
// table. The update is guarded on the status the caller saw, so two
// staff racing to mutate the same row cannot both win.
func (u *appointmentUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, request *dto.UpdateAppointmentStatusRequest, actorID uuid.UUID) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	target := entity.AppointmentStatus(request.Status)
	if !appointment.CanTransitionTo(target) {
		return nil, ErrInvalidStatusTransition
	}

	previous := appointment.Status
	rows, err := u.appointmentRepo.UpdateStatus(db, id,
		[]entity.AppointmentStatus{previous}, target)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidStatusTransition
	}

	appointment.Status = target

	if err := u.auditRepo.Create(db, &entity.AuditLog{
		UserID: &actorID,
		Action: entity.AuditActionAppointmentStatus,
		Metadata: entity.JSON{
			"appointment_id": id.String(),
			"from":           string(previous),
			"to":             string(target),
		},
	}); err != nil {
		u.log.Warnf("Failed to write status audit log (non-fatal): %+v", err)
	}

	switch target {
	case entity.AppointmentStatusCancelled:
		// Cancellation frees the slot key.
		u.index.NotifyChange(service.ChangeEvent{Date: appointment.DateKey()})
	case entity.AppointmentStatusConfirmed:
		u.notifier.NotifyAppointmentConfirmed(ctx, appointment)
	}

	return converter.AppointmentToResponse(appointment), nil
}

// HardDelete permanently removes an appointment row. The audit entry and
// the delete commit together; a deleted active appointment also frees
// its slot key.
func (u *appointmentUseCase) HardDelete(ctx context.Context, id, actorID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.auditRepo.Create(tx, &entity.AuditLog{
			UserID: &actorID,
			Action: entity.AuditActionAppointmentDelete,
			Metadata: entity.JSON{
				"appointment_id": id.String(),
				"booking_code":   appointment.BookingCode,
				"date":           appointment.DateKey(),
				"slot_label":     appointment.SlotLabel,
				"status":         string(appointment.Status),
			},
		}); err != nil {
			return err
		}
		return u.appointmentRepo.Delete(tx, id)
	})
	if err != nil {
		u.log.Warnf("Failed to hard-delete appointment %s: %+v", id, err)
		return err
	}

	if appointment.HoldsSlot() {
		u.index.NotifyChange(service.ChangeEvent{Date: appointment.DateKey()})
	}

	return nil
}
