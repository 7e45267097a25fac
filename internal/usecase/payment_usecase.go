package usecase

import (
	"context"
	"errors"

	"vetclinic-booking/internal/catalog"
	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"
	"vetclinic-booking/internal/gateway/paymongo"
	"vetclinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrAppointmentNotPayable  = errors.New("appointment is not awaiting payment")
	ErrNoPaymentIntent        = errors.New("appointment has no payment intent")
	ErrPaymentStatusUndecided = errors.New("payment is still processing")
)

type PaymentUseCase interface {
	// Reconcile applies a gateway callback outcome to an appointment.
	// Idempotent: replays of an already-applied outcome succeed without
	// further effect. A failure outcome never mutates the row; the
	// appointment stays awaiting payment until paid or swept by expiry.
	Reconcile(ctx context.Context, appointmentID uuid.UUID, success bool) (*dto.ReceiptResponse, error)
	PollStatus(ctx context.Context, appointmentID, actorID uuid.UUID, actorRoleID int) (*dto.PaymentStatusResponse, error)
}

type paymentUseCase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditRepo       repository.AuditLogRepository
	notifier        *service.NotificationService
	paymentClient   *paymongo.Client
}

func NewPaymentUseCase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditRepo repository.AuditLogRepository,
	notifier *service.NotificationService,
	paymentClient *paymongo.Client,
) PaymentUseCase {
	return &paymentUseCase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
		notifier:        notifier,
		paymentClient:   paymentClient,
	}
}

func (u *paymentUseCase) Reconcile(ctx context.Context, appointmentID uuid.UUID, success bool) (*dto.ReceiptResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if success {
		return u.reconcileSuccess(ctx, appointment)
	}
	return nil, u.reconcileFailure(ctx, appointment)
}

// reconcileSuccess confirms a pending-payment appointment. The guarded
// status update means concurrent callback replays confirm exactly once;
// a replay that lost the race still returns the receipt.
func (u *paymentUseCase) reconcileSuccess(ctx context.Context, appointment *entity.Appointment) (*dto.ReceiptResponse, error) {
	db := u.db.WithContext(ctx)

	if appointment.Status == entity.AppointmentStatusConfirmed {
		return u.buildReceipt(appointment), nil
	}
	if appointment.Status != entity.AppointmentStatusPendingPayment {
		return nil, ErrAppointmentNotPayable
	}

	rows, err := u.appointmentRepo.UpdateStatus(db, appointment.ID,
		[]entity.AppointmentStatus{entity.AppointmentStatusPendingPayment},
		entity.AppointmentStatusConfirmed)
	if err != nil {
		u.log.Warnf("Failed to confirm paid appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	if rows == 0 {
		// Lost the race to another replay or the expiry sweep. Re-read
		// to learn which.
		fresh, err := u.appointmentRepo.FindByID(db, appointment.ID)
		if err != nil {
			return nil, err
		}
		if fresh == nil || fresh.Status != entity.AppointmentStatusConfirmed {
			return nil, ErrAppointmentNotPayable
		}
		return u.buildReceipt(fresh), nil
	}

	appointment.ConfirmOnlinePayment()

	if err := u.auditRepo.Create(db, &entity.AuditLog{
		UserID: appointment.ClientID,
		Action: entity.AuditActionPaymentReconcile,
		Metadata: entity.JSON{
			"appointment_id": appointment.ID.String(),
			"outcome":        "success",
			"method":         string(appointment.PaymentMethod),
		},
	}); err != nil {
		u.log.Warnf("Failed to write reconcile audit log (non-fatal): %+v", err)
	}

	u.notifier.NotifyAppointmentConfirmed(ctx, appointment)

	return u.buildReceipt(appointment), nil
}

// reconcileFailure records a failed checkout attempt without touching
// the row: the appointment stays pending_payment, keeps its slot, and
// the client may retry the payment. Cancellation of never-paid
// appointments belongs exclusively to the expiry sweep.
func (u *paymentUseCase) reconcileFailure(ctx context.Context, appointment *entity.Appointment) error {
	if appointment.Status != entity.AppointmentStatusPendingPayment {
		// Confirmed by a racing success callback or already swept;
		// nothing left to record.
		return nil
	}

	u.log.Infof("Payment attempt failed for appointment %s; left awaiting payment for retry", appointment.ID)

	return nil
}

func (u *paymentUseCase) buildReceipt(appointment *entity.Appointment) *dto.ReceiptResponse {
	serviceLabel := appointment.ServiceCode
	if st, err := catalog.ServiceTypeByCode(appointment.ServiceCode); err == nil {
		serviceLabel = st.DisplayLabel
	}

	return &dto.ReceiptResponse{
		Appointment:  converter.AppointmentToResponse(appointment),
		ServiceLabel: serviceLabel,
		PetName:      appointment.PetName,
		AmountPaid:   appointment.Price.StringFixed(2),
		Method:       string(appointment.PaymentMethod),
	}
}

// PollStatus asks the gateway for the intent status and applies a
// decided outcome, for clients whose redirect never arrived.
func (u *paymentUseCase) PollStatus(ctx context.Context, appointmentID, actorID uuid.UUID, actorRoleID int) (*dto.PaymentStatusResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	isStaff := actorRoleID == entity.RoleIDAdmin || actorRoleID == entity.RoleIDVet
	if !isStaff && (appointment.ClientID == nil || *appointment.ClientID != actorID) {
		return nil, ErrNotSessionOwner
	}

	if appointment.PaymentIntentID == "" {
		return nil, ErrNoPaymentIntent
	}

	status, err := u.paymentClient.RetrieveIntentStatus(ctx, appointment.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	// Only a decided success mutates the row. A failed intent leaves the
	// appointment awaiting payment so the client can retry; cancellation
	// stays with the expiry sweep.
	if status == paymongo.IntentStatusSucceeded {
		if _, err := u.reconcileSuccess(ctx, appointment); err != nil && !errors.Is(err, ErrAppointmentNotPayable) {
			return nil, err
		}
	}

	return &dto.PaymentStatusResponse{
		PaymentIntentID: appointment.PaymentIntentID,
		Status:          status,
	}, nil
}
