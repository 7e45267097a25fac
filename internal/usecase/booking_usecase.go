package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"vetclinic-booking/config"
	"vetclinic-booking/internal/catalog"
	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"
	"vetclinic-booking/internal/gateway/paymongo"
	"vetclinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound    = errors.New("booking session not found or expired")
	ErrNotSessionOwner    = errors.New("booking session belongs to another client")
	ErrForbiddenOrigin    = errors.New("origin requires a staff account")
	ErrClientNotFound     = errors.New("client not found")
	ErrUnknownSlot        = errors.New("unknown slot label")
	ErrPastDate           = errors.New("appointment date is in the past")
	ErrDateBlocked        = errors.New("clinic is closed on the requested date")
	ErrSlotTaken          = errors.New("slot is no longer available")
	ErrPaymentGatewayDown = errors.New("payment gateway request failed")
)

// slotConflictConstraint is the partial unique index guarding the
// one-active-appointment-per-slot-key invariant.
const slotConflictConstraint = "ux_appointments_slot_key"

const bookingCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateBookingCode builds a human-readable code like VC-20260831-K7KQ2M.
func generateBookingCode(date time.Time) (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate booking code: %w", err)
	}
	for i := range buf {
		buf[i] = bookingCodeCharset[int(buf[i])%len(bookingCodeCharset)]
	}
	return fmt.Sprintf("VC-%s-%s", date.Format("20060102"), string(buf)), nil
}

type BookingUseCase interface {
	StartSession(ctx context.Context, request *dto.StartBookingSessionRequest, actorID uuid.UUID, actorRoleID int, actorEmail string) (*dto.BookingSessionResponse, error)
	GetSession(ctx context.Context, sessionID, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error)
	SelectPet(ctx context.Context, sessionID uuid.UUID, request *dto.SelectPetRequest, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error)
	SelectServiceAndSlot(ctx context.Context, sessionID uuid.UUID, request *dto.SelectServiceAndSlotRequest, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error)
	SelectPaymentMethod(ctx context.Context, sessionID uuid.UUID, request *dto.SelectPaymentMethodRequest, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error)
	Submit(ctx context.Context, sessionID, actorID uuid.UUID, actorRoleID int) (*dto.BookingSubmitResponse, error)
	Retry(ctx context.Context, sessionID, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error)
}

type bookingUseCase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             *config.Config
	sessionRepo     repository.BookingSessionRepository
	appointmentRepo repository.AppointmentRepository
	petRepo         repository.PetRepository
	userRepo        repository.UserRepository
	auditRepo       repository.AuditLogRepository
	index           *service.AvailabilityIndex
	reservation     *service.SlotReservationService
	notifier        *service.NotificationService
	paymentClient   *paymongo.Client
}

func NewBookingUseCase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg *config.Config,
	sessionRepo repository.BookingSessionRepository,
	appointmentRepo repository.AppointmentRepository,
	petRepo repository.PetRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	index *service.AvailabilityIndex,
	reservation *service.SlotReservationService,
	notifier *service.NotificationService,
	paymentClient *paymongo.Client,
) BookingUseCase {
	return &bookingUseCase{
		db:              db,
		log:             log,
		cfg:             cfg,
		sessionRepo:     sessionRepo,
		appointmentRepo: appointmentRepo,
		petRepo:         petRepo,
		userRepo:        userRepo,
		auditRepo:       auditRepo,
		index:           index,
		reservation:     reservation,
		notifier:        notifier,
		paymentClient:   paymentClient,
	}
}

// StartSession opens a new booking draft. Staff origins require a staff
// actor; on-behalf bookings resolve the target client by email.
func (u *bookingUseCase) StartSession(ctx context.Context, request *dto.StartBookingSessionRequest, actorID uuid.UUID, actorRoleID int, actorEmail string) (*dto.BookingSessionResponse, error) {
	origin := entity.BookingOrigin(request.Origin)
	if origin == "" {
		origin = entity.OriginClientSelf
	}

	isStaff := actorRoleID == entity.RoleIDAdmin || actorRoleID == entity.RoleIDVet
	if origin != entity.OriginClientSelf && !isStaff {
		return nil, ErrForbiddenOrigin
	}

	var clientID *uuid.UUID
	var clientEmail string

	switch origin {
	case entity.OriginClientSelf:
		clientID = &actorID
		clientEmail = actorEmail
	case entity.OriginStaffOnBehalf:
		client, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), request.ClientEmail)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, ErrClientNotFound
		}
		clientID = &client.ID
		clientEmail = client.Email
	case entity.OriginStaffAnonymous:
		// walk-in: no client link, no pet step
	}

	session := entity.NewBookingSession(origin, clientID, clientEmail)
	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save booking session: %+v", err)
		return nil, err
	}

	return converter.BookingSessionToResponse(session), nil
}

// loadOwnedSession fetches a session and enforces access: the linked
// client, or any staff account.
func (u *bookingUseCase) loadOwnedSession(ctx context.Context, sessionID, actorID uuid.UUID, actorRoleID int) (*entity.BookingSession, error) {
	session, err := u.sessionRepo.Find(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to load booking session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	isStaff := actorRoleID == entity.RoleIDAdmin || actorRoleID == entity.RoleIDVet
	if !isStaff && (session.ClientID == nil || *session.ClientID != actorID) {
		return nil, ErrNotSessionOwner
	}

	return session, nil
}

func (u *bookingUseCase) GetSession(ctx context.Context, sessionID, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error) {
	session, err := u.loadOwnedSession(ctx, sessionID, actorID, actorRoleID)
	if err != nil {
		return nil, err
	}
	return converter.BookingSessionToResponse(session), nil
}

func (u *bookingUseCase) SelectPet(ctx context.Context, sessionID uuid.UUID, request *dto.SelectPetRequest, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error) {
	session, err := u.loadOwnedSession(ctx, sessionID, actorID, actorRoleID)
	if err != nil {
		return nil, err
	}

	pet, err := u.petRepo.FindByID(u.db.WithContext(ctx), request.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}
	if session.ClientID == nil || pet.OwnerID != *session.ClientID {
		return nil, ErrNotPetOwner
	}

	if err := session.SelectPet(pet.ID, pet.Name); err != nil {
		return nil, err
	}

	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save booking session: %+v", err)
		return nil, err
	}

	return converter.BookingSessionToResponse(session), nil
}

// SelectServiceAndSlot validates the choice against the catalog and the
// availability index, snapshots the current catalog price into the draft,
// and advances it. An invalid choice never advances the state.
func (u *bookingUseCase) SelectServiceAndSlot(ctx context.Context, sessionID uuid.UUID, request *dto.SelectServiceAndSlotRequest, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error) {
	session, err := u.loadOwnedSession(ctx, sessionID, actorID, actorRoleID)
	if err != nil {
		return nil, err
	}

	if _, err := time.Parse(entity.DateLayout, request.Date); err != nil {
		return nil, err
	}
	if isPastDate(request.Date) {
		return nil, ErrPastDate
	}

	if _, ok := catalog.SlotByLabel(request.SlotLabel); !ok {
		return nil, ErrUnknownSlot
	}

	serviceType, err := catalog.ServiceTypeByCode(request.ServiceCode)
	if err != nil {
		return nil, err
	}

	snap, err := u.index.Snapshot(ctx, request.Date)
	if err != nil {
		return nil, err
	}
	if snap.DateBlocked {
		return nil, ErrDateBlocked
	}
	if snap.IsSlotBlocked(request.SlotLabel) {
		return nil, ErrSlotTaken
	}

	if err := session.SelectServiceAndSlot(request.Date, request.SlotLabel, serviceType.Code, serviceType.Price); err != nil {
		return nil, err
	}

	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save booking session: %+v", err)
		return nil, err
	}

	return converter.BookingSessionToResponse(session), nil
}

func (u *bookingUseCase) SelectPaymentMethod(ctx context.Context, sessionID uuid.UUID, request *dto.SelectPaymentMethodRequest, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error) {
	session, err := u.loadOwnedSession(ctx, sessionID, actorID, actorRoleID)
	if err != nil {
		return nil, err
	}

	if err := session.SelectPaymentMethod(entity.PaymentMethod(request.PaymentMethod)); err != nil {
		return nil, err
	}

	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save booking session: %+v", err)
		return nil, err
	}

	return converter.BookingSessionToResponse(session), nil
}

// Submit finalizes the draft. The ordering closes the double-booking
// race: fresh availability re-check, redis slot hold, then the insert —
// where the partial unique index on non-cancelled (date, slot) rows is
// the final authority. A genuine conflict sends the draft back to slot
// selection; any other failure marks it failed but keeps it retryable.
func (u *bookingUseCase) Submit(ctx context.Context, sessionID, actorID uuid.UUID, actorRoleID int) (*dto.BookingSubmitResponse, error) {
	session, err := u.loadOwnedSession(ctx, sessionID, actorID, actorRoleID)
	if err != nil {
		return nil, err
	}

	if err := session.BeginSubmit(); err != nil {
		return nil, err
	}

	dateBlocked, slotBlocked, err := u.index.CheckNow(ctx, session.Date, session.SlotLabel)
	if err != nil {
		session.MarkFailed("availability check failed")
		u.saveSession(ctx, session)
		return nil, err
	}
	if dateBlocked {
		session.ReturnToSlotSelection()
		u.saveSession(ctx, session)
		return nil, ErrDateBlocked
	}
	if slotBlocked {
		session.ReturnToSlotSelection()
		u.saveSession(ctx, session)
		return nil, ErrSlotTaken
	}

	if err := u.reservation.Acquire(ctx, session.Date, session.SlotLabel, session.ID.String()); err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			session.ReturnToSlotSelection()
			u.saveSession(ctx, session)
			return nil, ErrSlotTaken
		}
		session.MarkFailed("slot reservation failed")
		u.saveSession(ctx, session)
		return nil, err
	}

	appointment, err := u.insertAppointment(ctx, session)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			u.releaseHold(ctx, session)
			session.ReturnToSlotSelection()
			u.saveSession(ctx, session)
			return nil, ErrSlotTaken
		}
		u.releaseHold(ctx, session)
		session.MarkFailed("could not save appointment")
		u.saveSession(ctx, session)
		return nil, err
	}

	if session.PaymentMethod == entity.PaymentMethodCash {
		return u.finalizeCash(ctx, session, appointment)
	}
	return u.finalizeOnline(ctx, session, appointment)
}

func (u *bookingUseCase) insertAppointment(ctx context.Context, session *entity.BookingSession) (*entity.Appointment, error) {
	date, err := time.Parse(entity.DateLayout, session.Date)
	if err != nil {
		return nil, err
	}

	code, err := generateBookingCode(date)
	if err != nil {
		return nil, err
	}

	status := entity.AppointmentStatusConfirmed
	if session.PaymentMethod.IsOnline() {
		status = entity.AppointmentStatusPendingPayment
	}

	appointment := &entity.Appointment{
		BookingCode:     code,
		ClientID:        session.ClientID,
		ClientEmail:     session.ClientEmail,
		PetID:           session.PetID,
		PetName:         session.PetName,
		ServiceCode:     session.ServiceCode,
		Price:           session.Price,
		AppointmentDate: date,
		SlotLabel:       session.SlotLabel,
		Status:          status,
		PaymentMethod:   session.PaymentMethod,
		Origin:          session.Origin,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, slotConflictConstraint) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to insert appointment for session %s: %+v", session.ID, err)
		return nil, err
	}

	if err := u.auditRepo.Create(u.db.WithContext(ctx), &entity.AuditLog{
		UserID: session.ClientID,
		Action: entity.AuditActionAppointmentCreate,
		Metadata: entity.JSON{
			"appointment_id": appointment.ID.String(),
			"booking_code":   appointment.BookingCode,
			"date":           session.Date,
			"slot_label":     session.SlotLabel,
			"origin":         string(session.Origin),
		},
	}); err != nil {
		u.log.Warnf("Failed to write appointment audit log (non-fatal): %+v", err)
	}

	return appointment, nil
}

func (u *bookingUseCase) finalizeCash(ctx context.Context, session *entity.BookingSession, appointment *entity.Appointment) (*dto.BookingSubmitResponse, error) {
	u.notifier.NotifyAppointmentConfirmed(ctx, appointment)
	u.index.NotifyChange(service.ChangeEvent{Date: session.Date})

	session.MarkConfirmed(appointment.ID)
	u.saveSession(ctx, session)

	return &dto.BookingSubmitResponse{
		Session:     converter.BookingSessionToResponse(session),
		Appointment: converter.AppointmentToResponse(appointment),
	}, nil
}

// finalizeOnline creates a hosted checkout for the pending appointment.
// A gateway failure cancels the just-inserted row so the slot is not
// stranded behind an unpayable booking.
func (u *bookingUseCase) finalizeOnline(ctx context.Context, session *entity.BookingSession, appointment *entity.Appointment) (*dto.BookingSubmitResponse, error) {
	checkout, err := u.paymentClient.CreateCheckout(ctx, &paymongo.CheckoutRequest{
		Amount:            session.Price.Mul(decimal.NewFromInt(100)).IntPart(),
		Description:       checkoutDescription(appointment),
		PaymentMethodType: string(session.PaymentMethod),
		ReturnURL:         fmt.Sprintf("%s/api/v1/payments/callback?appointment_id=%s", u.cfg.App.PublicBaseURL, appointment.ID),
	})
	if err != nil {
		u.log.Warnf("Failed to create checkout for appointment %s: %+v", appointment.ID, err)

		db := u.db.WithContext(ctx)
		if _, cancelErr := u.appointmentRepo.UpdateStatus(db, appointment.ID,
			[]entity.AppointmentStatus{entity.AppointmentStatusPendingPayment},
			entity.AppointmentStatusCancelled); cancelErr != nil {
			u.log.Warnf("Failed to cancel unpayable appointment %s: %+v", appointment.ID, cancelErr)
		}
		u.releaseHold(ctx, session)
		u.index.NotifyChange(service.ChangeEvent{Date: session.Date})

		session.MarkFailed("payment gateway unavailable")
		u.saveSession(ctx, session)
		return nil, ErrPaymentGatewayDown
	}

	appointment.PaymentIntentID = checkout.PaymentIntentID
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to store payment intent id on appointment %s (non-fatal): %+v", appointment.ID, err)
	}

	u.index.NotifyChange(service.ChangeEvent{Date: session.Date})

	session.MarkAwaitingPayment(appointment.ID, checkout.CheckoutURL)
	u.saveSession(ctx, session)

	return &dto.BookingSubmitResponse{
		Session:     converter.BookingSessionToResponse(session),
		Appointment: converter.AppointmentToResponse(appointment),
		CheckoutURL: checkout.CheckoutURL,
	}, nil
}

func (u *bookingUseCase) Retry(ctx context.Context, sessionID, actorID uuid.UUID, actorRoleID int) (*dto.BookingSessionResponse, error) {
	session, err := u.loadOwnedSession(ctx, sessionID, actorID, actorRoleID)
	if err != nil {
		return nil, err
	}

	if err := session.Retry(); err != nil {
		return nil, err
	}

	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save booking session: %+v", err)
		return nil, err
	}

	return converter.BookingSessionToResponse(session), nil
}

func (u *bookingUseCase) saveSession(ctx context.Context, session *entity.BookingSession) {
	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save booking session %s: %+v", session.ID, err)
	}
}

func (u *bookingUseCase) releaseHold(ctx context.Context, session *entity.BookingSession) {
	if err := u.reservation.Release(ctx, session.Date, session.SlotLabel); err != nil {
		u.log.Warnf("Failed to release slot hold for session %s: %+v", session.ID, err)
	}
}

// isPastDate compares normalized YYYY-MM-DD keys so the today-is-bookable
// boundary does not shift with the server timezone offset.
func isPastDate(dateKey string) bool {
	return dateKey < time.Now().Format(entity.DateLayout)
}

// checkoutDescription is the human-readable line shown on the hosted
// checkout page: service label plus who it is for.
func checkoutDescription(appointment *entity.Appointment) string {
	serviceLabel := appointment.ServiceCode
	if st, err := catalog.ServiceTypeByCode(appointment.ServiceCode); err == nil {
		serviceLabel = st.DisplayLabel
	}

	petLabel := appointment.PetName
	if petLabel == "" {
		petLabel = "walk-in"
	}

	return fmt.Sprintf("%s for %s", serviceLabel, petLabel)
}
