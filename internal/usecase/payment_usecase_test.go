package usecase

import (
	"context"
	"testing"
	"time"

	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/gateway/paymongo"
	repoimpl "vetclinic-booking/internal/repository"
	"vetclinic-booking/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestPaymentUseCase(t *testing.T, db *gorm.DB) PaymentUseCase {
	t.Helper()

	log := logrus.New()
	notifier := service.NewNotificationService(db, log,
		repoimpl.NewUserRepository(), repoimpl.NewNotificationRepository())

	return NewPaymentUseCase(db, log,
		repoimpl.NewAppointmentRepository(), repoimpl.NewAuditLogRepository(),
		notifier, paymongo.NewClient("http://gateway.invalid", log))
}

func appointmentRow(id uuid.UUID, status entity.AppointmentStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_code", "client_email", "pet_name", "service_code",
		"price", "appointment_date", "slot_label", "status", "payment_method", "origin",
	}).AddRow(
		id.String(), "VC-20260901-ABC234", "client@example.com", "Milo", "vaccination",
		"500.00", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "8:00 AM - 8:30 AM",
		string(status), string(entity.PaymentMethodGCash), string(entity.OriginClientSelf),
	)
}

func TestReconcileSuccessConfirmsOnce(t *testing.T) {
	db, mock := newMockGorm(t)
	uc := newTestPaymentUseCase(t, db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(id, entity.AppointmentStatusPendingPayment))
	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	// notification fan-out: no vets registered
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	receipt, err := uc.Reconcile(context.Background(), id, true)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.Equal(t, "confirmed", receipt.Appointment.Status)
	assert.Equal(t, "Vaccination", receipt.ServiceLabel)
	assert.Equal(t, "Milo", receipt.PetName)
	assert.Equal(t, "500.00", receipt.AmountPaid)
	assert.Equal(t, "gcash", receipt.Method)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileSuccessReplayIsNoOp(t *testing.T) {
	db, mock := newMockGorm(t)
	uc := newTestPaymentUseCase(t, db)
	id := uuid.New()

	// the row is already confirmed; the replay must not issue a second
	// update and still returns the receipt
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(id, entity.AppointmentStatusConfirmed))

	receipt, err := uc.Reconcile(context.Background(), id, true)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "confirmed", receipt.Appointment.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileSuccessLostRaceReReads(t *testing.T) {
	db, mock := newMockGorm(t)
	uc := newTestPaymentUseCase(t, db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(id, entity.AppointmentStatusPendingPayment))
	// a concurrent replay won the guarded update
	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(id, entity.AppointmentStatusConfirmed))

	receipt, err := uc.Reconcile(context.Background(), id, true)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileSuccessAfterExpirySweep(t *testing.T) {
	db, mock := newMockGorm(t)
	uc := newTestPaymentUseCase(t, db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(id, entity.AppointmentStatusPendingPayment))
	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(id, entity.AppointmentStatusCancelled))

	_, err := uc.Reconcile(context.Background(), id, true)
	assert.ErrorIs(t, err, ErrAppointmentNotPayable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileFailureLeavesPending(t *testing.T) {
	db, mock := newMockGorm(t)
	uc := newTestPaymentUseCase(t, db)
	id := uuid.New()

	// only the lookup is expected: a failed checkout must not mutate the
	// row, so the appointment keeps its slot and the client can retry
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(id, entity.AppointmentStatusPendingPayment))

	receipt, err := uc.Reconcile(context.Background(), id, false)
	require.NoError(t, err)
	assert.Nil(t, receipt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileFailureAfterConfirmIsNoOp(t *testing.T) {
	db, mock := newMockGorm(t)
	uc := newTestPaymentUseCase(t, db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(id, entity.AppointmentStatusConfirmed))

	_, err := uc.Reconcile(context.Background(), id, false)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileUnknownAppointment(t *testing.T) {
	db, mock := newMockGorm(t)
	uc := newTestPaymentUseCase(t, db)

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := uc.Reconcile(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
