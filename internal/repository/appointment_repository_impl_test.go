package repository

import (
	"testing"

	"vetclinic-booking/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func TestAppointmentUpdateStatusGuarded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()
	id := uuid.New()

	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.UpdateStatus(db, id,
		[]entity.AppointmentStatus{entity.AppointmentStatusPendingPayment},
		entity.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateStatusRowMoved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()
	id := uuid.New()

	// the row left the expected status between read and write
	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.UpdateStatus(db, id,
		[]entity.AppointmentStatus{entity.AppointmentStatusPendingPayment},
		entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	appointment, err := repo.FindByID(db, id)
	require.NoError(t, err)
	assert.Nil(t, appointment)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveByDateExcludesCancelled(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WithArgs("2026-09-01", string(entity.AppointmentStatusCancelled)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slot_label", "status"}).
			AddRow(uuid.NewString(), "8:00 AM - 8:30 AM", string(entity.AppointmentStatusConfirmed)))

	appointments, err := repo.FindActiveByDate(db, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "8:00 AM - 8:30 AM", appointments[0].SlotLabel)

	assert.NoError(t, mock.ExpectationsWereMet())
}
