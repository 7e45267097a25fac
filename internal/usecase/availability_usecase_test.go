package usecase

import (
	"context"
	"testing"
	"time"

	"vetclinic-booking/internal/catalog"
	"vetclinic-booking/internal/domain/entity"
	repoimpl "vetclinic-booking/internal/repository"
	"vetclinic-booking/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAvailabilityUseCase(t *testing.T, db *gorm.DB) AvailabilityUseCase {
	t.Helper()

	index := service.NewAvailabilityIndex(db, logrus.New(),
		repoimpl.NewAppointmentRepository(), repoimpl.NewUnavailabilityRepository())
	t.Cleanup(index.Stop)

	return NewAvailabilityUseCase(index)
}

func TestGetDayAvailabilityMarksTakenSlot(t *testing.T) {
	db, mock := newMockGorm(t)
	uc := newTestAvailabilityUseCase(t, db)

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WithArgs("2026-09-01", string(entity.AppointmentStatusCancelled)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "appointment_date", "slot_label", "status"}).
			AddRow(uuid.NewString(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				"8:00 AM - 8:30 AM", string(entity.AppointmentStatusConfirmed)))
	mock.ExpectQuery(`SELECT \* FROM "unavailable_slots"`).
		WithArgs("2026-09-01").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	day, err := uc.GetDayAvailability(context.Background(), "2026-09-01")
	require.NoError(t, err)

	assert.False(t, day.DateBlocked)
	require.Len(t, day.Slots, len(catalog.AllTimeSlots()))
	for _, slot := range day.Slots {
		if slot.Label == "8:00 AM - 8:30 AM" {
			assert.False(t, slot.Available, slot.Label)
		} else {
			assert.True(t, slot.Available, slot.Label)
		}
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDayAvailabilityAllDayBlock(t *testing.T) {
	db, mock := newMockGorm(t)
	uc := newTestAvailabilityUseCase(t, db)

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "unavailable_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "clinician_id", "date", "is_all_day"}).
			AddRow(1, uuid.NewString(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), true))

	day, err := uc.GetDayAvailability(context.Background(), "2026-09-01")
	require.NoError(t, err)

	assert.True(t, day.DateBlocked)
	for _, slot := range day.Slots {
		assert.False(t, slot.Available, slot.Label)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDayAvailabilityRejectsMalformedDate(t *testing.T) {
	db, _ := newMockGorm(t)
	uc := newTestAvailabilityUseCase(t, db)

	_, err := uc.GetDayAvailability(context.Background(), "09/01/2026")
	assert.Error(t, err)
}
