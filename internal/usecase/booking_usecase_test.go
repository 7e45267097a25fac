package usecase

import (
	"testing"
	"time"

	"vetclinic-booking/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestIsPastDate(t *testing.T) {
	today := time.Now().Format(entity.DateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(entity.DateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(entity.DateLayout)

	assert.False(t, isPastDate(today), "today must remain bookable")
	assert.True(t, isPastDate(yesterday))
	assert.False(t, isPastDate(tomorrow))
}

func TestCheckoutDescription(t *testing.T) {
	appointment := &entity.Appointment{
		ServiceCode: "vaccination",
		PetName:     "Milo",
	}
	assert.Equal(t, "Vaccination for Milo", checkoutDescription(appointment))
}

func TestCheckoutDescriptionWalkIn(t *testing.T) {
	appointment := &entity.Appointment{ServiceCode: "checkup"}
	assert.Equal(t, "General Checkup for walk-in", checkoutDescription(appointment))
}

func TestCheckoutDescriptionUnknownService(t *testing.T) {
	// a code no longer in the catalog falls back to the raw code
	appointment := &entity.Appointment{ServiceCode: "legacy-service", PetName: "Milo"}
	assert.Equal(t, "legacy-service for Milo", checkoutDescription(appointment))
}
