package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSlots = []TimeSlot{
	{Label: "8:00 AM - 8:30 AM", StartMinute: 480, EndMinute: 510},
	{Label: "8:30 AM - 9:00 AM", StartMinute: 510, EndMinute: 540},
	{Label: "9:00 AM - 9:30 AM", StartMinute: 540, EndMinute: 570},
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateLayout, value)
	require.NoError(t, err)
	return parsed
}

func TestComputeAvailabilityEmpty(t *testing.T) {
	snap := ComputeAvailability("2026-09-01", testSlots, nil, nil)

	assert.False(t, snap.DateBlocked)
	for _, slot := range testSlots {
		assert.False(t, snap.IsSlotBlocked(slot.Label))
		assert.False(t, snap.IsSlotTaken(slot.Label))
	}
}

func TestComputeAvailabilityAllDayBlock(t *testing.T) {
	periods := []UnavailabilityPeriod{
		{Date: mustDate(t, "2026-09-01"), IsAllDay: true},
	}

	snap := ComputeAvailability("2026-09-01", testSlots, nil, periods)

	assert.True(t, snap.DateBlocked)
	for _, slot := range testSlots {
		assert.True(t, snap.IsSlotBlocked(slot.Label))
	}
	assert.Len(t, snap.BlockedLabels(testSlots), len(testSlots))
}

func TestComputeAvailabilityTimedWindow(t *testing.T) {
	periods := []UnavailabilityPeriod{
		{Date: mustDate(t, "2026-09-01"), StartTime: "08:15", EndTime: "08:45"},
	}

	snap := ComputeAvailability("2026-09-01", testSlots, nil, periods)

	assert.False(t, snap.DateBlocked)
	assert.True(t, snap.IsSlotBlocked("8:00 AM - 8:30 AM"))
	assert.True(t, snap.IsSlotBlocked("8:30 AM - 9:00 AM"))
	assert.False(t, snap.IsSlotBlocked("9:00 AM - 9:30 AM"))
}

func TestComputeAvailabilityTakenSlots(t *testing.T) {
	appointments := []Appointment{
		{AppointmentDate: mustDate(t, "2026-09-01"), SlotLabel: "8:00 AM - 8:30 AM", Status: AppointmentStatusConfirmed},
		{AppointmentDate: mustDate(t, "2026-09-01"), SlotLabel: "8:30 AM - 9:00 AM", Status: AppointmentStatusCancelled},
		{AppointmentDate: mustDate(t, "2026-09-01"), SlotLabel: "9:00 AM - 9:30 AM", Status: AppointmentStatusPendingPayment},
	}

	snap := ComputeAvailability("2026-09-01", testSlots, appointments, nil)

	assert.True(t, snap.IsSlotTaken("8:00 AM - 8:30 AM"))
	// cancelled rows free their slot key
	assert.False(t, snap.IsSlotTaken("8:30 AM - 9:00 AM"))
	// a pending payment still holds the slot
	assert.True(t, snap.IsSlotTaken("9:00 AM - 9:30 AM"))
}

func TestComputeAvailabilityIgnoresOtherDates(t *testing.T) {
	appointments := []Appointment{
		{AppointmentDate: mustDate(t, "2026-09-02"), SlotLabel: "8:00 AM - 8:30 AM", Status: AppointmentStatusConfirmed},
	}
	periods := []UnavailabilityPeriod{
		{Date: mustDate(t, "2026-09-03"), IsAllDay: true},
	}

	snap := ComputeAvailability("2026-09-01", testSlots, appointments, periods)

	assert.False(t, snap.DateBlocked)
	assert.False(t, snap.IsSlotBlocked("8:00 AM - 8:30 AM"))
}

func TestComputeAvailabilitySkipsMalformedWindow(t *testing.T) {
	periods := []UnavailabilityPeriod{
		{Date: mustDate(t, "2026-09-01"), StartTime: "bogus", EndTime: "08:45"},
	}

	snap := ComputeAvailability("2026-09-01", testSlots, nil, periods)

	for _, slot := range testSlots {
		assert.False(t, snap.IsSlotBlocked(slot.Label))
	}
}

func TestBlockedLabelsOrder(t *testing.T) {
	periods := []UnavailabilityPeriod{
		{Date: mustDate(t, "2026-09-01"), StartTime: "08:45", EndTime: "09:15"},
	}

	snap := ComputeAvailability("2026-09-01", testSlots, nil, periods)

	assert.Equal(t, []string{"8:30 AM - 9:00 AM", "9:00 AM - 9:30 AM"}, snap.BlockedLabels(testSlots))
}
