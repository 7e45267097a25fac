package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTimeSlots(t *testing.T) {
	slots := AllTimeSlots()

	require.Len(t, slots, 19)
	assert.Equal(t, "8:00 AM - 8:30 AM", slots[0].Label)
	assert.Equal(t, 480, slots[0].StartMinute)
	assert.Equal(t, "5:00 PM - 5:30 PM", slots[len(slots)-1].Label)
	assert.Equal(t, 1050, slots[len(slots)-1].EndMinute)

	// contiguous half-hour windows
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndMinute, slots[i].StartMinute)
		assert.Equal(t, 30, slots[i].EndMinute-slots[i].StartMinute)
	}
}

func TestAllTimeSlotsReturnsCopy(t *testing.T) {
	slots := AllTimeSlots()
	slots[0].Label = "mutated"

	assert.Equal(t, "8:00 AM - 8:30 AM", AllTimeSlots()[0].Label)
}

func TestServiceTypeByCode(t *testing.T) {
	st, err := ServiceTypeByCode("vaccination")
	require.NoError(t, err)
	assert.Equal(t, "Vaccination", st.DisplayLabel)
	assert.Equal(t, "500", st.Price.String())

	_, err = ServiceTypeByCode("acupuncture")
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestSlotByLabel(t *testing.T) {
	slot, ok := SlotByLabel("1:00 PM - 1:30 PM")
	require.True(t, ok)
	assert.Equal(t, 13*60, slot.StartMinute)

	_, ok = SlotByLabel("6:00 PM - 6:30 PM")
	assert.False(t, ok)
}

func TestAllServiceTypes(t *testing.T) {
	services := AllServiceTypes()

	require.Len(t, services, 6)
	assert.Equal(t, "checkup", services[0].Code)

	codes := make(map[string]bool, len(services))
	for _, st := range services {
		assert.False(t, codes[st.Code], "duplicate code %s", st.Code)
		codes[st.Code] = true
		assert.True(t, st.Price.IsPositive())
	}
}
