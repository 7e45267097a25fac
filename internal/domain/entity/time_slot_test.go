package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockMinute(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"8:00 AM", 480},
		{"12:00 PM", 720},
		{"5:30 PM", 1050},
		{"08:00", 480},
		{"17:30", 1050},
		{" 9:00 AM ", 540},
	}

	for _, tt := range tests {
		minute, err := ParseClockMinute(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, minute, tt.input)
	}
}

func TestParseClockMinuteInvalid(t *testing.T) {
	for _, input := range []string{"", "25:00", "noon", "8 AM"} {
		_, err := ParseClockMinute(input)
		assert.Error(t, err, input)
	}
}

func TestParseSlotLabel(t *testing.T) {
	start, end, err := ParseSlotLabel("8:00 AM - 8:30 AM")
	require.NoError(t, err)
	assert.Equal(t, 480, start)
	assert.Equal(t, 510, end)
}

func TestParseSlotLabelInvalid(t *testing.T) {
	_, _, err := ParseSlotLabel("8:00 AM")
	assert.Error(t, err)

	_, _, err = ParseSlotLabel("9:00 AM - 8:30 AM")
	assert.Error(t, err)
}

func TestTimeSlotIntersects(t *testing.T) {
	slot := TimeSlot{Label: "8:00 AM - 8:30 AM", StartMinute: 480, EndMinute: 510}

	assert.True(t, slot.Intersects(480, 510))
	assert.True(t, slot.Intersects(470, 490))
	assert.True(t, slot.Intersects(500, 600))
	assert.True(t, slot.Intersects(0, 1440))

	// touching boundaries do not overlap
	assert.False(t, slot.Intersects(450, 480))
	assert.False(t, slot.Intersects(510, 540))
}

func TestFormatClockMinute(t *testing.T) {
	assert.Equal(t, "8:00 AM", FormatClockMinute(480))
	assert.Equal(t, "12:00 PM", FormatClockMinute(720))
	assert.Equal(t, "5:30 PM", FormatClockMinute(1050))
}
