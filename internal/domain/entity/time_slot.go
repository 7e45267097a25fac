package entity

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-day format used for all slot keys.
// Dates are always compared as normalized YYYY-MM-DD strings, never as
// parsed time values, so a plain date and a timestamp-backed date can
// never drift across timezones.
const DateLayout = "2006-01-02"

// TimeSlot is one bookable half-hour window within the clinic business day.
// The label string combined with a calendar date forms the slot key.
type TimeSlot struct {
	Label       string `json:"label"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// Intersects reports whether the slot window overlaps [startMin, endMin).
func (s TimeSlot) Intersects(startMin, endMin int) bool {
	return s.StartMinute < endMin && startMin < s.EndMinute
}

// clock formats accepted for slot labels and unavailability windows
var clockLayouts = []string{"3:04 PM", "15:04"}

// ParseClockMinute converts a wall-clock string ("8:00 AM" or "08:00")
// to minutes since midnight.
func ParseClockMinute(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("invalid clock value %q", value)
}

// ParseSlotLabel parses a slot label like "8:00 AM - 8:30 AM" into its
// minute window.
func ParseSlotLabel(label string) (startMin, endMin int, err error) {
	parts := strings.Split(label, " - ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid slot label %q", label)
	}
	startMin, err = ParseClockMinute(parts[0])
	if err != nil {
		return 0, 0, err
	}
	endMin, err = ParseClockMinute(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if endMin <= startMin {
		return 0, 0, fmt.Errorf("slot label %q ends before it starts", label)
	}
	return startMin, endMin, nil
}

// FormatClockMinute renders minutes since midnight as a 12-hour clock
// string ("8:00 AM"), the form used in slot labels.
func FormatClockMinute(minute int) string {
	t := time.Date(2000, 1, 1, minute/60, minute%60, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}
