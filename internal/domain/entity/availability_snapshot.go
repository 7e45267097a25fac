package entity

// AvailabilitySnapshot is the derived per-date view of which slot labels
// are currently blocked, computed from unavailability periods and
// existing non-cancelled appointments. Recomputation is a pure fold over
// the fetched rows so the snapshot can be rebuilt from scratch on every
// change event.
type AvailabilitySnapshot struct {
	Date        string
	DateBlocked bool
	Blocked     map[string]bool
	Taken       map[string]bool
}

// ComputeAvailability builds the snapshot for a date. Rows whose
// normalized date string differs from the requested date are ignored, so
// callers may pass unfiltered result sets. Timed periods with malformed
// clock values are skipped rather than blocking anything.
func ComputeAvailability(date string, slots []TimeSlot, appointments []Appointment, periods []UnavailabilityPeriod) AvailabilitySnapshot {
	snap := AvailabilitySnapshot{
		Date:    date,
		Blocked: make(map[string]bool),
		Taken:   make(map[string]bool),
	}

	for i := range periods {
		p := &periods[i]
		if p.DateKey() != date {
			continue
		}
		if p.IsAllDay {
			snap.DateBlocked = true
			continue
		}
		startMin, endMin, err := p.Window()
		if err != nil {
			continue
		}
		for _, slot := range slots {
			if slot.Intersects(startMin, endMin) {
				snap.Blocked[slot.Label] = true
			}
		}
	}

	for i := range appointments {
		a := &appointments[i]
		if a.DateKey() != date || !a.HoldsSlot() {
			continue
		}
		snap.Taken[a.SlotLabel] = true
		snap.Blocked[a.SlotLabel] = true
	}

	if snap.DateBlocked {
		for _, slot := range slots {
			snap.Blocked[slot.Label] = true
		}
	}

	return snap
}

// IsSlotBlocked reports whether the slot label may not be offered.
func (s AvailabilitySnapshot) IsSlotBlocked(label string) bool {
	return s.DateBlocked || s.Blocked[label]
}

// IsSlotTaken reports whether a non-cancelled appointment holds the slot.
func (s AvailabilitySnapshot) IsSlotTaken(label string) bool {
	return s.Taken[label]
}

// BlockedLabels returns the blocked slot labels in catalog order.
func (s AvailabilitySnapshot) BlockedLabels(slots []TimeSlot) []string {
	labels := make([]string, 0, len(s.Blocked))
	for _, slot := range slots {
		if s.IsSlotBlocked(slot.Label) {
			labels = append(labels, slot.Label)
		}
	}
	return labels
}
