// Package catalog holds the static reference data for clinic services and
// bookable time slots. Both tables are immutable and built at process
// start; there are no side effects and no failure modes beyond an
// unknown service code.
package catalog

import (
	"errors"

	"vetclinic-booking/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ErrUnknownServiceType is returned when a service code is not in the catalog
var ErrUnknownServiceType = errors.New("unknown service type")

// Clinic operating window: half-hour slots from 8:00 AM through the
// 5:00 PM - 5:30 PM window.
const (
	openingMinute  = 8 * 60
	closingMinute  = 17*60 + 30
	slotLengthMins = 30
)

var serviceTypes = []entity.ServiceType{
	{Code: "checkup", DisplayLabel: "General Checkup", Price: decimal.NewFromInt(300)},
	{Code: "vaccination", DisplayLabel: "Vaccination", Price: decimal.NewFromInt(500)},
	{Code: "deworming", DisplayLabel: "Deworming", Price: decimal.NewFromInt(350)},
	{Code: "grooming", DisplayLabel: "Grooming", Price: decimal.NewFromInt(400)},
	{Code: "dental", DisplayLabel: "Dental Cleaning", Price: decimal.NewFromInt(800)},
	{Code: "surgery", DisplayLabel: "Minor Surgery", Price: decimal.NewFromInt(1500)},
}

var (
	serviceTypeByCode map[string]entity.ServiceType
	timeSlots         []entity.TimeSlot
)

func init() {
	serviceTypeByCode = make(map[string]entity.ServiceType, len(serviceTypes))
	for _, st := range serviceTypes {
		serviceTypeByCode[st.Code] = st
	}

	for start := openingMinute; start+slotLengthMins <= closingMinute; start += slotLengthMins {
		end := start + slotLengthMins
		timeSlots = append(timeSlots, entity.TimeSlot{
			Label:       entity.FormatClockMinute(start) + " - " + entity.FormatClockMinute(end),
			StartMinute: start,
			EndMinute:   end,
		})
	}
}

// ServiceTypeByCode looks up a catalog entry by its unique code.
func ServiceTypeByCode(code string) (entity.ServiceType, error) {
	st, ok := serviceTypeByCode[code]
	if !ok {
		return entity.ServiceType{}, ErrUnknownServiceType
	}
	return st, nil
}

// AllServiceTypes returns the catalog entries in display order.
func AllServiceTypes() []entity.ServiceType {
	out := make([]entity.ServiceType, len(serviceTypes))
	copy(out, serviceTypes)
	return out
}

// AllTimeSlots returns the fixed ordered list of bookable slots, shared
// across all dates.
func AllTimeSlots() []entity.TimeSlot {
	out := make([]entity.TimeSlot, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// SlotByLabel looks up a slot by its label string.
func SlotByLabel(label string) (entity.TimeSlot, bool) {
	for _, slot := range timeSlots {
		if slot.Label == label {
			return slot, true
		}
	}
	return entity.TimeSlot{}, false
}
