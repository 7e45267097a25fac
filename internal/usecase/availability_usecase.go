package usecase

import (
	"context"
	"time"

	"vetclinic-booking/internal/catalog"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/service"
)

type AvailabilityUseCase interface {
	GetDayAvailability(ctx context.Context, date string) (*dto.DayAvailabilityResponse, error)
	GetCatalog(ctx context.Context) *dto.CatalogResponse
}

type availabilityUseCase struct {
	index *service.AvailabilityIndex
}

func NewAvailabilityUseCase(index *service.AvailabilityIndex) AvailabilityUseCase {
	return &availabilityUseCase{index: index}
}

// GetDayAvailability returns per-slot availability for a date: a slot is
// available unless the date is closed, the slot intersects an
// unavailability window, or an active appointment holds it.
func (u *availabilityUseCase) GetDayAvailability(ctx context.Context, date string) (*dto.DayAvailabilityResponse, error) {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, err
	}

	dateBlocked, err := u.index.IsDateBlocked(ctx, date)
	if err != nil {
		return nil, err
	}

	blockedLabels, err := u.index.ListBlockedSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	blocked := make(map[string]struct{}, len(blockedLabels))
	for _, label := range blockedLabels {
		blocked[label] = struct{}{}
	}

	slots := catalog.AllTimeSlots()
	out := make([]dto.SlotAvailability, len(slots))
	for i, slot := range slots {
		_, slotBlocked := blocked[slot.Label]
		out[i] = dto.SlotAvailability{
			Label:     slot.Label,
			Available: !dateBlocked && !slotBlocked,
		}
	}

	return &dto.DayAvailabilityResponse{
		Date:        date,
		DateBlocked: dateBlocked,
		Slots:       out,
	}, nil
}

// GetCatalog returns the static service and slot reference data.
func (u *availabilityUseCase) GetCatalog(_ context.Context) *dto.CatalogResponse {
	serviceTypes := catalog.AllServiceTypes()
	services := make([]dto.ServiceTypeResponse, len(serviceTypes))
	for i, st := range serviceTypes {
		services[i] = dto.ServiceTypeResponse{
			Code:         st.Code,
			DisplayLabel: st.DisplayLabel,
			Price:        st.Price.StringFixed(2),
		}
	}

	slots := catalog.AllTimeSlots()
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = slot.Label
	}

	return &dto.CatalogResponse{
		ServiceTypes: services,
		TimeSlots:    labels,
	}
}
