package converter

import (
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
)

// UnavailabilityToResponse converts an UnavailabilityPeriod to its DTO
func UnavailabilityToResponse(period *entity.UnavailabilityPeriod) *dto.UnavailabilityResponse {
	if period == nil {
		return nil
	}

	return &dto.UnavailabilityResponse{
		ID:          period.ID,
		ClinicianID: period.ClinicianID,
		Date:        period.DateKey(),
		IsAllDay:    period.IsAllDay,
		StartTime:   period.StartTime,
		EndTime:     period.EndTime,
		Reason:      period.Reason,
		CreatedAt:   period.CreatedAt,
	}
}

// UnavailabilitiesToResponses converts a slice of periods to response DTOs
func UnavailabilitiesToResponses(periods []entity.UnavailabilityPeriod) []dto.UnavailabilityResponse {
	responses := make([]dto.UnavailabilityResponse, len(periods))
	for i := range periods {
		resp := UnavailabilityToResponse(&periods[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
