package converter

import (
	"vetclinic-booking/internal/catalog"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:            appointment.ID,
		BookingCode:   appointment.BookingCode,
		ClientID:      appointment.ClientID,
		ClientEmail:   appointment.ClientEmail,
		PetID:         appointment.PetID,
		PetName:       appointment.PetName,
		ServiceCode:   appointment.ServiceCode,
		Price:         appointment.Price.StringFixed(2),
		Date:          appointment.DateKey(),
		SlotLabel:     appointment.SlotLabel,
		Status:        string(appointment.Status),
		PaymentMethod: string(appointment.PaymentMethod),
		Origin:        string(appointment.Origin),
		CreatedAt:     appointment.CreatedAt,
		UpdatedAt:     appointment.UpdatedAt,
	}

	if st, err := catalog.ServiceTypeByCode(appointment.ServiceCode); err == nil {
		response.ServiceLabel = st.DisplayLabel
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
