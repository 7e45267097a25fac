package converter

import (
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
)

// BookingSessionToResponse converts a BookingSession to its DTO. The
// checkout URL is surfaced separately by the submit response, not here.
func BookingSessionToResponse(session *entity.BookingSession) *dto.BookingSessionResponse {
	if session == nil {
		return nil
	}

	response := &dto.BookingSessionResponse{
		ID:            session.ID,
		State:         string(session.State),
		Origin:        string(session.Origin),
		PetID:         session.PetID,
		PetName:       session.PetName,
		Date:          session.Date,
		SlotLabel:     session.SlotLabel,
		ServiceCode:   session.ServiceCode,
		PaymentMethod: string(session.PaymentMethod),
		FailureReason: session.FailureReason,
	}

	if session.ServiceCode != "" {
		response.Price = session.Price.StringFixed(2)
	}

	return response
}
