package handler

import (
	"net/http"

	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/response"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUseCase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUsecase: availabilityUsecase}
}

// GetCatalog returns the service types and bookable time slots.
func (h *AvailabilityHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Catalog retrieved successfully",
		h.availabilityUsecase.GetCatalog(r.Context()))
}

// GetDayAvailability returns per-slot availability for ?date=YYYY-MM-DD.
func (h *AvailabilityHandler) GetDayAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}

	day, err := h.availabilityUsecase.GetDayAvailability(r.Context(), date)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", day)
}
