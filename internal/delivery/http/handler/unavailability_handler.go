package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/delivery/http/middleware"
	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/response"
	"vetclinic-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type UnavailabilityHandler struct {
	unavailabilityUsecase usecase.UnavailabilityUseCase
	validator             *validator.CustomValidator
}

func NewUnavailabilityHandler(unavailabilityUsecase usecase.UnavailabilityUseCase, validator *validator.CustomValidator) *UnavailabilityHandler {
	return &UnavailabilityHandler{
		unavailabilityUsecase: unavailabilityUsecase,
		validator:             validator,
	}
}

func (h *UnavailabilityHandler) CreateUnavailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateUnavailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	period, err := h.unavailabilityUsecase.Create(r.Context(), &req, userID)
	if err != nil {
		switch err {
		case usecase.ErrInvalidTimeWindow:
			response.Error(w, http.StatusBadRequest, "End time must be after start time", nil)
		default:
			response.InternalServerError(w, "Failed to create unavailability period")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Unavailability period created", period)
}

// ListUnavailability accepts optional ?start_date= and ?end_date= bounds.
func (h *UnavailabilityHandler) ListUnavailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	periods, err := h.unavailabilityUsecase.List(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		response.BadRequest(w, "Dates must be in YYYY-MM-DD format")
		return
	}

	response.Success(w, http.StatusOK, "Unavailability periods retrieved", periods)
}

func (h *UnavailabilityHandler) DeleteUnavailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid period ID", nil)
		return
	}

	if err := h.unavailabilityUsecase.Delete(r.Context(), id, userID, roleID); err != nil {
		switch err {
		case usecase.ErrUnavailabilityNotFound:
			response.NotFound(w, "Unavailability period not found")
		case usecase.ErrNotPeriodOwner:
			response.Forbidden(w, "Period was declared by another clinician")
		default:
			response.InternalServerError(w, "Failed to delete unavailability period")
		}
		return
	}

	response.Success(w, http.StatusOK, "Unavailability period deleted", nil)
}
