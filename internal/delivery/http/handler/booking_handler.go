package handler

import (
	"encoding/json"
	"net/http"

	"vetclinic-booking/internal/catalog"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/delivery/http/middleware"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/response"
	"vetclinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUseCase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUseCase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func actorFromContext(r *http.Request) (uuid.UUID, int, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, 0, "", false
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())
	email, _ := middleware.GetUserEmailFromContext(r.Context())
	return userID, roleID, email, true
}

func sessionIDFromPath(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func (h *BookingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, roleID, email, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.StartBookingSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.bookingUsecase.StartSession(r.Context(), &req, userID, roleID, email)
	if err != nil {
		switch err {
		case usecase.ErrForbiddenOrigin:
			response.Forbidden(w, "Origin requires a staff account")
		case usecase.ErrClientNotFound:
			response.NotFound(w, "Client not found")
		default:
			response.InternalServerError(w, "Failed to start booking session")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking session started", session)
}

func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, roleID, _, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	sessionID, err := sessionIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	session, err := h.bookingUsecase.GetSession(r.Context(), sessionID, userID, roleID)
	if err != nil {
		h.writeSessionError(w, err, "Failed to get booking session")
		return
	}

	response.Success(w, http.StatusOK, "Booking session retrieved", session)
}

func (h *BookingHandler) SelectPet(w http.ResponseWriter, r *http.Request) {
	userID, roleID, _, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	sessionID, err := sessionIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.SelectPetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.bookingUsecase.SelectPet(r.Context(), sessionID, &req, userID, roleID)
	if err != nil {
		switch err {
		case usecase.ErrPetNotFound:
			response.NotFound(w, "Pet not found")
		case usecase.ErrNotPetOwner:
			response.Forbidden(w, "Pet does not belong to the booking client")
		default:
			h.writeSessionError(w, err, "Failed to select pet")
		}
		return
	}

	response.Success(w, http.StatusOK, "Pet selected", session)
}

func (h *BookingHandler) SelectServiceAndSlot(w http.ResponseWriter, r *http.Request) {
	userID, roleID, _, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	sessionID, err := sessionIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.SelectServiceAndSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.bookingUsecase.SelectServiceAndSlot(r.Context(), sessionID, &req, userID, roleID)
	if err != nil {
		switch err {
		case usecase.ErrPastDate:
			response.Error(w, http.StatusBadRequest, "Appointment date is in the past", nil)
		case usecase.ErrUnknownSlot:
			response.Error(w, http.StatusBadRequest, "Unknown slot label", nil)
		case catalog.ErrUnknownServiceType:
			response.Error(w, http.StatusBadRequest, "Unknown service type", nil)
		case usecase.ErrDateBlocked:
			response.Conflict(w, "Clinic is closed on the requested date")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Slot is no longer available")
		default:
			h.writeSessionError(w, err, "Failed to select service and slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service and slot selected", session)
}

func (h *BookingHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID, roleID, _, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	sessionID, err := sessionIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.SelectPaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.bookingUsecase.SelectPaymentMethod(r.Context(), sessionID, &req, userID, roleID)
	if err != nil {
		h.writeSessionError(w, err, "Failed to select payment method")
		return
	}

	response.Success(w, http.StatusOK, "Payment method selected", session)
}

func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, roleID, _, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	sessionID, err := sessionIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	result, err := h.bookingUsecase.Submit(r.Context(), sessionID, userID, roleID)
	if err != nil {
		switch err {
		case usecase.ErrDateBlocked:
			response.Conflict(w, "Clinic is closed on the requested date")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Slot was taken by another booking, please pick a new slot")
		case usecase.ErrPaymentGatewayDown:
			response.Error(w, http.StatusBadGateway, "Payment gateway is unavailable, please retry", nil)
		default:
			h.writeSessionError(w, err, "Failed to submit booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking submitted successfully", result)
}

func (h *BookingHandler) Retry(w http.ResponseWriter, r *http.Request) {
	userID, roleID, _, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	sessionID, err := sessionIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	session, err := h.bookingUsecase.Retry(r.Context(), sessionID, userID, roleID)
	if err != nil {
		h.writeSessionError(w, err, "Failed to retry booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking draft restored for retry", session)
}

// writeSessionError maps the shared session error cases.
func (h *BookingHandler) writeSessionError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrSessionNotFound:
		response.NotFound(w, "Booking session not found or expired")
	case usecase.ErrNotSessionOwner:
		response.Forbidden(w, "Booking session does not belong to you")
	case entity.ErrInvalidSessionState:
		response.Conflict(w, "Booking step is not allowed in the current state")
	default:
		response.InternalServerError(w, fallback)
	}
}
