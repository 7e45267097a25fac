package handler

import (
	"net/http"

	"vetclinic-booking/internal/delivery/http/middleware"
	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// Callback is the gateway return endpoint. Both outcomes land here with
// the same contract: ?payment_success=true|false&appointment_id=<uuid>.
// It is unauthenticated because the gateway redirects the client's
// browser to it; the appointment id alone cannot confirm anything that
// was not already awaiting exactly this payment.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	appointmentID, err := uuid.Parse(query.Get("appointment_id"))
	if err != nil {
		response.BadRequest(w, "appointment_id query parameter is required")
		return
	}

	success := query.Get("payment_success") == "true"

	receipt, err := h.paymentUsecase.Reconcile(r.Context(), appointmentID, success)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotPayable:
			response.Conflict(w, "Appointment is not awaiting payment")
		default:
			response.InternalServerError(w, "Failed to reconcile payment")
		}
		return
	}

	if !success {
		response.Success(w, http.StatusOK, "Payment failed, appointment still awaiting payment; retry available", nil)
		return
	}

	response.Success(w, http.StatusOK, "Payment confirmed", receipt)
}

// GetPaymentStatus polls the gateway for an appointment's intent status.
func (h *PaymentHandler) GetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	status, err := h.paymentUsecase.PollStatus(r.Context(), appointmentID, userID, roleID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotSessionOwner:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrNoPaymentIntent:
			response.Conflict(w, "Appointment has no payment intent")
		default:
			response.Error(w, http.StatusBadGateway, "Failed to query payment gateway", nil)
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment status retrieved", status)
}
