package dto

// Response DTOs

// ReceiptResponse is shown after a successful payment reconciliation.
type ReceiptResponse struct {
	Appointment  *AppointmentResponse `json:"appointment"`
	ServiceLabel string               `json:"service_label"`
	PetName      string               `json:"pet_name,omitempty"`
	AmountPaid   string               `json:"amount_paid"`
	Method       string               `json:"method"`
}

type PaymentStatusResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	Status          string `json:"status"`
}
