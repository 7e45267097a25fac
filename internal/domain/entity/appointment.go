package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending        AppointmentStatus = "pending"
	AppointmentStatusConfirmed      AppointmentStatus = "confirmed"
	AppointmentStatusPendingPayment AppointmentStatus = "pending_payment"
	AppointmentStatusCancelled      AppointmentStatus = "cancelled"
	AppointmentStatusDone           AppointmentStatus = "done"
	AppointmentStatusNoShow         AppointmentStatus = "no_show"
)

// PaymentMethod represents how an appointment is paid
type PaymentMethod string

const (
	PaymentMethodUnset PaymentMethod = ""
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodGCash PaymentMethod = "gcash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodMaya  PaymentMethod = "maya"
)

// IsOnline reports whether the method settles through the payment gateway.
func (m PaymentMethod) IsOnline() bool {
	switch m {
	case PaymentMethodGCash, PaymentMethodCard, PaymentMethodMaya:
		return true
	}
	return false
}

// Valid reports whether the method is one a booking may select.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m.IsOnline()
}

// BookingOrigin tags who initiated a booking, so validation rules are
// expressed per origin instead of ad hoc null checks.
type BookingOrigin string

const (
	OriginClientSelf     BookingOrigin = "client_self"
	OriginStaffOnBehalf  BookingOrigin = "staff_on_behalf"
	OriginStaffAnonymous BookingOrigin = "staff_anonymous"
)

// Appointment represents one booked clinic visit. The central invariant:
// for a given (date, slot label) at most one appointment with a status
// other than cancelled may exist, enforced by a partial unique index on
// (appointment_date, slot_label) WHERE status <> 'cancelled'.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingCode     string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"booking_code"`
	ClientID        *uuid.UUID        `gorm:"type:uuid;index" json:"client_id,omitempty"`
	ClientEmail     string            `gorm:"type:varchar(255);index" json:"client_email,omitempty"`
	PetID           *uuid.UUID        `gorm:"type:uuid;index" json:"pet_id,omitempty"`
	PetName         string            `gorm:"type:varchar(100)" json:"pet_name,omitempty"`
	ServiceCode     string            `gorm:"type:varchar(50);not null" json:"service_code"`
	Price           decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"price"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	SlotLabel       string            `gorm:"type:varchar(50);not null" json:"slot_label"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod   PaymentMethod     `gorm:"type:varchar(20);not null;default:''" json:"payment_method"`
	PaymentIntentID string            `gorm:"type:varchar(100)" json:"payment_intent_id,omitempty"`
	Origin          BookingOrigin     `gorm:"type:varchar(20);not null;default:'client_self'" json:"origin"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Pet *Pet `gorm:"foreignKey:PetID" json:"pet,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// DateKey returns the normalized YYYY-MM-DD slot-key date.
func (a *Appointment) DateKey() string {
	return a.AppointmentDate.Format(DateLayout)
}

// HoldsSlot reports whether the appointment still occupies its slot key.
func (a *Appointment) HoldsSlot() bool {
	return a.Status != AppointmentStatusCancelled
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsConfirmed checks if the appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// statusTransitions is the legality table for staff status mutations.
// Done, no-show and cancelled are terminal.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:        {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusPendingPayment: {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed:      {AppointmentStatusDone, AppointmentStatusNoShow, AppointmentStatusCancelled},
}

// CanTransitionTo reports whether moving to next is a legal status change.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ConfirmOnlinePayment transitions a pending-payment appointment to
// confirmed. Returns false when the appointment was not awaiting
// payment, which makes gateway callback reconciliation idempotent: a
// second invocation is a no-op. The payment method is already set; it
// was chosen when the appointment was written.
func (a *Appointment) ConfirmOnlinePayment() bool {
	if a.Status != AppointmentStatusPendingPayment {
		return false
	}
	a.Status = AppointmentStatusConfirmed
	return true
}

// Cancel changes the appointment status to cancelled, freeing its slot key
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
