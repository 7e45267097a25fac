package entity

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	StartDate   string // Format: YYYY-MM-DD
	EndDate     string // Format: YYYY-MM-DD
	Status      string
	ClientEmail string
	PetID       string
}
