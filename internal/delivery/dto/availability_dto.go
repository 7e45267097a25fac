package dto

// Response DTOs

type SlotAvailability struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

type DayAvailabilityResponse struct {
	Date        string             `json:"date"`
	DateBlocked bool               `json:"date_blocked"`
	Slots       []SlotAvailability `json:"slots"`
}

type ServiceTypeResponse struct {
	Code         string `json:"code"`
	DisplayLabel string `json:"display_label"`
	Price        string `json:"price"`
}

type CatalogResponse struct {
	ServiceTypes []ServiceTypeResponse `json:"service_types"`
	TimeSlots    []string              `json:"time_slots"`
}
