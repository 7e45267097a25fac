package entity

import "github.com/shopspring/decimal"

// ServiceType is a static catalog entry for a clinic service.
// Catalog entries are immutable and loaded at process start; appointment
// prices are snapshotted from the catalog at booking time, so later
// catalog changes never affect existing appointments.
type ServiceType struct {
	Code         string          `json:"code"`
	DisplayLabel string          `json:"display_label"`
	Price        decimal.Decimal `json:"price"`
}
