package entities

import "time"

// Template is a reusable billable line item of the catalog.
//
// ProfitMargin is a percentage applied on top of Quantity * Price.
type Template struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
	Quantity     float64   `json:"quantity"`
	Price        float64   `json:"price"`
	ProfitMargin float64   `json:"profit_margin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
