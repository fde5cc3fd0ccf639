package response

import (
	"time"

	"estimador/internal/domain/entities"
)

// TemplateResponse carries the profit margin for admins only.
type TemplateResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
	Quantity     float64   `json:"quantity"`
	Price        float64   `json:"price"`
	ProfitMargin *float64  `json:"profit_margin,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromTemplate(t entities.Template, viewer entities.Identity) TemplateResponse {
	res := TemplateResponse{
		ID:          t.ID,
		Code:        t.Code,
		Description: t.Description,
		Quantity:    t.Quantity,
		Price:       t.Price,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if viewer.IsAdmin() {
		res.ProfitMargin = floatPtr(t.ProfitMargin)
	}
	return res
}

func FromTemplates(list []entities.Template, viewer entities.Identity) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, FromTemplate(t, viewer))
	}
	return out
}
