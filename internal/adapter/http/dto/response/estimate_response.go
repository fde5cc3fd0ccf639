package response

import (
	"time"

	"estimador/internal/domain/entities"
)

// EstimateItemResponse omits margin, cost and profit unless the viewer is
// an admin.
type EstimateItemResponse struct {
	TemplateID          string   `json:"template_id"`
	TemplateCode        string   `json:"template_code"`
	TemplateDescription string   `json:"template_description"`
	Quantity            float64  `json:"quantity"`
	Price               float64  `json:"price"`
	ProfitMargin        *float64 `json:"profit_margin,omitempty"`
	Cost                *float64 `json:"cost,omitempty"`
	Profit              *float64 `json:"profit,omitempty"`
	Total               float64  `json:"total"`
}

type EstimateResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Date        string                 `json:"date"`
	Items       []EstimateItemResponse `json:"items"`
	TotalCost   *float64               `json:"total_cost,omitempty"`
	TotalProfit *float64               `json:"total_profit,omitempty"`
	TotalAmount float64                `json:"total_amount"`
	CreatedAt   time.Time              `json:"created_at"`
	CreatedBy   string                 `json:"created_by"`
}

func FromEstimate(e entities.Estimate, viewer entities.Identity) EstimateResponse {
	admin := viewer.IsAdmin()
	res := EstimateResponse{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date.UTC().Format(entities.DateLayout),
		Items:       make([]EstimateItemResponse, 0, len(e.Items)),
		TotalAmount: e.TotalAmount,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	if admin {
		res.TotalCost = floatPtr(e.TotalCost)
		res.TotalProfit = floatPtr(e.TotalProfit)
	}
	for _, it := range e.Items {
		item := EstimateItemResponse{
			TemplateID:          it.TemplateID,
			TemplateCode:        it.TemplateCode,
			TemplateDescription: it.TemplateDescription,
			Quantity:            it.Quantity,
			Price:               it.Price,
			Total:               it.Total,
		}
		if admin {
			item.ProfitMargin = floatPtr(it.ProfitMargin)
			item.Cost = floatPtr(it.Cost)
			item.Profit = floatPtr(it.Profit)
		}
		res.Items = append(res.Items, item)
	}
	return res
}

func FromEstimates(list []entities.Estimate, viewer entities.Identity) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEstimate(e, viewer))
	}
	return out
}

func floatPtr(v float64) *float64 {
	return &v
}
