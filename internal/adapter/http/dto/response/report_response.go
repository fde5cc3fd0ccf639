package response

import (
	"estimador/internal/domain/entities"
	"time"
)

type ReportItemResponse struct {
	TemplateID          string   `json:"template_id"`
	TemplateCode        string   `json:"template_code"`
	TemplateDescription string   `json:"template_description"`
	Quantity            float64  `json:"quantity"`
	Price               float64  `json:"price"`
	ProfitMargin        *float64 `json:"profit_margin,omitempty"`
	Profit              *float64 `json:"profit,omitempty"`
}

type ReportEstimateResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Date        string               `json:"date"`
	CreatedBy   string               `json:"created_by"`
	CreatedAt   time.Time            `json:"created_at"`
	TotalAmount float64              `json:"total_amount"`
	TotalCost   *float64             `json:"total_cost,omitempty"`
	TotalProfit *float64             `json:"total_profit,omitempty"`
	Items       []ReportItemResponse `json:"items"`
}

type ReportGroupResponse struct {
	Date        string                   `json:"date"`
	Label       string                   `json:"label"`
	TotalAmount float64                  `json:"total_amount"`
	TotalProfit *float64                 `json:"total_profit,omitempty"`
	Estimates   []ReportEstimateResponse `json:"estimates"`
}

// ReportResponse passes the redaction of entities.Report through: fields the
// viewer may not see are nil and left out of the JSON.
type ReportResponse struct {
	StartDate      *string               `json:"start_date,omitempty"`
	EndDate        *string               `json:"end_date,omitempty"`
	IncludesProfit bool                  `json:"includes_profit"`
	EstimateCount  int                   `json:"estimate_count"`
	TotalAmount    float64               `json:"total_amount"`
	TotalProfit    *float64              `json:"total_profit,omitempty"`
	Groups         []ReportGroupResponse `json:"groups"`
}

func FromReport(r entities.Report) ReportResponse {
	res := ReportResponse{
		StartDate:      datePtr(r.StartDate),
		EndDate:        datePtr(r.EndDate),
		IncludesProfit: r.IncludesProfit,
		EstimateCount:  r.EstimateCount,
		TotalAmount:    r.TotalAmount,
		TotalProfit:    r.TotalProfit,
		Groups:         make([]ReportGroupResponse, 0, len(r.Groups)),
	}
	for _, g := range r.Groups {
		group := ReportGroupResponse{
			Date:        g.Date.Format(entities.DateLayout),
			Label:       g.Label,
			TotalAmount: g.TotalAmount,
			TotalProfit: g.TotalProfit,
			Estimates:   make([]ReportEstimateResponse, 0, len(g.Estimates)),
		}
		for _, e := range g.Estimates {
			est := ReportEstimateResponse{
				ID:          e.ID,
				Name:        e.Name,
				Date:        e.Date.Format(entities.DateLayout),
				CreatedBy:   e.CreatedBy,
				CreatedAt:   e.CreatedAt,
				TotalAmount: e.TotalAmount,
				TotalCost:   e.TotalCost,
				TotalProfit: e.TotalProfit,
				Items:       make([]ReportItemResponse, 0, len(e.Items)),
			}
			for _, it := range e.Items {
				est.Items = append(est.Items, ReportItemResponse{
					TemplateID:          it.TemplateID,
					TemplateCode:        it.TemplateCode,
					TemplateDescription: it.TemplateDescription,
					Quantity:            it.Quantity,
					Price:               it.Price,
					ProfitMargin:        it.ProfitMargin,
					Profit:              it.Profit,
				})
			}
			group.Estimates = append(group.Estimates, est)
		}
		res.Groups = append(res.Groups, group)
	}
	return res
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(entities.DateLayout)
	return &s
}
