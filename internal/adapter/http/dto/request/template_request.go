package request

import "estimador/internal/usecase"

// TemplateRequest is the template form. Numbers are pointers so that a
// missing field is rejected while an explicit 0 is accepted.
type TemplateRequest struct {
	Code         string   `json:"code" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Quantity     *float64 `json:"quantity" binding:"required"`
	Price        *float64 `json:"price" binding:"required"`
	ProfitMargin *float64 `json:"profit_margin" binding:"required"`
}

func (r TemplateRequest) ToInput(id string) usecase.TemplateInput {
	return usecase.TemplateInput{
		ID:           id,
		Code:         r.Code,
		Description:  r.Description,
		Quantity:     r.Quantity,
		Price:        r.Price,
		ProfitMargin: r.ProfitMargin,
	}
}
