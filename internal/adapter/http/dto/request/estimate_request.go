package request

import (
	"strings"

	"estimador/internal/usecase"
)

// CreateEstimateRequest is submitted by the estimate creation screen.
//
// TemplateIDs keeps the selection order; a template picked twice appears
// twice.
type CreateEstimateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Date        string   `json:"date" binding:"required" example:"2024-05-01"`
	TemplateIDs []string `json:"template_ids" binding:"required,min=1"`
}

func (r CreateEstimateRequest) ToCommand(createdBy string) usecase.CreateEstimateCommand {
	ids := make([]string, 0, len(r.TemplateIDs))
	for _, id := range r.TemplateIDs {
		ids = append(ids, strings.TrimSpace(id))
	}
	return usecase.CreateEstimateCommand{
		Name:        r.Name,
		Date:        r.Date,
		TemplateIDs: ids,
		CreatedBy:   createdBy,
	}
}
