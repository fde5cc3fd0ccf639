package request

import "estimador/internal/usecase"

// ReportQuery holds the report filters from the query string.
type ReportQuery struct {
	StartDate string `form:"start_date" example:"2024-05-01"`
	EndDate   string `form:"end_date" example:"2024-05-31"`
	Format    string `form:"format" example:"xlsx"`
}

func (q ReportQuery) Filter() usecase.ReportFilter {
	return usecase.ReportFilter{StartDate: q.StartDate, EndDate: q.EndDate}
}
