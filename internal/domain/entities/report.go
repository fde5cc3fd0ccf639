package entities

import "time"

// ReportDateLabelLayout formats the heading of a report group.
const ReportDateLabelLayout = "02/01/2006"

// Report is the date-range aggregation of the estimate ledger for one viewer.
//
// Cost, profit and margin figures are pointers: they are nil whenever the
// viewer is not an admin, at every level of the report.
type Report struct {
	StartDate      *time.Time
	EndDate        *time.Time
	IncludesProfit bool
	Groups         []ReportGroup
	EstimateCount  int
	TotalAmount    float64
	TotalProfit    *float64
}

type ReportGroup struct {
	Date        time.Time
	Label       string
	Estimates   []ReportEstimate
	TotalAmount float64
	TotalProfit *float64
}

type ReportEstimate struct {
	ID          string
	Name        string
	Date        time.Time
	CreatedBy   string
	CreatedAt   time.Time
	TotalAmount float64
	TotalCost   *float64
	TotalProfit *float64
	Items       []ReportItem
}

type ReportItem struct {
	TemplateID          string
	TemplateCode        string
	TemplateDescription string
	Quantity            float64
	Price               float64
	ProfitMargin        *float64
	Profit              *float64
}
