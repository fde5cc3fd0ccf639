package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for estimate dates and report
// filters.
const DateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// EstimateItem is a snapshot of a Template taken when the estimate is
// created. Later edits to the template never reach it.
//
// Pricing rules:
//   - Cost   = Quantity * Price
//   - Profit = Cost * ProfitMargin / 100
//   - Total  = Cost + Profit
type EstimateItem struct {
	TemplateID          string  `json:"template_id"`
	TemplateCode        string  `json:"template_code"`
	TemplateDescription string  `json:"template_description"`
	Quantity            float64 `json:"quantity"`
	Price               float64 `json:"price"`
	ProfitMargin        float64 `json:"profit_margin"`
	Cost                float64 `json:"cost"`
	Profit              float64 `json:"profit"`
	Total               float64 `json:"total"`
}

// Estimate is a priced quote. It is immutable once created.
//
// Date is a calendar date kept at UTC midnight.
type Estimate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Date        time.Time      `json:"date"`
	Items       []EstimateItem `json:"items"`
	TotalCost   float64        `json:"total_cost"`
	TotalProfit float64        `json:"total_profit"`
	TotalAmount float64        `json:"total_amount"`
	CreatedAt   time.Time      `json:"created_at"`
	CreatedBy   string         `json:"created_by"`
}

// NewEstimateItem snapshots t and prices it.
func NewEstimateItem(t Template) EstimateItem {
	cost := decimal.NewFromFloat(t.Quantity).Mul(decimal.NewFromFloat(t.Price))
	profit := cost.Mul(decimal.NewFromFloat(t.ProfitMargin)).Div(hundred)
	total := cost.Add(profit)

	return EstimateItem{
		TemplateID:          t.ID,
		TemplateCode:        t.Code,
		TemplateDescription: t.Description,
		Quantity:            t.Quantity,
		Price:               t.Price,
		ProfitMargin:        t.ProfitMargin,
		Cost:                cost.InexactFloat64(),
		Profit:              profit.InexactFloat64(),
		Total:               total.InexactFloat64(),
	}
}

// ApplyTotals recomputes the estimate totals from its items.
func (e *Estimate) ApplyTotals() {
	cost, profit, total := decimal.Zero, decimal.Zero, decimal.Zero
	for _, it := range e.Items {
		cost = cost.Add(decimal.NewFromFloat(it.Cost))
		profit = profit.Add(decimal.NewFromFloat(it.Profit))
		total = total.Add(decimal.NewFromFloat(it.Total))
	}
	e.TotalCost = cost.InexactFloat64()
	e.TotalProfit = profit.InexactFloat64()
	e.TotalAmount = total.InexactFloat64()
}

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DateOnly drops the clock part of t, keeping its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
