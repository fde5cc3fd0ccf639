package entities

import (
	"testing"
	"time"
)

func TestNewEstimateItem_Pricing(t *testing.T) {
	item := NewEstimateItem(Template{ID: "tpl-1", Code: "C-1", Description: "Cable", Quantity: 2, Price: 10, ProfitMargin: 10})

	if item.Cost != 20 || item.Profit != 2 || item.Total != 22 {
		t.Fatalf("unexpected pricing: %+v", item)
	}
	if item.TemplateID != "tpl-1" || item.TemplateCode != "C-1" || item.TemplateDescription != "Cable" {
		t.Fatalf("unexpected snapshot: %+v", item)
	}
}

func TestNewEstimateItem_DecimalMargins(t *testing.T) {
	item := NewEstimateItem(Template{Quantity: 3, Price: 0.1, ProfitMargin: 15})

	if item.Cost != 0.3 {
		t.Fatalf("expected cost 0.3, got %v", item.Cost)
	}
	if item.Profit != 0.045 {
		t.Fatalf("expected profit 0.045, got %v", item.Profit)
	}
	if item.Total != 0.345 {
		t.Fatalf("expected total 0.345, got %v", item.Total)
	}
}

func TestEstimate_ApplyTotals(t *testing.T) {
	e := Estimate{Items: []EstimateItem{
		NewEstimateItem(Template{Quantity: 2, Price: 10, ProfitMargin: 10}),
		NewEstimateItem(Template{Quantity: 1, Price: 5.5, ProfitMargin: 0}),
	}}
	e.ApplyTotals()

	if e.TotalCost != 25.5 || e.TotalProfit != 2 || e.TotalAmount != 27.5 {
		t.Fatalf("unexpected totals: cost=%v profit=%v amount=%v", e.TotalCost, e.TotalProfit, e.TotalAmount)
	}

	empty := Estimate{}
	empty.ApplyTotals()
	if empty.TotalAmount != 0 || empty.TotalCost != 0 || empty.TotalProfit != 0 {
		t.Fatalf("expected zero totals, got %+v", empty)
	}
}

func TestParseDateAndDateOnly(t *testing.T) {
	d, err := ParseDate("2024-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.March || d.Day() != 9 || d.Location() != time.UTC {
		t.Fatalf("unexpected date: %v", d)
	}
	if _, err := ParseDate("09/03/2024"); err == nil {
		t.Fatalf("expected error for non ISO date")
	}

	withClock := time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC)
	if !DateOnly(withClock).Equal(d) {
		t.Fatalf("expected %v, got %v", d, DateOnly(withClock))
	}
}

func TestLandingScreen(t *testing.T) {
	if LandingScreen(RoleAdmin) != ScreenUserManagement {
		t.Fatalf("admins land on user management")
	}
	if LandingScreen(RoleUser) != ScreenEstimateCreation {
		t.Fatalf("users land on estimate creation")
	}
	for _, s := range ScreensFor(RoleUser) {
		if s == ScreenUserManagement || s == ScreenTemplateManagement {
			t.Fatalf("user must not reach admin screen %s", s)
		}
	}
	if !RoleAdmin.IsValid() || Role("root").IsValid() {
		t.Fatalf("unexpected role validation")
	}
}
