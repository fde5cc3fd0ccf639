package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"estimador/internal/domain/entities"
)

func sampleEstimate() entities.Estimate {
	e := entities.Estimate{
		ID:        "est-1",
		Name:      "Kitchen",
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Items:     []entities.EstimateItem{entities.NewEstimateItem(entities.Template{ID: "tpl-1", Code: "C-1", Quantity: 2, Price: 10, ProfitMargin: 10})},
		CreatedAt: time.Now().UTC(),
		CreatedBy: "ana",
	}
	e.ApplyTotals()
	return e
}

func TestFromEstimate_Admin(t *testing.T) {
	res := FromEstimate(sampleEstimate(), entities.Identity{Role: entities.RoleAdmin})

	if res.ID != "est-1" || res.Date != "2024-05-01" || res.TotalAmount != 22 {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.TotalProfit == nil || *res.TotalProfit != 2 || res.TotalCost == nil || *res.TotalCost != 20 {
		t.Fatalf("admin should see cost and profit: %+v", res)
	}
	it := res.Items[0]
	if it.Profit == nil || *it.Profit != 2 || it.ProfitMargin == nil || *it.ProfitMargin != 10 {
		t.Fatalf("admin should see item profit: %+v", it)
	}
}

func TestFromEstimate_UserIsRedacted(t *testing.T) {
	res := FromEstimate(sampleEstimate(), entities.Identity{Role: entities.RoleUser})

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, field := range []string{"profit", "cost", "profit_margin"} {
		if strings.Contains(body, `"`+field) || strings.Contains(body, "_"+field+`"`) {
			t.Fatalf("user payload leaks %s: %s", field, body)
		}
	}
	if res.TotalAmount != 22 || res.Items[0].Total != 22 {
		t.Fatalf("amounts must stay visible: %+v", res)
	}
}

func TestFromTemplate_MarginForAdminsOnly(t *testing.T) {
	tpl := entities.Template{ID: "tpl-1", ProfitMargin: 15}
	if FromTemplate(tpl, entities.Identity{Role: entities.RoleUser}).ProfitMargin != nil {
		t.Fatalf("user should not see margin")
	}
	if m := FromTemplate(tpl, entities.Identity{Role: entities.RoleAdmin}).ProfitMargin; m == nil || *m != 15 {
		t.Fatalf("admin should see margin, got %v", m)
	}
}

func TestFromIdentity_Screens(t *testing.T) {
	res := FromIdentity(entities.Identity{UserID: "u-1", Username: "ana", Role: entities.RoleUser})
	if res.LandingScreen != "estimate_creation" {
		t.Fatalf("unexpected landing screen %q", res.LandingScreen)
	}
	for _, s := range res.Screens {
		if s == "user_management" || s == "template_management" {
			t.Fatalf("user should not be offered %s", s)
		}
	}
}

func TestFromReport_KeepsRedaction(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	r := entities.Report{
		StartDate: &day,
		Groups: []entities.ReportGroup{{
			Date: day, Label: "01/05/2024", TotalAmount: 22,
			Estimates: []entities.ReportEstimate{{ID: "e1", Date: day, TotalAmount: 22, Items: []entities.ReportItem{{TemplateCode: "C-1"}}}},
		}},
		EstimateCount: 1,
		TotalAmount:   22,
	}

	raw, err := json.Marshal(FromReport(r))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	if strings.Contains(body, "total_profit") || strings.Contains(body, "profit_margin") || strings.Contains(body, "total_cost") {
		t.Fatalf("redacted report leaks profit: %s", body)
	}
	if !strings.Contains(body, `"start_date":"2024-05-01"`) || strings.Contains(body, "end_date") {
		t.Fatalf("unexpected bounds: %s", body)
	}
}
