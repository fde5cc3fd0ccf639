package request

import (
	"testing"
)

func TestCreateEstimateRequest_ToCommand(t *testing.T) {
	r := CreateEstimateRequest{
		Name:        "Kitchen",
		Date:        "2024-05-01",
		TemplateIDs: []string{" tpl-1 ", "tpl-2", "tpl-1"},
	}

	cmd := r.ToCommand("ana")
	if cmd.CreatedBy != "ana" || cmd.Name != "Kitchen" || cmd.Date != "2024-05-01" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if len(cmd.TemplateIDs) != 3 || cmd.TemplateIDs[0] != "tpl-1" || cmd.TemplateIDs[2] != "tpl-1" {
		t.Fatalf("expected order and repetitions kept, got %v", cmd.TemplateIDs)
	}
}

func TestTemplateRequest_ToInput(t *testing.T) {
	q, p, m := 2.0, 0.0, 10.0
	r := TemplateRequest{Code: "C-1", Description: "Cable", Quantity: &q, Price: &p, ProfitMargin: &m}

	in := r.ToInput("tpl-1")
	if in.ID != "tpl-1" || in.Code != "C-1" || in.Description != "Cable" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.Price == nil || *in.Price != 0 {
		t.Fatalf("expected explicit zero price, got %v", in.Price)
	}
}
