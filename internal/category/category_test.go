package category

import (
	"testing"
)

func TestDefault_HasTenCategories(t *testing.T) {
	tbl := Default()
	if tbl.Len() != 10 {
		t.Fatalf("Default().Len() = %d, want 10", tbl.Len())
	}

	all := tbl.All()
	if all[0].ID != "surveys" {
		t.Errorf("first category = %q, want surveys", all[0].ID)
	}
	if all[9].ID != "rare-disease" {
		t.Errorf("last category = %q, want rare-disease", all[9].ID)
	}

	for _, c := range all {
		if c.Name == "" || c.Description == "" {
			t.Errorf("category %q has empty name or description", c.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		id       string
		wantOK   bool
		wantName string
	}{
		{"loss-functions", true, "Loss Functions"},
		{"fairness", true, "Fairness, Bias, and Health Equity"},
		{"multimodality", true, "Multi-modality"},
		{"not-a-category", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			c, ok := Default().Lookup(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if c.Name != tt.wantName {
				t.Errorf("Lookup(%q).Name = %q, want %q", tt.id, c.Name, tt.wantName)
			}
		})
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := Default().All()
	all[0].Name = "mutated"

	c, _ := Default().Lookup("surveys")
	if c.Name == "mutated" {
		t.Error("mutating All() result changed the table")
	}
	if Default().All()[0].Name == "mutated" {
		t.Error("mutating All() result changed later All() calls")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "- name: X\n  description: Y\n"},
		{"duplicate id", "- id: a\n  name: A\n- id: a\n  name: B\n"},
		{"not a list", "id: a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("Parse() expected error for %s", tt.name)
			}
		})
	}
}

func TestParse_PreservesOrder(t *testing.T) {
	tbl, err := Parse([]byte("- id: b\n  name: B\n- id: a\n  name: A\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	all := tbl.All()
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "a" {
		t.Errorf("All() = %+v, want order [b a]", all)
	}
}
