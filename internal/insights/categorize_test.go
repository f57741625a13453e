package insights

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		note string
		want string
	}{
		{"Coffee at Highlands", "food"},
		{"Grab to airport", "travel"},
		{"", "other"},
		{"Random noise xyz", "other"},
		{"MONTHLY RENT", "rent"},
		{"Shopee order", "shopping"},
		{"wifi top-up", "utilities"},
		{"bought crypto", "investment"},
		// substring, not word, match
		{"automobile repair", "utilities"},
		// earlier rules win: "meal" (food) before "bus" (travel)
		{"meal on the bus", "food"},
		// "gas" belongs to travel even inside a utilities-looking note
		{"gas bill", "travel"},
	}

	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			if got := Categorize(tt.note); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.note, got, tt.want)
			}
		})
	}
}

func TestRules(t *testing.T) {
	rules := Rules()
	if len(rules) != 6 {
		t.Fatalf("expected 6 rules, got %d", len(rules))
	}
	order := []string{"food", "travel", "rent", "shopping", "utilities", "investment"}
	for i, want := range order {
		if rules[i].Category != want {
			t.Errorf("rule %d: expected %s, got %s", i, want, rules[i].Category)
		}
	}

	rules[0].Keywords[0] = "mutated"
	if Categorize("food court") != "food" {
		t.Error("mutating the returned rules must not affect Categorize")
	}
}
