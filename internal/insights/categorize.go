package insights

import "strings"

// FallbackCategory is assigned when no keyword matches.
const FallbackCategory = "other"

// Rule maps a category to the keywords that select it.
type Rule struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// defaultRules is scanned top to bottom; the first hit wins, so order matters.
var defaultRules = []Rule{
	{Category: "food", Keywords: []string{"food", "meal", "coffee", "cafe", "restaurant", "snack"}},
	{Category: "travel", Keywords: []string{"bus", "taxi", "grab", "uber", "flight", "train", "fuel", "gas"}},
	{Category: "rent", Keywords: []string{"rent", "apartment", "room", "lease"}},
	{Category: "shopping", Keywords: []string{"shop", "shopee", "lazada", "mall", "market"}},
	{Category: "utilities", Keywords: []string{"electric", "water", "internet", "wifi", "phone", "mobile", "bill"}},
	{Category: "investment", Keywords: []string{"stock", "coin", "crypto", "mutual", "fund", "broker"}},
}

// Rules returns a copy of the keyword table in match order.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	for i, r := range defaultRules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Categorize guesses a category for a free-text note.
//
// Matching is a case-insensitive substring test, not a word match:
// "automobile" hits "mobile" and lands in utilities.
func Categorize(note string) string {
	text := strings.ToLower(note)
	if text == "" {
		return FallbackCategory
	}
	for _, rule := range defaultRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}
	return FallbackCategory
}
