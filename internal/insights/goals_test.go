package insights

import (
	"testing"

	"ledgerly/internal/models"
)

func TestGoalProgressOf(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		saved     string
		percent   int64
		remaining string
		reached   bool
	}{
		{"empty", "1000", "0", 0, "1000", false},
		{"partial", "1000", "250", 25, "750", false},
		{"reached", "1000", "1000", 100, "0", true},
		{"overshoot_clamped", "1000", "5000", 100, "0", true},
		{"zero_target", "0", "10", 0, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GoalProgressOf(models.Goal{TargetAmount: dec(tt.target), SavedAmount: dec(tt.saved)})
			if p.PercentSaved != tt.percent {
				t.Errorf("expected %d%%, got %d%%", tt.percent, p.PercentSaved)
			}
			if !p.Remaining.Equal(dec(tt.remaining)) {
				t.Errorf("expected remaining %s, got %s", tt.remaining, p.Remaining)
			}
			if p.Reached != tt.reached {
				t.Errorf("expected reached=%v, got %v", tt.reached, p.Reached)
			}
		})
	}
}
