package insights

import (
	"github.com/shopspring/decimal"

	"ledgerly/internal/models"
)

// GoalProgress is the progress-bar view of a savings goal.
type GoalProgress struct {
	PercentSaved int64           `json:"percent_saved"`
	Remaining    decimal.Decimal `json:"remaining"`
	Reached      bool            `json:"reached"`
}

// GoalProgressOf reports how far g is from its target. The percentage is
// clamped to [0,100].
func GoalProgressOf(g models.Goal) GoalProgress {
	p := GoalProgress{
		Remaining: decimal.Max(decimal.Zero, g.TargetAmount.Sub(g.SavedAmount)),
	}
	if g.TargetAmount.IsPositive() {
		p.PercentSaved = clampPercent(Percent(g.SavedAmount, g.TargetAmount))
		p.Reached = g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
	}
	return p
}
