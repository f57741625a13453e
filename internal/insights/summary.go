// Package insights turns already-fetched transactions, budgets, bills and
// goals into the figures the dashboard renders. Nothing in this package does
// I/O or keeps state, so every function is safe for concurrent use.
package insights

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ledgerly/internal/models"
)

// Warning thresholds, in percent of a budget limit.
const (
	ApproachingThreshold = 80
	OverThreshold        = 100
)

// WarningTier classifies a warning.
type WarningTier string

const (
	TierApproaching WarningTier = "approaching"
	TierOver        WarningTier = "over"
	TierOverspend   WarningTier = "overspend"
)

var (
	hundred          = decimal.NewFromInt(100)
	overspendRatio   = decimal.New(8, -1)
	overspendMessage = "you've spent more than 80% of your income this month"
)

// Totals holds income, expense and their difference.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// DailyPoint is one day of the income-vs-expense series.
type DailyPoint struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Warning is a message the dashboard shows above the charts.
type Warning struct {
	Category string      `json:"category,omitempty"`
	Tier     WarningTier `json:"tier"`
	Percent  int64       `json:"percent,omitempty"`
	Message  string      `json:"message"`
}

// BudgetProgress compares one category's spend with its limit.
// Percent is the raw rounded ratio and may exceed 100; PercentUsed is the
// progress-bar value and never leaves [0,100].
type BudgetProgress struct {
	BudgetIDs   []string        `json:"budget_ids"`
	Category    string          `json:"category"`
	Limit       decimal.Decimal `json:"limit_amount"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	Percent     int64           `json:"percent"`
	PercentUsed int64           `json:"percent_used"`
	Tier        WarningTier     `json:"tier,omitempty"`
}

// Summary is the full dashboard aggregate for one period.
type Summary struct {
	Totals          Totals                     `json:"totals"`
	ByCategory      []CategoryTotal            `json:"by_category"`
	Daily           []DailyPoint               `json:"daily"`
	SpentByCategory map[string]decimal.Decimal `json:"spent_by_category"`
	Budgets         []BudgetProgress           `json:"budgets"`
	Warnings        []Warning                  `json:"warnings"`
}

type dayTotals struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

type budgetLimit struct {
	ids   []string
	limit decimal.Decimal
}

// Summarize aggregates transactions and budgets that the caller has already
// narrowed to one period. Budgets sharing a category have their limits
// summed. Transactions of an unknown kind are ignored.
func Summarize(transactions []models.Transaction, budgets []models.Budget) Summary {
	var totals Totals
	spent := newOrderedMap[decimal.Decimal]()
	days := newOrderedMap[dayTotals]()

	for _, t := range transactions {
		date := t.OccurredOn.UTC().Format("2006-01-02")
		switch t.Kind {
		case models.TransactionKindIncome:
			totals.Income = totals.Income.Add(t.Amount)
			day := days.at(date)
			day.income = day.income.Add(t.Amount)
		case models.TransactionKindExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
			day := days.at(date)
			day.expense = day.expense.Add(t.Amount)
			s := spent.at(t.Category)
			*s = s.Add(t.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expense)

	summary := Summary{
		Totals:          totals,
		ByCategory:      make([]CategoryTotal, 0, spent.len()),
		Daily:           make([]DailyPoint, 0, days.len()),
		SpentByCategory: make(map[string]decimal.Decimal, spent.len()),
		Budgets:         []BudgetProgress{},
		Warnings:        []Warning{},
	}

	spent.each(func(category string, total decimal.Decimal) {
		summary.SpentByCategory[category] = total
		if total.IsPositive() {
			summary.ByCategory = append(summary.ByCategory, CategoryTotal{Category: category, Total: total})
		}
	})
	days.each(func(date string, d dayTotals) {
		summary.Daily = append(summary.Daily, DailyPoint{Date: date, Income: d.income, Expense: d.expense})
	})

	limits := newOrderedMap[budgetLimit]()
	for _, b := range budgets {
		l := limits.at(b.Category)
		l.ids = append(l.ids, b.ID)
		l.limit = l.limit.Add(b.LimitAmount)
	}
	limits.each(func(category string, l budgetLimit) {
		s, _ := spent.get(category)
		p := Progress(s, l.limit)
		p.BudgetIDs = l.ids
		p.Category = category
		summary.Budgets = append(summary.Budgets, p)

		if !l.limit.IsPositive() || p.Tier == "" {
			return
		}
		summary.Warnings = append(summary.Warnings, budgetWarning(category, p))
	})

	if len(summary.Warnings) == 0 && Overspent(totals) {
		summary.Warnings = append(summary.Warnings, Warning{Tier: TierOverspend, Message: overspendMessage})
	}

	return summary
}

// Progress computes the progress-bar figures for spent against limit.
// A non-positive limit yields zero percentages and no tier.
func Progress(spent, limit decimal.Decimal) BudgetProgress {
	p := BudgetProgress{
		Limit:     limit,
		Spent:     spent,
		Remaining: decimal.Max(decimal.Zero, limit.Sub(spent)),
	}
	if !limit.IsPositive() {
		return p
	}
	p.Percent = Percent(spent, limit)
	p.PercentUsed = clampPercent(p.Percent)
	switch {
	case p.Percent >= OverThreshold:
		p.Tier = TierOver
	case p.Percent >= ApproachingThreshold:
		p.Tier = TierApproaching
	}
	return p
}

// Percent returns round(part/whole*100) with halves rounded up. whole must
// be positive.
func Percent(part, whole decimal.Decimal) int64 {
	return part.Mul(hundred).Div(whole).Round(0).IntPart()
}

// Overspent reports whether expense exceeds 80% of a positive income.
func Overspent(t Totals) bool {
	return t.Income.IsPositive() && t.Expense.GreaterThan(t.Income.Mul(overspendRatio))
}

func budgetWarning(category string, p BudgetProgress) Warning {
	msg := fmt.Sprintf("%s: %d%%", category, p.Percent)
	if p.Tier == TierOver {
		msg += " (over)"
	}
	return Warning{Category: category, Tier: p.Tier, Percent: p.Percent, Message: msg}
}

func clampPercent(p int64) int64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
