package models

import "github.com/shopspring/decimal"

// Budget caps spending for one category in one calendar month.
// Nothing prevents two rows for the same (user, year, month, category).
type Budget struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index:idx_budgets_user_period" json:"user_id"`
	Year        int             `gorm:"not null;index:idx_budgets_user_period" json:"year"`
	Month       int             `gorm:"not null;index:idx_budgets_user_period" json:"month"`
	Category    string          `gorm:"size:64;not null" json:"category"`
	LimitAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"limit_amount"`
}
