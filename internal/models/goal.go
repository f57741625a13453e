package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal tracks savings towards a target amount.
type Goal struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	TargetAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"target_amount"`
	SavedAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"saved_amount"`
	TargetDate   *time.Time      `gorm:"type:date" json:"target_date,omitempty"`
}
