package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillRepeat is informational only; paying a bill never schedules the next one.
type BillRepeat string

const (
	BillRepeatNone    BillRepeat = "none"
	BillRepeatMonthly BillRepeat = "monthly"
	BillRepeatYearly  BillRepeat = "yearly"
)

// Valid reports whether r is a supported repeat value.
func (r BillRepeat) Valid() bool {
	switch r {
	case BillRepeatNone, BillRepeatMonthly, BillRepeatYearly:
		return true
	}
	return false
}

// Bill is a due-date reminder.
type Bill struct {
	Base
	UserID  string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name    string          `gorm:"size:100;not null" json:"name"`
	Amount  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"amount"`
	DueDate time.Time       `gorm:"type:date;not null" json:"due_date"`
	Repeat  BillRepeat      `gorm:"size:16;not null;default:'none'" json:"repeat"`
	Paid    bool            `gorm:"not null;default:false" json:"paid"`
	Notes   *string         `json:"notes,omitempty"`
}
