package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind says whether money came in or went out.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// Valid reports whether k is a supported kind.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindIncome || k == TransactionKindExpense
}

// Transaction is a single income or expense entry. Rows are never edited,
// only deleted.
type Transaction struct {
	Base
	UserID     string          `gorm:"type:uuid;not null;index:idx_transactions_user_date" json:"user_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Category   string          `gorm:"size:64;not null" json:"category"`
	Kind       TransactionKind `gorm:"size:16;not null" json:"kind"`
	Note       *string         `json:"note,omitempty"`
	OccurredOn time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date" json:"occurred_on"`
}
